package main

import (
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bodgit/megabkg"
	"github.com/bodgit/megabkg/palette"
	"github.com/disintegration/imaging"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newConverter(c *cli.Context) (*megabkg.Converter, func(), error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	var db *megabkg.AssetDB
	closer := func() {}
	if file := c.String("db"); file != "" {
		var err error
		if db, err = megabkg.NewAssetDB(file); err != nil {
			return nil, nil, err
		}
		closer = func() { db.Close() }
	}

	m := megabkg.New(db, logger)
	m.Fast = c.Bool("fast")
	m.Threshold = c.String("threshold")
	m.Colors = c.Int("colors")
	m.Dither = c.Bool("dither")

	return m, closer, nil
}

func loadImage(m *megabkg.Converter, file string) (image.Image, error) {
	img, err := imaging.Open(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return m.Prepare(img)
}

func loadPalette(file string) (palette.Palette, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".bex", ".txt":
		b, err := ioutil.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return palette.ParseText(string(b))
	default:
		img, err := imaging.Open(file)
		if err != nil {
			return nil, err
		}
		return palette.Extract(img), nil
	}
}

// action wraps the common setup of each command taking an input and an
// output file.
func action(fn func(*cli.Context, *megabkg.Converter, string, string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() < 2 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		m, closer, err := newConverter(c)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer closer()

		if err := fn(c, m, c.Args().Get(0), c.Args().Get(1)); err != nil {
			return cli.Exit(err, 1)
		}

		return nil
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "megabkg"
	app.Usage = "Sega Mega Drive VDP graphics converter"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MEGABKG_DB"},
			Usage:   "path to conversion cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.BoolFlag{
			Name:  "fast",
			Usage: "read pixel memory directly when extracting palettes",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "reduce the image to at most this many VDP colors first",
		},
		&cli.BoolFlag{
			Name:  "dither",
			Usage: "dither when reducing colors",
		},
		&cli.StringFlag{
			Name:  "threshold",
			Usage: "remap the image first, rgb for eight colors or gray for four grays",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "bkg",
			Usage:     "Convert a screen to a BKG container",
			ArgsUsage: "IMAGE FILE",
			Action: action(func(c *cli.Context, m *megabkg.Converter, in, out string) error {
				img, err := loadImage(m, in)
				if err != nil {
					return err
				}
				return m.WriteScreen(img, out)
			}),
		},
		{
			Name:      "chr",
			Usage:     "Dump the raw tiles of a sprite or font",
			ArgsUsage: "IMAGE FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kind",
					Value: "sprite",
					Usage: "sprite or font",
				},
				&cli.BoolFlag{
					Name:  "strict",
					Usage: "fail rather than drop colors beyond 16",
				},
			},
			Action: action(func(c *cli.Context, m *megabkg.Converter, in, out string) error {
				kind, err := megabkg.ParseKind(c.String("kind"))
				if err != nil {
					return err
				}
				img, err := loadImage(m, in)
				if err != nil {
					return err
				}
				if c.Bool("strict") {
					if err := m.CheckColors(img); err != nil {
						return err
					}
				}
				_, err = m.WriteCHR(img, out, kind)
				return err
			}),
		},
		{
			Name:      "palette",
			Usage:     "Export the palette of an image",
			ArgsUsage: "IMAGE FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: "bin",
					Usage: "bin, text or png",
				},
				&cli.IntFlag{
					Name:  "size",
					Value: 8,
					Usage: "swatch square size in pixels",
				},
				&cli.IntFlag{
					Name:  "per-row",
					Value: 8,
					Usage: "swatch squares per row",
				},
				&cli.IntFlag{
					Name:  "gap",
					Usage: "pixels between swatch squares",
				},
			},
			Action: action(func(c *cli.Context, m *megabkg.Converter, in, out string) error {
				img, err := loadImage(m, in)
				if err != nil {
					return err
				}
				switch format := c.String("format"); format {
				case "bin":
					return m.WritePaletteBinary(img, out)
				case "text":
					return m.WritePaletteText(img, out)
				case "png":
					return m.WritePaletteSwatch(img, out, c.Int("size"), c.Int("per-row"), c.Int("gap"))
				default:
					return fmt.Errorf("unknown palette format %q", format)
				}
			}),
		},
		{
			Name:      "describe",
			Usage:     "Write BasiEgaXorz declarations for a converted image",
			ArgsUsage: "IMAGE FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kind",
					Value: "screen",
				},
			},
			Action: action(func(c *cli.Context, m *megabkg.Converter, in, out string) error {
				kind, err := megabkg.ParseKind(c.String("kind"))
				if err != nil {
					return err
				}
				img, err := loadImage(m, in)
				if err != nil {
					return err
				}
				return m.WriteDescription(img, out, kind)
			}),
		},
		{
			Name:      "decode",
			Usage:     "Rebuild an image from a CHR file",
			ArgsUsage: "FILE IMAGE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "width",
					Required: true,
				},
				&cli.IntFlag{
					Name:     "height",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "kind",
					Value: "sprite",
				},
				&cli.StringFlag{
					Name:     "palette",
					Required: true,
					Usage:    "palette declaration or image to take the palette from",
				},
			},
			Action: action(func(c *cli.Context, m *megabkg.Converter, in, out string) error {
				kind, err := megabkg.ParseKind(c.String("kind"))
				if err != nil {
					return err
				}
				p, err := loadPalette(c.String("palette"))
				if err != nil {
					return err
				}
				img, err := m.Reconstruct(in, c.Int("width"), c.Int("height"), p, kind)
				if err != nil {
					return err
				}
				return imaging.Save(img, out)
			}),
		},
		{
			Name:      "batch",
			Usage:     "Convert every image in a directory tree to BKG",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: runtime.NumCPU(),
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				if err := m.ConvertTree(c.Args().First(), c.Int("workers")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
