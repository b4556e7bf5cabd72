package megabkg

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/megabkg/bkg"
	"github.com/bodgit/megabkg/palette"
	"github.com/bodgit/megabkg/tile"
	"github.com/bodgit/megabkg/vdp"
	"github.com/disintegration/imaging"
)

// minCheckedSize is the CHR file size below which the dimension check is
// skipped, so small test fixtures can be decoded at any size.
const minCheckedSize = 512

// writeFile creates path and hands a buffered writer to fn. The file is
// always closed and a failure to flush or close is reported.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err = fn(w); err != nil {
		return err
	}
	return w.Flush()
}

// Threshold modes for Converter.Threshold
const (
	ThresholdRGB  = "rgb"
	ThresholdGray = "gray"
)

// Prepare applies the configured threshold and color reduction to m. m is
// returned unchanged when neither is set.
func (c *Converter) Prepare(m image.Image) (image.Image, error) {
	switch c.Threshold {
	case "":
	case ThresholdRGB:
		m = palette.Threshold(m)
	case ThresholdGray:
		m = palette.GrayLevels(m)
	default:
		return nil, fmt.Errorf("%w: unknown threshold %q", ErrInvalidArgument, c.Threshold)
	}
	if c.Colors > 0 {
		m = palette.Reduce(m, c.Colors, c.Dither)
	}
	return m, nil
}

// cacheKey names the asset of the given kind produced with the current
// options.
func (c *Converter) cacheKey(kind Kind) string {
	key := kind.String()
	if c.Fast {
		key += "/fast"
	}
	if c.Threshold != "" {
		key += "/threshold=" + c.Threshold
	}
	if c.Colors > 0 {
		key += fmt.Sprintf("/colors=%d", c.Colors)
		if c.Dither {
			key += "/dither"
		}
	}
	return key
}

func (c *Converter) extract(m image.Image) palette.Palette {
	if c.Fast {
		return palette.ExtractFast(m)
	}
	return palette.Extract(m)
}

// limit truncates p to one hardware palette, logging a warning if colors are
// lost.
func (c *Converter) limit(p palette.Palette, what string) palette.Palette {
	short, dropped := p.Truncate()
	if dropped {
		c.logger.Printf("warning: %s: %v, using the first %d of %d\n", what, ErrPaletteOverflow, palette.MaxColors, len(p))
	}
	return short
}

// Palettes returns the palettes used by each plane of m when converted as a
// screen. The second palette is empty when one plane is enough.
func (c *Converter) Palettes(m image.Image) (palette.Palette, palette.Palette, error) {
	a, b, err := palette.Split(c.extract(m))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return a, c.limit(b, "second plane"), nil
}

// Screen converts m into a BKG container. Partial tiles at the right and
// bottom edges are dropped. A second plane, with its rows scanned from the
// bottom up, is only added when the colors don't fit in one palette.
func (c *Converter) Screen(m image.Image) (*bkg.Container, error) {
	b := m.Bounds()
	cols, rows := b.Dx()/tile.Width, b.Dy()/tile.Height

	pa, pb, err := c.Palettes(m)
	if err != nil {
		return nil, err
	}

	atlas := tile.Extract(m, pa, cols, rows, false)
	ct := &bkg.Container{
		Width:  cols,
		Height: rows,
		Planes: []bkg.Plane{
			{
				Tiles:   atlas,
				Map:     tile.BuildMap(m, atlas, pa, cols, rows, 0, false),
				Palette: vdp.FromPalette(pa),
			},
		},
	}

	if len(pb) > 0 {
		second := tile.Extract(m, pb, cols, rows, true)
		ct.Planes = append(ct.Planes, bkg.Plane{
			Tiles:   second,
			Map:     tile.BuildMap(m, second, pb, cols, rows, len(atlas), true),
			Palette: vdp.FromPalette(pb),
		})
	}

	c.logger.Printf("screen %dx%d tiles, %d planes, %d unique tiles\n", cols, rows, len(ct.Planes), ct.TileCount())

	return ct, nil
}

// EncodeScreen converts m and writes it to w as a BKG container.
func (c *Converter) EncodeScreen(w io.Writer, m image.Image) error {
	ct, err := c.Screen(m)
	if err != nil {
		return err
	}
	if err := ct.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return bkg.Encode(w, ct)
}

// WriteScreen converts m and writes the BKG container to path.
func (c *Converter) WriteScreen(m image.Image, path string) error {
	ct, err := c.Screen(m)
	if err != nil {
		return err
	}
	if err := ct.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return writeFile(path, func(w io.Writer) error {
		return bkg.Encode(w, ct)
	})
}

// UnitPath returns the file name used for sprite unit i, formed by inserting
// "_i" before the extension of path.
func UnitPath(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), i, ext)
}

// WriteCHR writes the raw tiles of m. Sprites are cut into units each
// written to their own file named by UnitPath and the list of files is
// returned. Fonts are written as every tile of the image to path.
func (c *Converter) WriteCHR(m image.Image, path string, kind Kind) ([]string, error) {
	switch kind {
	case Sprite, Font:
	default:
		return nil, fmt.Errorf("%w: CHR export of %s", ErrUnsupportedMode, kind)
	}

	p := c.limit(c.extract(m), kind.String())

	if kind == Font {
		tiles := tile.Tiles(m, p)
		if err := writeFile(path, func(w io.Writer) error {
			return tile.EncodeCHR(w, tiles)
		}); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	// Stale output from a previous run would otherwise be mistaken for the
	// first unit
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	units := tile.SpriteUnits(m, p)
	files := make([]string, 0, len(units))
	for i, u := range units {
		file := UnitPath(path, i)
		if err := writeFile(file, func(w io.Writer) error {
			return tile.EncodeCHR(w, u.Tiles)
		}); err != nil {
			return files, err
		}
		c.logger.Printf("sprite unit %d %v -> %s\n", i, u.Bounds, file)
		files = append(files, file)
	}
	return files, nil
}

// WritePaletteBinary writes the palette of m as packed VDP colors.
func (c *Converter) WritePaletteBinary(m image.Image, path string) error {
	p := c.extract(m)
	return writeFile(path, func(w io.Writer) error {
		return palette.WriteBinary(w, p)
	})
}

// WritePaletteSwatch draws the palette of m with palette.Swatch and saves it
// to path in the image format named by its extension.
func (c *Converter) WritePaletteSwatch(m image.Image, path string, size, perRow, gap int) error {
	return imaging.Save(palette.Swatch(c.extract(m), size, perRow, gap), path)
}

// CheckColors returns ErrPaletteOverflow if m has more colors than one
// hardware palette holds.
func (c *Converter) CheckColors(m image.Image) error {
	if p := c.extract(m); !p.Fits() {
		return fmt.Errorf("%w: found %d", ErrPaletteOverflow, len(p))
	}
	return nil
}

// PaletteText returns the palette declaration for m labelled after path.
func (c *Converter) PaletteText(m image.Image, path string) string {
	p := c.extract(m)
	if len(p) > palette.MaxColors {
		c.logger.Printf("warning: %v\n", ErrPaletteOverflow)
	}
	return palette.Text(palette.Label(path), p)
}

// WritePaletteText writes the palette declaration for m to path.
func (c *Converter) WritePaletteText(m image.Image, path string) error {
	s := c.PaletteText(m, path)
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// Description returns the BasiEgaXorz declarations for a screen stored in a
// file named after path. Only screens are supported.
func (c *Converter) Description(m image.Image, path string, kind Kind) (string, error) {
	if kind != Screen {
		return "", fmt.Errorf("%w: description of %s", ErrUnsupportedMode, kind)
	}
	label := palette.Label(path)
	return fmt.Sprintf("%s:\t\t\tdatafile\t%s.BIN,BIN\n%s", label, strings.ToLower(label), c.PaletteText(m, path)), nil
}

// WriteDescription writes the result of Description to path.
func (c *Converter) WriteDescription(m image.Image, path string, kind Kind) error {
	s, err := c.Description(m, path, kind)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// padPalette fills p to a whole hardware palette so any 4-bit index is
// valid.
func padPalette(p palette.Palette) color.Palette {
	cp := p.Colors()
	for len(cp) < palette.MaxColors {
		cp = append(cp, palette.Black())
	}
	return cp
}

// Reconstruct decodes a CHR file into a width by height image using p.
// Screens and fonts are laid out row by row, sprites column by column.
func (c *Converter) Reconstruct(path string, width, height int, p palette.Palette, kind Kind) (*image.Paletted, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, palette.ErrNilPalette)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidArgument, width, height)
	}

	order := tile.RowMajor
	switch kind {
	case Screen, Font:
	case Sprite:
		order = tile.ColumnMajor
	default:
		return nil, fmt.Errorf("%w: CHR import of %s", ErrUnsupportedMode, kind)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	expected := int64(width * height / 2)
	if size := info.Size(); size != expected && size > minCheckedSize {
		cols, rows := tile.Layout(int(size / tile.Size))
		return nil, fmt.Errorf("%w: %s is %d bytes, expected %d for %dx%d, try %dx%d", ErrSizeMismatch, path, size, expected, width, height, cols*tile.Width, rows*tile.Height)
	}

	tiles, err := tile.DecodeCHR(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}

	dst := image.NewPaletted(image.Rect(0, 0, width, height), padPalette(p))
	tile.Draw(dst, tiles, order)

	return dst, nil
}
