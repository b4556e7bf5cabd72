package megabkg

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
)

// Ext is the file extension given to converted screens.
const Ext = ".bkg"

var imageExts = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
}

// OutputPath returns where the screen converted from file is written.
func OutputPath(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + Ext
}

// ConvertFile converts the image in file and writes the BKG container to
// out. The image is passed through Prepare first. When a cache is configured
// an earlier conversion of an identical image with the same options is
// reused.
func (c *Converter) ConvertFile(file, out string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	// Hash whatever the decoder didn't need to read
	if _, err := io.Copy(h, f); err != nil {
		return err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))
	key := c.cacheKey(Screen)

	if c.db != nil {
		b, err := c.db.Find(sha, key)
		if err != nil {
			return err
		}
		if b != nil {
			c.logger.Printf("Using cached conversion of \"%s\"\n", file)
			return writeBytes(out, b)
		}
	}

	if m, err = c.Prepare(m); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	ct, err := c.Screen(m)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	b, err := ct.MarshalBinary()
	if err != nil {
		return fmt.Errorf("%s: %w: %v", file, ErrInvalidArgument, err)
	}

	if err := writeBytes(out, b); err != nil {
		return err
	}

	if c.db != nil {
		return c.db.Store(sha, key, b)
	}
	return nil
}

func writeBytes(path string, b []byte) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

func (c *Converter) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := imageExts[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) conversionWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			out := OutputPath(file)
			c.logger.Printf("Converting \"%s\" to \"%s\"\n", file, out)
			if err := c.ConvertFile(file, out); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ConvertTree converts every image found under path to a BKG file written
// alongside it, using the given number of workers.
func (c *Converter) ConvertTree(path string, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if workers < 1 {
		workers = 1
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := c.conversionWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
