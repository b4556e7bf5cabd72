package bkg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bodgit/megabkg/tile"
	"github.com/bodgit/megabkg/vdp"
)

type header struct {
	Signature [4]byte
	Version   uint16
	Tiles     uint16
	Width     uint16
	Height    uint16
	Planes    uint16
}

// Validate checks the container can be encoded. Each palette must fit in one
// hardware palette and every map entry must refer to an existing tile.
func (c *Container) Validate() error {
	if len(c.Planes) < 1 || len(c.Planes) > MaxPlanes {
		return fmt.Errorf("%w: %d", ErrPlanes, len(c.Planes))
	}
	if c.Width < 0 || c.Height < 0 || c.Width > 0xffff || c.Height > 0xffff {
		return fmt.Errorf("bkg: invalid dimensions %dx%d", c.Width, c.Height)
	}
	if c.TileCount() > 0xffff {
		return fmt.Errorf("%w: %d", ErrTooManyTiles, c.TileCount())
	}
	for i, p := range c.Planes {
		if p.Map == nil || len(p.Map) != c.Width*c.Height {
			return fmt.Errorf("%w: plane %d has %d entries, want %d", ErrMapSize, i, len(p.Map), c.Width*c.Height)
		}
		if p.Palette == nil {
			return fmt.Errorf("%w: plane %d", ErrNoPalette, i)
		}
		if len(p.Palette) > colorsPerPalette {
			return fmt.Errorf("%w: plane %d has %d", ErrTooManyColors, i, len(p.Palette))
		}
	}

	// The first plane may only use its own tiles as readers split the atlas
	// on the highest index in its map
	limit := len(c.Planes[0].Tiles)
	for i, p := range c.Planes {
		if i > 0 {
			limit = c.TileCount()
		}
		for j, v := range p.Map {
			if int(v) >= limit {
				return fmt.Errorf("%w: plane %d entry %d is %d, limit %d", ErrMapIndex, i, j, v, limit)
			}
		}
	}

	return nil
}

type encoder struct {
	w io.Writer
}

func (e *encoder) write(v interface{}) error {
	return binary.Write(e.w, binary.BigEndian, v)
}

func (e *encoder) encode(c *Container) error {
	h := header{
		Signature: Signature,
		Version:   Version,
		Tiles:     uint16(c.TileCount()),
		Width:     uint16(c.Width),
		Height:    uint16(c.Height),
		Planes:    uint16(len(c.Planes)),
	}
	if err := e.write(&h); err != nil {
		return err
	}

	for _, p := range c.Planes {
		if err := tile.EncodeCHR(e.w, p.Tiles); err != nil {
			return err
		}
	}

	for _, p := range c.Planes {
		if err := e.write([]uint16(p.Map)); err != nil {
			return err
		}
	}

	for i, p := range c.Planes {
		palette := p.Palette
		// First palette is padded with black to fill a hardware palette
		if i == 0 && len(palette) < colorsPerPalette {
			palette = make([]vdp.Color, colorsPerPalette)
			copy(palette, p.Palette)
		}
		if err := e.write(palette); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the container c to w. Nothing is written if c is invalid.
func Encode(w io.Writer, c *Container) error {
	if err := c.Validate(); err != nil {
		return err
	}

	e := encoder{w: w}

	return e.encode(c)
}

// MarshalBinary encodes the container into binary form and returns the
// result.
func (c *Container) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	b.Grow(c.Size())
	if err := Encode(b, c); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
