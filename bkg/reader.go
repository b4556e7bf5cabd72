package bkg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/bodgit/megabkg/tile"
	"github.com/bodgit/megabkg/vdp"
)

type decoder struct {
	r io.Reader

	h header
	c Container
}

func (d *decoder) read(v interface{}) error {
	err := binary.Read(d.r, binary.BigEndian, v)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrNotEnough
	}
	return err
}

func (d *decoder) readHeader() error {
	if err := d.read(&d.h); err != nil {
		return err
	}
	if d.h.Signature != Signature {
		return ErrBadSignature
	}
	if d.h.Version != Version {
		return fmt.Errorf("%w: %#04x", ErrBadVersion, d.h.Version)
	}
	if d.h.Planes < 1 || d.h.Planes > MaxPlanes {
		return fmt.Errorf("%w: %d", ErrPlanes, d.h.Planes)
	}
	d.c.Width = int(d.h.Width)
	d.c.Height = int(d.h.Height)
	d.c.Planes = make([]Plane, d.h.Planes)
	return nil
}

// readTiles reads one tile at a time so a header claiming more tiles than
// the stream holds fails before the whole atlas is allocated.
func (d *decoder) readTiles() (tile.Atlas, error) {
	var (
		atlas tile.Atlas
		b     [tile.Size]byte
	)
	for i := 0; i < int(d.h.Tiles); i++ {
		if _, err := io.ReadFull(d.r, b[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, ErrNotEnough
			}
			return nil, err
		}
		var t tile.Tile
		if err := t.UnmarshalBinary(b[:]); err != nil {
			return nil, err
		}
		atlas = append(atlas, t)
	}
	return atlas, nil
}

// readMaps reads each map a row at a time, growing it only as data arrives.
func (d *decoder) readMaps() error {
	row := make([]uint16, d.c.Width)
	for i := range d.c.Planes {
		m := make(tile.Map, 0, d.c.Width)
		for y := 0; y < d.c.Height; y++ {
			if err := d.read(row); err != nil {
				return err
			}
			m = append(m, row...)
		}
		d.c.Planes[i].Map = m
	}
	return nil
}

// splitTiles hands each plane its share of the atlas. Every tile of the first
// plane's atlas is used by its own map, so the highest index in that map
// marks the boundary.
func (d *decoder) splitTiles(atlas tile.Atlas) {
	if len(d.c.Planes) == 1 {
		d.c.Planes[0].Tiles = atlas
		return
	}

	n := 0
	for _, i := range d.c.Planes[0].Map {
		if int(i)+1 > n {
			n = int(i) + 1
		}
	}
	if n > len(atlas) {
		n = len(atlas)
	}
	d.c.Planes[0].Tiles = atlas[:n:n]
	d.c.Planes[1].Tiles = atlas[n:]
}

func (d *decoder) readPalettes() error {
	first := make([]vdp.Color, colorsPerPalette)
	if err := d.read(first); err != nil {
		return err
	}
	d.c.Planes[0].Palette = first

	rest, err := ioutil.ReadAll(d.r)
	if err != nil {
		return err
	}

	if len(d.c.Planes) == 1 {
		if len(rest) > 0 {
			return ErrTooMuch
		}
		return nil
	}

	if len(rest)%2 != 0 {
		return ErrNotEnough
	}
	second := make([]vdp.Color, len(rest)/2)
	if err := binary.Read(bytes.NewReader(rest), binary.BigEndian, second); err != nil {
		return err
	}
	d.c.Planes[1].Palette = second

	return nil
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	atlas, err := d.readTiles()
	if err != nil {
		return err
	}

	if err := d.readMaps(); err != nil {
		return err
	}
	d.splitTiles(atlas)

	if err := d.readPalettes(); err != nil {
		return err
	}

	return d.c.Validate()
}

// Decode reads a BKG container from r. The first plane's palette is returned
// with its padding intact. A container that fails Validate is rejected.
func Decode(r io.Reader) (*Container, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return &d.c, nil
}

// UnmarshalBinary decodes the container from binary form.
func (c *Container) UnmarshalBinary(b []byte) error {
	dup, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*c = *dup
	return nil
}
