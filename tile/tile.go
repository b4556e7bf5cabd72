/*
Package tile implements the 8 by 8 pixel tiles used by the Mega Drive VDP.

A tile holds a 4-bit palette index for each pixel. Stored on the console it
takes 32 bytes, two pixels per byte with the left pixel in the upper nibble,
rows from top to bottom. A CHR file is nothing more than a run of such tiles.
*/
package tile

import (
	"errors"
	"image"
	"image/color"

	"github.com/bodgit/megabkg/palette"
)

const (
	// Width and Height are the tile dimensions in pixels
	Width  = 8
	Height = Width

	// Pixels is the number of pixels in a tile
	Pixels = Width * Height

	// Size is the number of bytes used to store a tile
	Size = Pixels >> 1

	// MaxUnit is the largest sprite dimension in pixels
	MaxUnit = 32
)

// ErrNotEnough is returned when decoding a truncated tile.
var ErrNotEnough = errors.New("tile: not enough tile data")

// Tile is a row-major grid of palette indices. Tiles are comparable and can
// be used directly as map keys.
type Tile [Pixels]uint8

// At returns the palette index at column x, row y.
func (t *Tile) At(x, y int) uint8 {
	return t[y*Width+x]
}

// Set stores the palette index at column x, row y.
func (t *Tile) Set(x, y int, i uint8) {
	t[y*Width+x] = i
}

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

// MarshalBinary packs the tile into Size bytes. Indices are masked to 4
// bits.
func (t Tile) MarshalBinary() ([]byte, error) {
	b := make([]byte, Size)
	t.pack(b)
	return b, nil
}

func (t *Tile) pack(b []byte) {
	for i := range b[:Size] {
		b[i] = t[i<<1]&0x0f<<4 | t[i<<1+1]&0x0f
	}
}

// UnmarshalBinary unpacks a tile from exactly Size bytes.
func (t *Tile) UnmarshalBinary(b []byte) error {
	if len(b) < Size {
		return ErrNotEnough
	}
	t.unpack(b)
	return nil
}

func (t *Tile) unpack(b []byte) {
	for i, v := range b[:Size] {
		t[i<<1] = upperNibble(v) >> 4
		t[i<<1+1] = lowerNibble(v)
	}
}

// indexer maps colors to palette indices. Only the first palette.MaxColors
// colors can be addressed by a 4 bit pixel, later ones are treated as misses.
type indexer map[color.NRGBA]int

func (ix indexer) index(m image.Image, x, y int) uint8 {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return 0
	}
	i, ok := ix[color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)]
	if !ok || i >= palette.MaxColors {
		return 0
	}
	return uint8(i)
}

func (ix indexer) tile(m image.Image, x0, y0 int) (t Tile) {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			t[y*Width+x] = ix.index(m, x0+x, y0+y)
		}
	}
	return
}

// FromImage builds the tile whose top-left pixel is at (x0, y0) relative to
// the image origin. Pixels outside the image, missing from the palette or
// beyond its first 16 colors use index 0.
func FromImage(m image.Image, p palette.Palette, x0, y0 int) Tile {
	min := m.Bounds().Min
	return indexer(p.Indexer()).tile(m, min.X+x0, min.Y+y0)
}

// Tiles slices the whole image into tiles, row by row, without removing
// duplicates. Partial tiles at the right and bottom edges are padded with
// index 0.
func Tiles(m image.Image, p palette.Palette) []Tile {
	ix := indexer(p.Indexer())
	b := m.Bounds()
	var tiles []Tile
	for y := b.Min.Y; y < b.Max.Y; y += Height {
		for x := b.Min.X; x < b.Max.X; x += Width {
			tiles = append(tiles, ix.tile(m, x, y))
		}
	}
	return tiles
}
