/*
Package bkg implements the BKG background container used to ship a converted
screen to a Mega Drive program.

All multi-byte fields are big-endian. The file starts with a 14 byte header:

	offset  size  field
	0       4     signature "BKG\x00"
	4       2     version, 0x0101
	6       2     total tile count across all planes
	8       2     width in tiles
	10      2     height in tiles
	12      2     plane count, 1 or 2

This is followed by the tiles of each plane at 32 bytes per tile, the tile
map of each plane at 2 bytes per entry and finally the palette of each plane
at 2 bytes per packed color. The first plane's palette is always padded to 16
colors, the second is written as is.
*/
package bkg

import (
	"errors"

	"github.com/bodgit/megabkg/tile"
	"github.com/bodgit/megabkg/vdp"
)

const (
	// Version is the only container version understood
	Version = 0x0101

	// MaxPlanes is the number of planes the VDP can scroll independently
	MaxPlanes = 2

	colorsPerPalette = 16
	headerSize       = 14
)

// Signature starts every BKG file.
var Signature = [4]byte{'B', 'K', 'G', 0}

var (
	// ErrBadSignature is returned when the data is not a BKG container
	ErrBadSignature = errors.New("bkg: bad signature")
	// ErrBadVersion is returned for an unknown container version
	ErrBadVersion = errors.New("bkg: unsupported version")
	// ErrNotEnough is returned when the data is truncated
	ErrNotEnough = errors.New("bkg: not enough data")
	// ErrTooMuch is returned when data follows the last palette
	ErrTooMuch = errors.New("bkg: too much data")
	// ErrPlanes is returned for a plane count other than 1 or 2
	ErrPlanes = errors.New("bkg: invalid plane count")
	// ErrMapSize is returned when a tile map doesn't cover the screen
	ErrMapSize = errors.New("bkg: tile map size mismatch")
	// ErrNoPalette is returned when a plane has no palette
	ErrNoPalette = errors.New("bkg: missing palette")
	// ErrTooManyTiles is returned when tile indices won't fit in 16 bits
	ErrTooManyTiles = errors.New("bkg: too many tiles")
	// ErrTooManyColors is returned when a palette won't fit in one hardware
	// palette
	ErrTooManyColors = errors.New("bkg: too many colors")
	// ErrMapIndex is returned when a tile map refers to a tile that isn't
	// there
	ErrMapIndex = errors.New("bkg: tile map index out of range")
)

// Plane is one independently tiled layer.
type Plane struct {
	Tiles   tile.Atlas
	Map     tile.Map
	Palette []vdp.Color
}

// Container is a decoded BKG file. Width and Height are in tiles. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Container struct {
	Width  int
	Height int
	Planes []Plane
}

// TileCount returns the total number of tiles across all planes.
func (c *Container) TileCount() int {
	n := 0
	for _, p := range c.Planes {
		n += len(p.Tiles)
	}
	return n
}

// Size returns the encoded size in bytes.
func (c *Container) Size() int {
	n := headerSize
	for i, p := range c.Planes {
		n += len(p.Tiles)*tile.Size + len(p.Map)*2
		if i == 0 && len(p.Palette) < colorsPerPalette {
			n += colorsPerPalette * 2
		} else {
			n += len(p.Palette) * 2
		}
	}
	return n
}
