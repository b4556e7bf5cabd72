package tile

import (
	"image"

	"github.com/bodgit/megabkg/palette"
)

// Atlas is an ordered list of unique tiles. A tile's position is its index.
type Atlas []Tile

// Map holds one atlas index per tile-sized block of a screen.
type Map []uint16

// scan calls fn for each block of a cols by rows grid, left to right. Rows
// run top to bottom unless reverse is set.
func scan(m image.Image, p palette.Palette, cols, rows int, reverse bool, fn func(Tile)) {
	ix := indexer(p.Indexer())
	min := m.Bounds().Min
	for r := 0; r < rows; r++ {
		ty := r
		if reverse {
			ty = rows - 1 - r
		}
		for tx := 0; tx < cols; tx++ {
			fn(ix.tile(m, min.X+tx*Width, min.Y+ty*Height))
		}
	}
}

// Extract builds the atlas of unique tiles found in a cols by rows grid of
// m, in the order they are first seen. Second plane atlases are built with
// reverse set so rows are visited bottom to top.
func Extract(m image.Image, p palette.Palette, cols, rows int, reverse bool) Atlas {
	seen := make(map[Tile]struct{})
	var atlas Atlas
	scan(m, p, cols, rows, reverse, func(t Tile) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		atlas = append(atlas, t)
	})
	return atlas
}

// Index returns a lookup from tile content to atlas position. The first
// occurrence wins should the atlas contain duplicates.
func (a Atlas) Index() map[Tile]int {
	m := make(map[Tile]int, len(a))
	for i, t := range a {
		if _, ok := m[t]; !ok {
			m[t] = i
		}
	}
	return m
}

// BuildMap finds each block of m in the atlas and returns its index plus
// offset. Blocks missing from the atlas map to offset. The offset lets a
// second plane number its tiles after the first plane's atlas.
func BuildMap(m image.Image, a Atlas, p palette.Palette, cols, rows, offset int, reverse bool) Map {
	n := cols * rows
	if n < 0 {
		n = 0
	}
	tm := make(Map, 0, n)

	if len(a) == 1 {
		for i := 0; i < n; i++ {
			tm = append(tm, uint16(offset))
		}
		return tm
	}

	index := a.Index()
	scan(m, p, cols, rows, reverse, func(t Tile) {
		i, ok := index[t]
		if !ok {
			i = 0
		}
		tm = append(tm, uint16(offset+i))
	})
	return tm
}

// Validate checks that every entry of the map addresses one of size tiles
// starting at offset.
func (tm Map) Validate(offset, size int) bool {
	for _, i := range tm {
		if int(i) < offset || int(i) >= offset+size {
			return false
		}
	}
	return true
}
