package tile

import (
	"image"

	"github.com/bodgit/megabkg/palette"
)

// Unit is one hardware sprite of up to MaxUnit by MaxUnit pixels cut from a
// larger image.
type Unit struct {
	Bounds image.Rectangle
	Tiles  []Tile
}

// unitSize grows from start in tile steps until it reaches MaxUnit or passes
// the edge at limit.
func unitSize(start, limit int) int {
	n := 0
	for n < MaxUnit && start+n < limit {
		n += Width
	}
	return n
}

// UnitBounds splits a w by h pixel image into sprite units, scanning left to
// right then top to bottom. Units on the right and bottom edges may be
// smaller than MaxUnit and always span whole tiles.
func UnitBounds(w, h int) []image.Rectangle {
	var units []image.Rectangle
	for y := 0; y < h; {
		uh := unitSize(y, h)
		for x := 0; x < w; {
			uw := unitSize(x, w)
			units = append(units, image.Rect(x, y, x+uw, y+uh))
			x += uw
		}
		y += uh
	}
	return units
}

// SpriteUnits cuts m into sprite units. Each unit's tiles run down a column
// before moving to the next, matching the VDP sprite pattern order.
func SpriteUnits(m image.Image, p palette.Palette) []Unit {
	ix := indexer(p.Indexer())
	b := m.Bounds()

	rects := UnitBounds(b.Dx(), b.Dy())
	units := make([]Unit, 0, len(rects))
	for _, r := range rects {
		u := Unit{Bounds: r}
		for x := r.Min.X; x < r.Max.X; x += Width {
			for y := r.Min.Y; y < r.Max.Y; y += Height {
				u.Tiles = append(u.Tiles, ix.tile(m, b.Min.X+x, b.Min.Y+y))
			}
		}
		units = append(units, u)
	}
	return units
}
