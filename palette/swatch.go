package palette

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Swatch draws p as a grid of black outlined squares, perRow to a row, on a
// white background. Squares start size+gap pixels apart so neighbours share
// an outline when gap is 0.
func Swatch(p Palette, size, perRow, gap int) *image.NRGBA {
	if size < 2 {
		size = 2
	}
	if perRow < 1 {
		perRow = 1
	}
	if gap < 0 {
		gap = 0
	}

	rows := (len(p) + perRow - 1) / perRow
	w := perRow*(size+gap) - gap + 1
	h := 1
	if rows > 0 {
		h = rows*(size+gap) - gap + 1
	}

	m := imaging.New(w, h, color.White)
	border := image.NewUniform(color.Black)
	for i, c := range p {
		x, y := i%perRow*(size+gap), i/perRow*(size+gap)
		r := image.Rect(x, y, x+size+1, y+size+1)
		draw.Draw(m, r, border, image.Point{}, draw.Src)
		draw.Draw(m, r.Inset(1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return m
}
