package palette

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/megabkg/vdp"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/makeworld-the-better-one/dither/v2"
)

// Reduce maps m onto at most n colors that the VDP can display. A median cut
// palette is computed first and snapped to the 9-bit color space, which may
// merge entries. With dithering enabled the error is diffused using
// Floyd-Steinberg, otherwise each pixel takes its closest color.
func Reduce(m image.Image, n int, diffuse bool) *image.Paletted {
	if n < 1 {
		n = 1
	}

	q := quantize.MedianCutQuantizer{}
	s := newSet(n)
	for _, c := range q.Quantize(make(color.Palette, 0, n), m) {
		s.add(toNRGBA(vdp.Model.Convert(c)))
	}
	if len(s.p) == 0 {
		s.add(black)
	}

	b := m.Bounds()
	if diffuse && len(s.p) > 1 {
		colors := make([]color.Color, len(s.p))
		for i, c := range s.p {
			colors[i] = c
		}
		d := dither.NewDitherer(colors)
		d.Matrix = dither.FloydSteinberg
		return d.DitherPaletted(m)
	}

	pm := image.NewPaletted(b, s.p.Colors())
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}
