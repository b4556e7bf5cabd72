/*
Package palette extracts, queries and partitions the colors of an image for
use with the Mega Drive VDP.

A Palette keeps colors in the order they were first seen. The hardware can
only address 16 colors per palette so Split divides a larger palette between
two planes, pinning black and white into the first.
*/
package palette

import (
	"image"
	"image/color"
)

// MaxColors is the number of colors in one hardware palette.
const MaxColors = 16

// Palette is an ordered collection of colors. Palettes taken from an image
// hold each color once.
type Palette []color.NRGBA

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// set is an insertion ordered set of colors.
type set struct {
	seen map[color.NRGBA]struct{}
	p    Palette
}

func newSet(n int) *set {
	return &set{
		seen: make(map[color.NRGBA]struct{}, n),
		p:    make(Palette, 0, n),
	}
}

func (s *set) add(c color.NRGBA) bool {
	if _, ok := s.seen[c]; ok {
		return false
	}
	s.seen[c] = struct{}{}
	s.p = append(s.p, c)
	return true
}

// Extract visits every pixel of m in row-major order and returns each
// distinct color in the order it was first seen.
func Extract(m image.Image) Palette {
	b := m.Bounds()
	s := newSet(MaxColors)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			s.add(toNRGBA(m.At(x, y)))
		}
	}
	return s.p
}

// ExtractFast reads the pixel memory of common image types directly. Pixels
// of an *image.RGBA are taken without un-premultiplying, so translucent
// images can give a different result to Extract. Unknown image types fall
// back to Extract.
func ExtractFast(m image.Image) Palette {
	b := m.Bounds()
	s := newSet(MaxColors)

	switch src := m.(type) {
	case *image.NRGBA:
		fastRGBA(s, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), b)
	case *image.RGBA:
		fastRGBA(s, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), b)
	case *image.Paletted:
		// Only resolve each palette entry once
		resolved := make([]color.NRGBA, len(src.Palette))
		for i, c := range src.Palette {
			resolved[i] = toNRGBA(c)
		}
		for y := 0; y < b.Dy(); y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < b.Dx(); x++ {
				if i := int(row[x]); i < len(resolved) {
					s.add(resolved[i])
				}
			}
		}
	default:
		return Extract(m)
	}

	return s.p
}

func fastRGBA(s *set, pix []byte, stride, offset int, b image.Rectangle) {
	for y := 0; y < b.Dy(); y++ {
		row := pix[offset+y*stride:]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4 : x*4+4 : x*4+4]
			s.add(color.NRGBA{p[0], p[1], p[2], p[3]})
		}
	}
}

// Index returns the position of c in the palette using an exact match.
func (p Palette) Index(c color.Color) (int, bool) {
	n := toNRGBA(c)
	for i, pc := range p {
		if pc == n {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether c is in the palette.
func (p Palette) Contains(c color.Color) bool {
	_, ok := p.Index(c)
	return ok
}

// Indexer returns a lookup table from color to palette index.
func (p Palette) Indexer() map[color.NRGBA]int {
	m := make(map[color.NRGBA]int, len(p))
	for i, c := range p {
		if _, ok := m[c]; !ok {
			m[c] = i
		}
	}
	return m
}

// Truncate returns at most the first MaxColors colors and whether any were
// dropped.
func (p Palette) Truncate() (Palette, bool) {
	if len(p) <= MaxColors {
		return p, false
	}
	return p[:MaxColors:MaxColors], true
}

// Fits reports whether p fits in one hardware palette.
func (p Palette) Fits() bool {
	_, dropped := p.Truncate()
	return !dropped
}

// Colors returns the palette as a color.Palette.
func (p Palette) Colors() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}
