package palette

import (
	"errors"
	"image/color"
)

// ErrNilPalette is returned when a palette is required but missing.
var ErrNilPalette = errors.New("palette: nil palette")

var black = color.NRGBA{0, 0, 0, 0xff}

// Black is the canonical black pinned to the first entry of a palette.
func Black() color.NRGBA {
	return black
}

// IsNearBlack reports whether every channel is at most 15.
func IsNearBlack(c color.NRGBA) bool {
	return c.R <= 15 && c.G <= 15 && c.B <= 15
}

// IsNearWhite reports whether any channel is at least 224.
func IsNearWhite(c color.NRGBA) bool {
	return c.R >= 224 || c.G >= 224 || c.B >= 224
}

// Split divides p between two hardware palettes. The first near black color
// is replaced by canonical black at the head of a and the first near white
// color follows it. The remaining colors fill a up to MaxColors and any
// overflow goes to b, which then starts with black. p is not modified.
func Split(p Palette) (a, b Palette, err error) {
	if p == nil {
		return nil, nil, ErrNilPalette
	}

	first, rest := newSet(MaxColors), newSet(0)

	blackAt, whiteAt := -1, -1
	for i, c := range p {
		if blackAt < 0 && IsNearBlack(c) {
			blackAt = i
			continue
		}
		if whiteAt < 0 && IsNearWhite(c) {
			whiteAt = i
		}
	}

	if blackAt >= 0 {
		first.add(black)
	}
	if whiteAt >= 0 {
		first.add(p[whiteAt])
	}

	for i, c := range p {
		if i == blackAt || i == whiteAt {
			continue
		}
		if len(first.p) < MaxColors {
			first.add(c)
			continue
		}
		if _, ok := first.seen[c]; !ok {
			rest.add(c)
		}
	}

	if len(rest.p) > 0 {
		b = append(Palette{black}, rest.p...)
	}

	return first.p, b, nil
}
