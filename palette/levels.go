package palette

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Threshold snaps each channel of every pixel of m to 0 or 255, leaving at
// most eight colors. Alpha is kept.
func Threshold(m image.Image) *image.NRGBA {
	return imaging.AdjustFunc(m, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{threshold(c.R), threshold(c.G), threshold(c.B), c.A}
	})
}

func threshold(v uint8) uint8 {
	if v < 0x80 {
		return 0
	}
	return 0xff
}

var grays = [4]uint8{0x00, 0x55, 0xaa, 0xff}

// GrayLevels maps every pixel of m to one of four grays by the mean of its
// channels, split into equal bands. Alpha is kept.
func GrayLevels(m image.Image) *image.NRGBA {
	return imaging.AdjustFunc(m, func(c color.NRGBA) color.NRGBA {
		g := grays[(int(c.R)+int(c.G)+int(c.B))/3>>6]
		return color.NRGBA{g, g, g, c.A}
	})
}
