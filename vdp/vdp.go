/*
Package vdp implements the color format used by the Sega Mega Drive video
display processor.

Each channel is reduced to 3 bits and the result is packed into a 16-bit
value as 0000BBB0GGG0RRR0, giving 512 representable colors. Converting back
to 8 bits per channel shifts each field left by 5 so only the levels 0, 32,
64, ..., 224 survive a round trip.
*/
package vdp

import (
	"fmt"
	"image/color"
)

const (
	blueShift  = 9
	greenShift = 5
	redShift   = 1
	fieldMask  = 0x7

	// Mask has every bit that may be set in a valid Color
	Mask = fieldMask<<blueShift | fieldMask<<greenShift | fieldMask<<redShift
)

// Color is a packed 9-bit VDP color. It implements the color.Color interface.
type Color uint16

// FromRGB converts any color to its nearest lower VDP color by keeping the
// top 3 bits of each 8-bit channel.
func FromRGB(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color(uint16(n.B>>5)<<blueShift | uint16(n.G>>5)<<greenShift | uint16(n.R>>5)<<redShift)
}

func (c Color) field(shift uint) uint8 {
	return uint8(uint16(c)>>shift&fieldMask) << 5
}

// NRGBA returns the 8-bit per channel color, always fully opaque.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: c.field(redShift),
		G: c.field(greenShift),
		B: c.field(blueShift),
		A: 0xff,
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Valid reports whether only the bits of the packed fields are set.
func (c Color) Valid() bool {
	return c&^Mask == 0
}

// Hex returns the color as 3 uppercase hexadecimal digits.
func (c Color) Hex() string {
	return fmt.Sprintf("%03X", uint16(c))
}

func (c Color) String() string {
	return "$" + c.Hex()
}

// Model converts colors to the closest representable VDP color.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	return FromRGB(c)
})

// FromPalette converts each color in p.
func FromPalette(p []color.NRGBA) []Color {
	out := make([]Color, len(p))
	for i, c := range p {
		out[i] = FromRGB(c)
	}
	return out
}

// ToPalette expands each VDP color in p back to 8 bits per channel.
func ToPalette(p []Color) []color.NRGBA {
	out := make([]color.NRGBA, len(p))
	for i, c := range p {
		out[i] = c.NRGBA()
	}
	return out
}
