package vdp

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRGB(t *testing.T) {
	t.Parallel()

	tables := []struct {
		name string
		in   color.NRGBA
		want Color
	}{
		{"black", color.NRGBA{0, 0, 0, 0xff}, 0x0000},
		{"white", color.NRGBA{0xff, 0xff, 0xff, 0xff}, 0x0eee},
		{"red", color.NRGBA{0xff, 0, 0, 0xff}, 0x000e},
		{"green", color.NRGBA{0, 0xff, 0, 0xff}, 0x00e0},
		{"blue", color.NRGBA{0, 0, 0xff, 0xff}, 0x0e00},
		{"truncates", color.NRGBA{0x3f, 0x40, 0x5f, 0xff}, 0x0442},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			t.Parallel()
			got := FromRGB(table.in)
			assert.Equal(t, table.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for r := 0; r < 256; r += 16 {
		for g := 0; g < 256; g += 16 {
			for b := 0; b < 256; b += 16 {
				c := color.NRGBA{uint8(r), uint8(g), uint8(b), 0xff}
				got := FromRGB(c).NRGBA()
				exact := r%32 == 0 && g%32 == 0 && b%32 == 0
				assert.Equal(t, exact, got == c, "%v -> %v", c, got)
			}
		}
	}

	assert.Equal(t, color.NRGBA{0xe0, 0xe0, 0xe0, 0xff}, FromRGB(color.White).NRGBA())
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, Color(0).NRGBA())
}

func TestColorModel(t *testing.T) {
	t.Parallel()

	c := Model.Convert(color.NRGBA{0xff, 0x80, 0x10, 0xff})
	assert.Equal(t, Color(0x008e), c)

	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0xe0e0), r)
	assert.Equal(t, uint32(0x8080), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)

	assert.Equal(t, Color(0x0123), Model.Convert(Color(0x0123)))
}

func TestHex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "EEE", Color(0x0eee).Hex())
	assert.Equal(t, "00E", Color(0x000e).Hex())
	assert.Equal(t, "$000", Color(0).String())
	assert.False(t, Color(0x0001).Valid())
	assert.False(t, Color(0x1000).Valid())
}

func TestPalettes(t *testing.T) {
	t.Parallel()

	p := []color.NRGBA{{0, 0, 0, 0xff}, {0xff, 0xff, 0xff, 0xff}}
	v := FromPalette(p)
	assert.Equal(t, []Color{0x0000, 0x0eee}, v)
	assert.Equal(t, []color.NRGBA{{0, 0, 0, 0xff}, {0xe0, 0xe0, 0xe0, 0xff}}, ToPalette(v))
}
