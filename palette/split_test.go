package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayRamp(from, n int) Palette {
	p := make(Palette, n)
	for i := range p {
		v := uint8(from + i*4)
		p[i] = color.NRGBA{v, v, 0x40, 0xff}
	}
	return p
}

func TestSplitNil(t *testing.T) {
	t.Parallel()

	_, _, err := Split(nil)
	assert.Equal(t, ErrNilPalette, err)

	a, b, err := Split(Palette{})
	require.Nil(t, err)
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestSplitPinsBlackAndWhite(t *testing.T) {
	t.Parallel()

	nearBlack := color.NRGBA{5, 10, 15, 0xff}
	nearWhite := color.NRGBA{0x10, 0xf0, 0x10, 0xff}
	in := Palette{red, nearWhite, green, nearBlack, blue}
	orig := append(Palette(nil), in...)

	a, b, err := Split(in)
	require.Nil(t, err)
	assert.Equal(t, Palette{black, nearWhite, red, green, blue}, a)
	assert.Empty(t, b)
	assert.Equal(t, orig, in, "input must not be modified")
}

func TestSplitOverflow(t *testing.T) {
	t.Parallel()

	in := append(Palette{white}, grayRamp(0x40, 20)...)
	in = append(in, color.NRGBA{1, 1, 1, 0xff})

	a, b, err := Split(in)
	require.Nil(t, err)
	require.Len(t, a, MaxColors)
	assert.Equal(t, black, a[0])
	assert.Equal(t, white, a[1])
	assert.Equal(t, in[1:15], a[2:])

	require.Len(t, b, 7)
	assert.Equal(t, black, b[0])
	assert.Equal(t, in[15:21], b[1:])
}

func TestSplitOnlyFirstPinned(t *testing.T) {
	t.Parallel()

	other := color.NRGBA{2, 2, 2, 0xff}
	otherWhite := color.NRGBA{0xe0, 0, 0, 0xff}
	in := Palette{color.NRGBA{1, 1, 1, 0xff}, white, other, otherWhite}

	a, b, err := Split(in)
	require.Nil(t, err)
	assert.Equal(t, Palette{black, white, other, otherWhite}, a)
	assert.Empty(t, b)
}

func TestSplitNoDuplicateBlack(t *testing.T) {
	t.Parallel()

	in := Palette{color.NRGBA{3, 3, 3, 0xff}, red, black}
	a, _, err := Split(in)
	require.Nil(t, err)
	assert.Equal(t, Palette{black, red}, a)
}

func TestSplitProperties(t *testing.T) {
	t.Parallel()

	for n := 0; n < 48; n++ {
		in := grayRamp(0x20, n)
		if n%3 == 0 {
			in = append(in, black)
		}

		a, b, err := Split(in)
		require.Nil(t, err)
		assert.LessOrEqual(t, len(a), MaxColors)
		if in.Contains(black) {
			assert.True(t, a.Contains(black))
		}
		if len(b) > 0 {
			assert.Equal(t, black, b[0])
		}

		// Every input color ends up somewhere
		for _, c := range in {
			if IsNearBlack(c) {
				continue
			}
			assert.True(t, a.Contains(c) || b.Contains(c), "%v lost", c)
		}
	}
}
