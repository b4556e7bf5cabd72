package palette

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBinary(t *testing.T) {
	t.Parallel()

	b := new(bytes.Buffer)
	require.Nil(t, WriteBinary(b, Palette{black, white, red, blue}))
	assert.Equal(t, []byte{0x00, 0x00, 0x0e, 0xee, 0x00, 0x0e, 0x0e, 0x00}, b.Bytes())

	assert.Equal(t, ErrNilPalette, WriteBinary(b, nil))
}

func TestLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "title_screen", Label("/tmp/art/title screen.png"))
	assert.Equal(t, "font", Label("font"))
}

func TestText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "logo_pal: dataint     $000, $EEE, $00E", Text("logo", Palette{black, white, red}))

	b := new(bytes.Buffer)
	require.Nil(t, WriteText(b, "x", Palette{green}))
	assert.Equal(t, "x_pal: dataint     $0E0", b.String())
}

func TestParseText(t *testing.T) {
	t.Parallel()

	p, err := ParseText("logo_pal: dataint     $000, $EEE, $00E")
	require.Nil(t, err)
	assert.Equal(t, Palette{
		{0, 0, 0, 0xff},
		{0xe0, 0xe0, 0xe0, 0xff},
		{0xe0, 0, 0, 0xff},
	}, p)

	// Colors sharing a VDP value keep their own index
	p, err = ParseText("x_pal: dataint $000, $00E, $000, $0E0")
	require.Nil(t, err)
	require.Len(t, p, 4)
	i, ok := p.Index(color.NRGBA{0, 0xe0, 0, 0xff})
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, err = ParseText("nothing here")
	assert.NotNil(t, err)

	_, err = ParseText("x_pal: dataint $XYZ")
	assert.NotNil(t, err)
}

func TestReduce(t *testing.T) {
	t.Parallel()

	m := randomImage(42, 32, 16, 64)
	for _, diffuse := range []bool{false, true} {
		pm := Reduce(m, 8, diffuse)
		require.NotNil(t, pm)
		assert.Equal(t, m.Bounds(), pm.Bounds())
		assert.LessOrEqual(t, len(pm.Palette), 8)

		for _, c := range ExtractFast(pm) {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			assert.Zero(t, n.R%32)
			assert.Zero(t, n.G%32)
			assert.Zero(t, n.B%32)
		}
	}

	solid := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fill(solid, solid.Bounds(), white)
	pm := Reduce(solid, 4, true)
	assert.Equal(t, Palette{{0xe0, 0xe0, 0xe0, 0xff}}, Extract(pm))
}
