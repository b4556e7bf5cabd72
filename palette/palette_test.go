package palette

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{0xff, 0, 0, 0xff}
	green = color.NRGBA{0, 0xff, 0, 0xff}
	blue  = color.NRGBA{0, 0, 0xff, 0xff}
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

func fill(m *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
}

func randomImage(seed int64, w, h, colors int) *image.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(rng.Intn(colors))
			m.SetNRGBA(x, y, color.NRGBA{v * 7, v * 3, v, 0xff})
		}
	}
	return m
}

func TestExtract(t *testing.T) {
	t.Parallel()

	m := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	fill(m, m.Bounds(), blue)
	m.SetNRGBA(2, 0, red)
	m.SetNRGBA(0, 1, green)
	m.SetNRGBA(3, 1, red)

	assert.Equal(t, Palette{blue, red, green}, Extract(m))
	assert.Equal(t, Palette{blue, red, green}, ExtractFast(m))
}

func TestExtractCountsDistinct(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 5; seed++ {
		m := randomImage(seed, 24, 16, 20)
		distinct := make(map[color.Color]struct{})
		for y := 0; y < 16; y++ {
			for x := 0; x < 24; x++ {
				distinct[m.At(x, y)] = struct{}{}
			}
		}
		assert.Len(t, Extract(m), len(distinct))
		assert.Equal(t, Extract(m), ExtractFast(m))
	}
}

func TestExtractEmpty(t *testing.T) {
	t.Parallel()

	m := image.NewNRGBA(image.Rectangle{})
	assert.Empty(t, Extract(m))
	assert.Empty(t, ExtractFast(m))
}

func TestExtractFastSubImage(t *testing.T) {
	t.Parallel()

	m := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.Set(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 0, 0xff})
		}
	}
	sub := m.SubImage(image.Rect(2, 3, 5, 6))
	assert.Equal(t, Extract(sub), ExtractFast(sub))
	assert.Len(t, ExtractFast(sub), 9)

	pm := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{red, blue})
	pm.SetColorIndex(1, 1, 1)
	assert.Equal(t, Palette{red, blue}, ExtractFast(pm))

	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(1, 0, color.Gray{0x80})
	assert.Equal(t, Extract(gray), ExtractFast(gray))
}

func TestIndex(t *testing.T) {
	t.Parallel()

	p := Palette{red, green}
	i, ok := p.Index(green)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = p.Index(blue)
	assert.False(t, ok)
	assert.True(t, p.Contains(color.RGBA{0xff, 0, 0, 0xff}))

	assert.Equal(t, map[color.NRGBA]int{red: 0, green: 1}, p.Indexer())
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	p := make(Palette, 20)
	for i := range p {
		p[i] = color.NRGBA{uint8(i), 0, 0, 0xff}
	}
	short, dropped := p.Truncate()
	assert.True(t, dropped)
	assert.Len(t, short, MaxColors)

	short, dropped = p[:3].Truncate()
	assert.False(t, dropped)
	assert.Len(t, short, 3)
}

func TestMostFrequent(t *testing.T) {
	t.Parallel()

	c, ok := MostFrequentOf([]color.NRGBA{red, green, green, red, blue})
	require.True(t, ok)
	assert.Equal(t, red, c, "ties go to the first color seen")

	_, ok = MostFrequentOf(nil)
	assert.False(t, ok)

	m := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	fill(m, m.Bounds(), blue)
	m.SetNRGBA(0, 0, red)
	c, ok = MostFrequent(m)
	require.True(t, ok)
	assert.Equal(t, blue, c)
}

func TestNearest(t *testing.T) {
	t.Parallel()

	p := Palette{black, white, red}

	c, ok := p.Nearest(color.NRGBA{0xf0, 0x10, 0x10, 0xff})
	require.True(t, ok)
	assert.Equal(t, red, c)

	c, _ = p.Nearest(color.NRGBA{0x10, 0x10, 0x10, 0xff})
	assert.Equal(t, black, c)

	// Equidistant from both, the first wins
	tie := Palette{color.NRGBA{0, 0, 0, 0xff}, color.NRGBA{20, 0, 0, 0xff}}
	c, _ = tie.Nearest(color.NRGBA{10, 0, 0, 0xff})
	assert.Equal(t, tie[0], c)

	_, ok = Palette{}.Nearest(red)
	assert.False(t, ok)
}

func TestMostSimilar(t *testing.T) {
	t.Parallel()

	p := Palette{black, white, red}

	c, ok := p.MostSimilar(white)
	require.True(t, ok)
	assert.Equal(t, white, c)

	c, _ = p.MostSimilar(color.NRGBA{0xc0, 0xc0, 0xc0, 0xff})
	assert.Equal(t, white, c)

	// Exact membership includes alpha, distance ignores it
	translucent := color.NRGBA{0xff, 0, 0, 0x80}
	c, _ = p.MostSimilar(translucent)
	assert.Equal(t, red, c)

	_, ok = Palette{}.MostSimilar(red)
	assert.False(t, ok)
}
