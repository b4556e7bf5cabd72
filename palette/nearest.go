package palette

import (
	"image"
	"image/color"
	"math"
)

// MostFrequentOf returns the color occurring most often in colors. Ties go to
// the color seen first.
func MostFrequentOf(colors []color.NRGBA) (color.NRGBA, bool) {
	counts := make(map[color.NRGBA]int)
	order := make([]color.NRGBA, 0)
	for _, c := range colors {
		if _, ok := counts[c]; !ok {
			order = append(order, c)
		}
		counts[c]++
	}

	var best color.NRGBA
	max := 0
	for _, c := range order {
		if counts[c] > max {
			best, max = c, counts[c]
		}
	}
	return best, max > 0
}

// MostFrequent returns the most common color in m. Pixels are visited column
// by column.
func MostFrequent(m image.Image) (color.NRGBA, bool) {
	b := m.Bounds()
	colors := make([]color.NRGBA, 0, b.Dx()*b.Dy())
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			colors = append(colors, toNRGBA(m.At(x, y)))
		}
	}
	return MostFrequentOf(colors)
}

func sqDiff(x, y uint8) int {
	d := int(x) - int(y)
	return d * d
}

// Nearest returns the palette color with the smallest squared RGB distance to
// c. Alpha is ignored and the first of several equally close colors wins.
func (p Palette) Nearest(c color.Color) (color.NRGBA, bool) {
	n := toNRGBA(c)
	var best color.NRGBA
	bestSum := math.MaxInt32
	for _, pc := range p {
		sum := sqDiff(n.R, pc.R) + sqDiff(n.G, pc.G) + sqDiff(n.B, pc.B)
		if sum < bestSum {
			bestSum, best = sum, pc
		}
	}
	return best, len(p) > 0
}

func distance(c1, c2 color.NRGBA) float64 {
	r := float64(c1.R) - float64(c2.R)
	g := float64(c1.G) - float64(c2.G)
	b := float64(c1.B) - float64(c2.B)
	return math.Sqrt(r*r + g*g + b*b)
}

// MostSimilar returns c unchanged if it is in the palette, otherwise the
// color with the smallest Euclidean RGB distance.
func (p Palette) MostSimilar(c color.Color) (color.NRGBA, bool) {
	n := toNRGBA(c)
	if p.Contains(n) {
		return n, true
	}

	var best color.NRGBA
	min := math.MaxFloat64
	for _, pc := range p {
		if d := distance(pc, n); d < min {
			min, best = d, pc
		}
	}
	return best, len(p) > 0
}
