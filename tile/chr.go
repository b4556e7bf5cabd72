package tile

import (
	"image"
	"io"
	"math"
)

// EncodeCHR writes the tiles to w with no header.
func EncodeCHR(w io.Writer, tiles []Tile) error {
	var tmp [Size]byte
	for i := range tiles {
		tiles[i].pack(tmp[:])
		if _, err := w.Write(tmp[:]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeCHR reads tiles from r until EOF. A trailing partial tile is kept
// with its missing pixels set to index 0.
func DecodeCHR(r io.Reader) ([]Tile, error) {
	var tiles []Tile
	for {
		var tmp [Size]byte
		n, err := io.ReadFull(r, tmp[:])
		if n > 0 {
			var t Tile
			t.unpack(tmp[:])
			tiles = append(tiles, t)
		}
		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			return tiles, nil
		default:
			return nil, err
		}
	}
}

// Layout suggests the most square arrangement in tiles of n tiles, for
// reporting a sensible size when a CHR file doesn't match the one asked for.
func Layout(n int) (cols, rows int) {
	cols, rows = 1, n
	for w := 1; w <= int(math.Sqrt(float64(n))); w++ {
		if n%w == 0 {
			cols, rows = w, n/w
		}
	}
	return
}

// Order is the placement order of tiles in an image.
type Order int

const (
	// RowMajor places tiles left to right then top to bottom, as in a
	// screen or font.
	RowMajor Order = iota
	// ColumnMajor fills a vertical strip before moving right, as the VDP
	// lays out sprite patterns.
	ColumnMajor
)

// Draw places tiles into dst from its top-left corner in the given order,
// stopping when dst is full. Palette indices are written unchanged.
func Draw(dst *image.Paletted, tiles []Tile, order Order) {
	b := dst.Bounds()
	x, y := 0, 0
	for i := range tiles {
		if x >= b.Dx() || y >= b.Dy() {
			return
		}
		for ty := 0; ty < Height; ty++ {
			for tx := 0; tx < Width; tx++ {
				p := image.Point{b.Min.X + x + tx, b.Min.Y + y + ty}
				if p.In(b) {
					dst.SetColorIndex(p.X, p.Y, tiles[i].At(tx, ty))
				}
			}
		}

		switch order {
		case ColumnMajor:
			if y+Height < b.Dy() {
				y += Height
			} else {
				y, x = 0, x+Width
			}
		default:
			if x+Width < b.Dx() {
				x += Width
			} else {
				x, y = 0, y+Height
			}
		}
	}
}
