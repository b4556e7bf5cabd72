package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/megabkg/vdp"
)

var errNoColors = errors.New("palette: no colors found")

// WriteBinary writes each color of p as a big-endian packed VDP color.
func WriteBinary(w io.Writer, p Palette) error {
	if p == nil {
		return ErrNilPalette
	}
	return binary.Write(w, binary.BigEndian, vdp.FromPalette(p))
}

// Label returns the asset label for a file path; the base name without its
// extension and with spaces replaced by underscores.
func Label(path string) string {
	base := filepath.Base(path)
	return strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), " ", "_")
}

// Text formats p as a BasiEgaXorz palette declaration named after label.
func Text(label string, p Palette) string {
	hex := make([]string, len(p))
	for i, c := range vdp.FromPalette(p) {
		hex[i] = "$" + c.Hex()
	}
	return fmt.Sprintf("%s_pal: dataint     %s", label, strings.Join(hex, ", "))
}

// WriteText writes the result of Text to w.
func WriteText(w io.Writer, label string, p Palette) error {
	if p == nil {
		return ErrNilPalette
	}
	_, err := io.WriteString(w, Text(label, p))
	return err
}

// ParseText reads back the colors of a palette declaration. Every
// comma-separated field containing a '$' contributes one color, duplicates
// included, so each color keeps the index it was declared at.
func ParseText(s string) (Palette, error) {
	var p Palette
	for _, field := range strings.Split(s, ",") {
		i := strings.IndexByte(field, '$')
		if i < 0 {
			continue
		}
		v, err := strconv.ParseUint(strings.TrimSpace(field[i+1:]), 16, 16)
		if err != nil {
			return nil, fmt.Errorf("palette: bad color %q: %w", field[i:], err)
		}
		p = append(p, vdp.Color(v).NRGBA())
	}
	if len(p) == 0 {
		return nil, errNoColors
	}
	return p, nil
}
