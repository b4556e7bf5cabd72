/*
Package megabkg is a library for converting images into Sega Mega Drive VDP
graphics; BKG background containers, CHR tile dumps and palettes.

A screen is reduced to at most two 16 color palettes, one per scroll plane,
and each plane is cut into a deduplicated set of 8 by 8 tiles plus a tile map
describing how to rebuild the screen.
*/
package megabkg

import (
	"io/ioutil"
	"log"
)

// Converter turns images into VDP assets. Each conversion is independent so
// a Converter may be shared between goroutines.
type Converter struct {
	db     *AssetDB
	logger *log.Logger

	// Fast selects the direct pixel memory palette extraction, which is
	// quicker but not guaranteed to match the exhaustive scan
	Fast bool

	// Threshold, one of ThresholdRGB or ThresholdGray, remaps images before
	// any other processing
	Threshold string

	// Colors, when positive, reduces images to at most that many VDP colors
	// before conversion. Dither diffuses the error when doing so.
	Colors int
	Dither bool
}

// New returns a Converter. db caches conversions and may be nil. A nil
// logger discards all output.
func New(db *AssetDB, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Converter{
		db:     db,
		logger: logger,
	}
}
