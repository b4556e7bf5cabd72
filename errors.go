package megabkg

import "errors"

var (
	// ErrInvalidArgument is returned when a required input is missing or
	// malformed. No output is written.
	ErrInvalidArgument = errors.New("megabkg: invalid argument")

	// ErrUnsupportedMode is returned when an entry point doesn't implement
	// the requested kind of image or export.
	ErrUnsupportedMode = errors.New("megabkg: unsupported mode")

	// ErrSizeMismatch is returned when the size of a tile file disagrees
	// with the image dimensions asked for.
	ErrSizeMismatch = errors.New("megabkg: size mismatch")

	// ErrPaletteOverflow is logged when a palette has more colors than the
	// hardware allows and conversion continues with the first 16 colors.
	// Only CheckColors returns it.
	ErrPaletteOverflow = errors.New("megabkg: more than 16 colors in palette")
)
