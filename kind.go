package megabkg

import "fmt"

// Kind is the type of graphic being converted.
type Kind int

const (
	// Screen is a full background split into up to two planes
	Screen Kind = iota
	// Sprite is cut into units of at most 32 by 32 pixels
	Sprite
	// Window is the fixed window plane
	Window
	// Font is every tile of the image in reading order
	Font
)

var kindNames = map[Kind]string{
	Screen: "screen",
	Sprite: "sprite",
	Window: "window",
	Font:   "font",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, s)
}
