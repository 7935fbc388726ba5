package waysurface

import "fmt"

// DefaultSize is used when the compositor leaves sizing to the client.
var DefaultSize = WindowSize{Width: 320, Height: 320}

// WindowSize is a window extent in surface-local pixels.
type WindowSize struct {
	Width  uint32
	Height uint32
}

// IsZero reports whether either dimension is zero.
func (s WindowSize) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

func (s WindowSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ResolveSize converts a toplevel configure extent into a usable size.
// A zero or negative dimension means the compositor defers to the client and
// is replaced by the corresponding dimension of fallback.
func ResolveSize(width, height int32, fallback WindowSize) WindowSize {
	size := fallback
	if width > 0 {
		size.Width = uint32(width)
	}
	if height > 0 {
		size.Height = uint32(height)
	}
	return size
}
