package present

import "errors"

// Errors returned by Manager.
var (
	// ErrNotInitialized is returned when Configure runs before Initialize.
	ErrNotInitialized = errors.New("present: manager not initialized")

	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("present: manager already initialized")

	// ErrNoCompatibleAdapter is returned when no adapter can present to the
	// window surface.
	ErrNoCompatibleAdapter = errors.New("present: no compatible GPU adapter")

	// ErrNoDevice is returned when the adapter refuses to create a device.
	ErrNoDevice = errors.New("present: cannot create GPU device")

	// ErrInvalidSize is returned for a zero width or height.
	ErrInvalidSize = errors.New("present: surface size must be positive")

	// ErrNoSurfaceFormat is returned when the surface reports no formats.
	ErrNoSurfaceFormat = errors.New("present: surface reports no supported formats")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "present: backend not found: " + e.Name
}
