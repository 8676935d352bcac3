package render

import "errors"

// Precondition failures. They are reported before any pixel buffer is
// allocated and are never worth retrying.
var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidScale      = errors.New("invalid scale")
	ErrInvalidIterations = errors.New("invalid max iterations")
	ErrInvalidBailout    = errors.New("invalid bailout radius")
	ErrUnknownPolicy     = errors.New("unknown color policy")
	ErrInvalidPolicy     = errors.New("invalid color policy")
	ErrUnknownConvention = errors.New("unknown viewport convention")

	// ErrDispatcherClosed is returned by Dispatcher.Submit after Close.
	ErrDispatcherClosed = errors.New("dispatcher closed")
)
