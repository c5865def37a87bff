package interp

import "errors"

// Input contract errors. They are returned before any computation starts and
// are never retried.
var (
	ErrInvalidRank       = errors.New("input must be 4D [N, C, H, W]")
	ErrInvalidShape      = errors.New("input dimensions must be positive")
	ErrInvalidDtype      = errors.New("input must be float32")
	ErrInvalidOutputSize = errors.New("output size must be positive")
	ErrInvalidMode       = errors.New("unknown sampling mode")
	ErrShapeMismatch     = errors.New("gradient shape does not match output shape")
	ErrNoBackend         = errors.New("no backend registered for device")
)
