// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package resample

import "github.com/born-ml/resample/internal/interp"

// Errors returned by ResizeImages and ResizeImagesGrad.
var (
	ErrInvalidRank       = interp.ErrInvalidRank
	ErrInvalidShape      = interp.ErrInvalidShape
	ErrInvalidDtype      = interp.ErrInvalidDtype
	ErrInvalidOutputSize = interp.ErrInvalidOutputSize
	ErrInvalidMode       = interp.ErrInvalidMode
	ErrShapeMismatch     = interp.ErrShapeMismatch
	ErrNoBackend         = interp.ErrNoBackend
)
