// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package resample

import "github.com/born-ml/resample/internal/interp"

// Mode selects the sampling rule.
type Mode = interp.Mode

// Sampling modes.
const (
	Bilinear Mode = interp.Bilinear
	Nearest  Mode = interp.Nearest
)

// ParseMode converts "bilinear" or "nearest" to a Mode.
func ParseMode(s string) (Mode, error) {
	return interp.ParseMode(s)
}

// Params describes one resize: output size, mode and alignment.
type Params = interp.Params

// Option configures ResizeImages and ResizeImagesGrad.
type Option func(*Params)

// WithMode selects the sampling mode. Default: Bilinear.
func WithMode(m Mode) Option {
	return func(p *Params) { p.Mode = m }
}

// WithAlignCorners selects corner alignment (true) or edge alignment
// (false) for bilinear sampling. Default: true. Ignored by Nearest.
func WithAlignCorners(v bool) Option {
	return func(p *Params) { p.AlignCorners = v }
}

// NewParams builds Params for an outH x outW output from options.
func NewParams(outH, outW int, opts ...Option) Params {
	p := interp.DefaultParams(outH, outW)
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
