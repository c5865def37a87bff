package interp

import (
	"fmt"
	"strings"
)

// Mode selects the sampling rule.
type Mode int

// Supported sampling modes.
const (
	Bilinear Mode = iota
	Nearest
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Bilinear:
		return "bilinear"
	case Nearest:
		return "nearest"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "bilinear" or "nearest" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bilinear":
		return Bilinear, nil
	case "nearest":
		return Nearest, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Params describes one resize operator instance. The same Params drive the
// forward operator and its gradient.
type Params struct {
	OutH, OutW   int
	Mode         Mode
	AlignCorners bool // only meaningful for Bilinear
}

// DefaultParams returns bilinear, align-corners params for the given size.
func DefaultParams(outH, outW int) Params {
	return Params{OutH: outH, OutW: outW, Mode: Bilinear, AlignCorners: true}
}

// Validate checks the output size and mode.
func (p Params) Validate() error {
	if p.OutH < 1 || p.OutW < 1 {
		return fmt.Errorf("%w: got (%d, %d)", ErrInvalidOutputSize, p.OutH, p.OutW)
	}
	if p.Mode != Bilinear && p.Mode != Nearest {
		return fmt.Errorf("%w: %v", ErrInvalidMode, p.Mode)
	}
	return nil
}

// String formats params for error messages and logs.
func (p Params) String() string {
	if p.Mode == Nearest {
		return fmt.Sprintf("%dx%d nearest", p.OutH, p.OutW)
	}
	align := "align_edges"
	if p.AlignCorners {
		align = "align_corners"
	}
	return fmt.Sprintf("%dx%d %s %s", p.OutH, p.OutW, p.Mode, align)
}
