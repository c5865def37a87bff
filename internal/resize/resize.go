// Package resize is the operator node for differentiable image resizing.
//
// Forward and Gradient share one interp.Params value and form an adjoint
// pair: Gradient(gy) is R*(gy) where Forward(x) is R(x). Both validate their
// inputs and return sentinel errors from package interp before any backend
// work starts; backends themselves panic on contract violations.
package resize

import (
	"fmt"

	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
)

// ValidateInput checks that x is a float32 [N, C, H, W] tensor with
// positive dimensions.
func ValidateInput(x *tensor.RawTensor) error {
	if x == nil {
		return fmt.Errorf("%w: nil tensor", interp.ErrInvalidRank)
	}
	if len(x.Shape()) != 4 {
		return fmt.Errorf("%w: got shape %v", interp.ErrInvalidRank, x.Shape())
	}
	if x.DType() != tensor.Float32 {
		return fmt.Errorf("%w: got %s", interp.ErrInvalidDtype, x.DType())
	}
	return nil
}

func validateShape(shape tensor.Shape) error {
	if len(shape) != 4 {
		return fmt.Errorf("%w: input shape %v", interp.ErrInvalidRank, shape)
	}
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("%w: input shape %v: %w", interp.ErrInvalidShape, shape, err)
	}
	return nil
}

// OutputShape returns (N, C, OutH, OutW) for an (N, C, H, W) input shape.
func OutputShape(inputShape tensor.Shape, p interp.Params) tensor.Shape {
	return tensor.Shape{inputShape[0], inputShape[1], p.OutH, p.OutW}
}

// Forward computes R(x) on backend b.
func Forward(x *tensor.RawTensor, p interp.Params, b tensor.Backend) (*tensor.RawTensor, error) {
	if err := ValidateInput(x); err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	return b.ResizeImages(x, p), nil
}

// Gradient computes R*(gy), the gradient with respect to an input of shape
// inputShape, on backend b.
func Gradient(gy *tensor.RawTensor, inputShape tensor.Shape, p interp.Params, b tensor.Backend) (*tensor.RawTensor, error) {
	if err := ValidateInput(gy); err != nil {
		return nil, fmt.Errorf("resize grad: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("resize grad: %w", err)
	}
	if err := validateShape(inputShape); err != nil {
		return nil, fmt.Errorf("resize grad: %w", err)
	}
	if want := OutputShape(inputShape, p); !gy.Shape().Equal(want) {
		return nil, fmt.Errorf("resize grad: %w: got %v, want %v", interp.ErrShapeMismatch, gy.Shape(), want)
	}
	return b.ResizeImagesGrad(gy, inputShape, p), nil
}
