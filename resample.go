// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package resample

import (
	"fmt"

	"github.com/born-ml/resample/internal/resize"
	"github.com/born-ml/resample/tensor"
)

// ResizeImages resamples x [N, C, H, W] to [N, C, outH, outW] on x's backend.
//
// Example:
//
//	y, err := resample.ResizeImages(x, 224, 224, resample.WithAlignCorners(false))
func ResizeImages[B tensor.Backend](x *tensor.Tensor[float32, B], outH, outW int, opts ...Option) (*tensor.Tensor[float32, B], error) {
	if x == nil {
		return nil, fmt.Errorf("resize: %w: nil tensor", ErrInvalidRank)
	}
	b := x.Backend()
	y, err := resize.Forward(x.Raw(), NewParams(outH, outW, opts...), b)
	if err != nil {
		return nil, err
	}
	return tensor.New[float32](y, b), nil
}

// ResizeImagesGrad computes the gradient with respect to the input of
// ResizeImages, given the upstream gradient gy [N, C, outH, outW] and the
// input shape [N, C, H, W]. The options must match the forward call.
func ResizeImagesGrad[B tensor.Backend](gy *tensor.Tensor[float32, B], inputShape tensor.Shape, outH, outW int, opts ...Option) (*tensor.Tensor[float32, B], error) {
	if gy == nil {
		return nil, fmt.Errorf("resize grad: %w: nil tensor", ErrInvalidRank)
	}
	b := gy.Backend()
	gx, err := resize.Gradient(gy.Raw(), inputShape, NewParams(outH, outW, opts...), b)
	if err != nil {
		return nil, err
	}
	return tensor.New[float32](gx, b), nil
}
