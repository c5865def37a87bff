// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
)

// Backend defines the interface that all compute backends must implement.
//
// Implementations:
//   - backend/cpu: Pure Go, cache-blocked resize kernels
//   - backend/webgpu: GPU compute via WebGPU
//
// Decorator backends for additional functionality:
//   - autodiff: Automatic differentiation (wraps any backend)
type Backend interface {
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.

	// ResizeImages resamples [N, C, H, W] to [N, C, p.OutH, p.OutW].
	ResizeImages(x *RawTensor, p interp.Params) *RawTensor
	// ResizeImagesGrad is the adjoint of ResizeImages for an input of inputShape.
	ResizeImagesGrad(gy *RawTensor, inputShape Shape, p interp.Params) *RawTensor

	// Metadata.
	Name() string   // Backend name (e.g., "CPU", "WebGPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
