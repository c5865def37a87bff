// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation using a
// gradient tape. It wraps any backend to add autodiff capabilities.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x := tensor.Rand(tensor.Shape{1, 3, 8, 8}, rng, backend)
//	y, _ := resample.ResizeImages(x, 16, 16)
//
//	grads := autodiff.Backward(y, backend)
//	gx := grads[x.Raw()]
package autodiff

import (
	"github.com/born-ml/resample/internal/autodiff"
	"github.com/born-ml/resample/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable interface for backends that support backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients of sum(t) via backpropagation.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}

// BackwardWith computes gradients starting from an explicit output gradient.
func BackwardWith[B BackwardCapable](outputGrad *tensor.RawTensor, backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.BackwardWith(outputGrad, backend)
}
