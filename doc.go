// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package resample provides differentiable 2D image resizing.
//
// ResizeImages resamples a float32 [N, C, H, W] tensor to [N, C, outH, outW]
// with bilinear or nearest-neighbour sampling. ResizeImagesGrad is its exact
// adjoint. When the tensor's backend is an autodiff.Backend, ResizeImages is
// recorded on the tape and autodiff.Backward routes gradients through
// ResizeImagesGrad. Backward does not record the operations it runs, so the
// gradients it returns are not themselves differentiable. A ResizeImagesGrad
// call made explicitly while the tape is recording is recorded and can be
// differentiated like any other operation.
//
// # Coordinate rules
//
// For an input of height H and output height outH (columns are analogous):
//
//	align corners:  v(i) = i * (H-1) / (outH-1)     (v = 0 when outH == 1)
//	align edges:    v(i) = max((i+0.5) * H / outH - 0.5, 0)
//	nearest:        v(i) = min(floor(i * H / outH), H-1)
//
// Neighbour indices are clamped to the last row and column.
//
// # Basic Usage
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, backend)
//	y, err := resample.ResizeImages(x, 4, 4)
//	// y[i][j] = 1 + j/3 + 2i/3
//
// Errors are sentinel values (ErrInvalidRank, ErrInvalidOutputSize, ...)
// wrapped with context; test them with errors.Is.
package resample
