// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor types used by the resample operator.
//
// # Overview
//
// Tensors hold float32 image batches in NCHW layout:
//   - Generic tensors bound to a backend (Tensor[T, B])
//   - Low-level RawTensor with reference-counted buffers
//   - Device tags that select the backend for an operation
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/resample/backend/cpu"
//	    "github.com/born-ml/resample/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x)
//	}
package tensor
