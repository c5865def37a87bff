// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the resample operator.
//
// # Overview
//
// This package implements:
//   - Pure Go implementation (no CGO)
//   - Cache-blocked bilinear and nearest resize over output row panels
//   - Scatter-add gradient parallelized across image planes
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/resample"
//	    "github.com/born-ml/resample/backend/cpu"
//	    "github.com/born-ml/resample/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{1, 3, 32, 32}, backend)
//	    y, err := resample.ResizeImages(x, 64, 64)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation is isolated
// and does not share mutable state.
package cpu
