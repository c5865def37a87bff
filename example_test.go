// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package resample_test

import (
	"fmt"

	"github.com/born-ml/resample"
	"github.com/born-ml/resample/backend/cpu"
	"github.com/born-ml/resample/tensor"
)

func ExampleResizeImages() {
	backend := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, backend)

	y, err := resample.ResizeImages(x, 3, 3)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(y.Data())
	// Output: [1 1.5 2 2 2.5 3 3 3.5 4]
}

func ExampleResizeImages_nearest() {
	backend := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, backend)

	y, _ := resample.ResizeImages(x, 4, 4, resample.WithMode(resample.Nearest))
	fmt.Println(y.Data())
	// Output: [1 1 2 2 1 1 2 2 3 3 4 4 3 3 4 4]
}
