//go:build windows

package webgpu

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/resample/internal/backend/cpu"
	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomImage(t *testing.T, rng *rand.Rand, shape tensor.Shape, device tensor.Device) *tensor.RawTensor {
	t.Helper()
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = rng.Float32()*2 - 1
	}
	raw, err := tensor.FromFloat32(data, shape, device)
	require.NoError(t, err)
	return raw
}

func allParams(outH, outW int) []interp.Params {
	return []interp.Params{
		{OutH: outH, OutW: outW, Mode: interp.Bilinear, AlignCorners: true},
		{OutH: outH, OutW: outW, Mode: interp.Bilinear, AlignCorners: false},
		{OutH: outH, OutW: outW, Mode: interp.Nearest},
	}
}

func assertClose(t *testing.T, want, got []float32, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		tol := 1e-5 * math.Max(1, math.Abs(float64(want[i])))
		if !assert.InDelta(t, want[i], got[i], tol, msgAndArgs...) {
			return
		}
	}
}

func TestResizeImages_Scenario(t *testing.T) {
	backend := newTestBackend(t)

	x, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, tensor.WebGPU)
	require.NoError(t, err)

	y := backend.ResizeImages(x, interp.DefaultParams(4, 4))
	require.Equal(t, tensor.Shape{1, 1, 4, 4}, y.Shape())
	got := y.AsFloat32()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 1 + float64(j)/3 + 2*float64(i)/3
			assert.InDelta(t, want, float64(got[i*4+j]), 1e-5, "(%d,%d)", i, j)
		}
	}
}

func TestResizeImages_MatchesCPU(t *testing.T) {
	backend := newTestBackend(t)
	reference := cpu.New()
	rng := rand.New(rand.NewSource(1))

	shapes := []tensor.Shape{{1, 1, 1, 1}, {2, 3, 7, 5}, {1, 4, 16, 9}}
	sizes := [][2]int{{1, 1}, {3, 4}, {14, 10}, {33, 17}}
	for _, shape := range shapes {
		x := randomImage(t, rng, shape, tensor.WebGPU)
		for _, size := range sizes {
			for _, p := range allParams(size[0], size[1]) {
				want := reference.ResizeImages(x.WithDevice(tensor.CPU), p)
				got := backend.ResizeImages(x, p)
				require.Equal(t, want.Shape(), got.Shape())
				assertClose(t, want.AsFloat32(), got.AsFloat32(), "shape %v params %v", shape, p)
			}
		}
	}
}

func TestResizeImagesGrad_MatchesCPU(t *testing.T) {
	backend := newTestBackend(t)
	reference := cpu.New()
	rng := rand.New(rand.NewSource(2))

	shapes := []tensor.Shape{{1, 1, 1, 1}, {2, 3, 7, 5}, {1, 2, 16, 9}}
	sizes := [][2]int{{1, 1}, {3, 4}, {14, 10}, {33, 17}}
	for _, shape := range shapes {
		for _, size := range sizes {
			for _, p := range allParams(size[0], size[1]) {
				gy := randomImage(t, rng, tensor.Shape{shape[0], shape[1], p.OutH, p.OutW}, tensor.WebGPU)
				want := reference.ResizeImagesGrad(gy.WithDevice(tensor.CPU), shape, p)
				got := backend.ResizeImagesGrad(gy, shape, p)
				require.Equal(t, shape, got.Shape())
				// Atomic accumulation order varies; allow for summation rounding.
				for i, w := range want.AsFloat32() {
					assert.InDelta(t, w, got.AsFloat32()[i], 1e-4*math.Max(1, math.Abs(float64(w))))
				}
			}
		}
	}
}

func TestResizeImagesGrad_Adjoint(t *testing.T) {
	backend := newTestBackend(t)
	rng := rand.New(rand.NewSource(3))

	shape := tensor.Shape{2, 2, 6, 5}
	x := randomImage(t, rng, shape, tensor.WebGPU)
	for _, p := range allParams(9, 4) {
		gy := randomImage(t, rng, tensor.Shape{2, 2, 9, 4}, tensor.WebGPU)
		y := backend.ResizeImages(x, p)
		gx := backend.ResizeImagesGrad(gy, shape, p)

		var lhs, rhs float64
		for i, v := range y.AsFloat32() {
			lhs += float64(v) * float64(gy.AsFloat32()[i])
		}
		for i, v := range x.AsFloat32() {
			rhs += float64(v) * float64(gx.AsFloat32()[i])
		}
		assert.InDelta(t, lhs, rhs, 1e-3*math.Max(1, math.Abs(lhs)), "params %v", p)
	}
}

func TestResizeImagesGrad_ShapeMismatchPanics(t *testing.T) {
	backend := newTestBackend(t)
	gy, err := tensor.NewRaw(tensor.Shape{1, 1, 3, 3}, tensor.Float32, tensor.WebGPU)
	require.NoError(t, err)

	assert.Panics(t, func() {
		backend.ResizeImagesGrad(gy, tensor.Shape{1, 1, 2, 2}, interp.DefaultParams(4, 4))
	})
}
