package cpu

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/parallel"
	"github.com/born-ml/resample/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResizeImagesGrad_Adjoint checks <R(x), gy> == <x, R*(gy)>.
func TestResizeImagesGrad_Adjoint(t *testing.T) {
	backend := New()
	rng := rand.New(rand.NewSource(10))

	shapes := []tensor.Shape{{1, 1, 2, 2}, {2, 3, 5, 4}, {1, 2, 1, 7}}
	sizes := [][2]int{{1, 1}, {4, 4}, {3, 9}, {11, 2}}
	for _, shape := range shapes {
		x := randomImage(t, rng, shape)
		for _, size := range sizes {
			for _, p := range allParams(size[0], size[1]) {
				gy := randomImage(t, rng, tensor.Shape{shape[0], shape[1], p.OutH, p.OutW})

				y := backend.ResizeImages(x, p)
				gx := backend.ResizeImagesGrad(gy, shape, p)

				require.Equal(t, shape, gx.Shape())
				lhs := dot(y.AsFloat32(), gy.AsFloat32())
				rhs := dot(x.AsFloat32(), gx.AsFloat32())
				assert.InDelta(t, lhs, rhs, 1e-4*math.Max(1, math.Abs(lhs)), "shape %v params %v", shape, p)
			}
		}
	}
}

// TestResizeImagesGrad_ScatterCollisions downsamples 4x4 -> 1x1 and upsamples
// 1x1 -> 3x3: every output cell lands on the same input pixel.
func TestResizeImagesGrad_ScatterCollisions(t *testing.T) {
	backend := New()

	gy, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, tensor.Shape{1, 1, 3, 3}, tensor.CPU)
	require.NoError(t, err)
	gx := backend.ResizeImagesGrad(gy, tensor.Shape{1, 1, 1, 1}, interp.DefaultParams(3, 3))
	assert.InDelta(t, 45.0, float64(gx.AsFloat32()[0]), 1e-5)

	one, err := tensor.FromFloat32([]float32{2}, tensor.Shape{1, 1, 1, 1}, tensor.CPU)
	require.NoError(t, err)
	gx = backend.ResizeImagesGrad(one, tensor.Shape{1, 1, 4, 4}, interp.DefaultParams(1, 1))
	want := make([]float32, 16)
	want[0] = 2
	assert.Equal(t, want, gx.AsFloat32())
}

// TestResizeImagesGrad_Nearest routes each gradient to exactly one pixel.
func TestResizeImagesGrad_Nearest(t *testing.T) {
	backend := New()
	gy, err := tensor.FromFloat32([]float32{1, 1, 1, 1, 1, 1}, tensor.Shape{1, 1, 1, 6}, tensor.CPU)
	require.NoError(t, err)

	gx := backend.ResizeImagesGrad(gy, tensor.Shape{1, 1, 1, 3}, interp.Params{OutH: 1, OutW: 6, Mode: interp.Nearest})

	assert.Equal(t, []float32{2, 2, 2}, gx.AsFloat32())
}

// TestResizeImagesGrad_SmallContributionsAccumulate sums 4096 increments of
// 2^-24 onto a pixel already holding 1. Each increment alone is below half an
// ulp of 1 in float32; their sum is not.
func TestResizeImagesGrad_SmallContributionsAccumulate(t *testing.T) {
	const tiny = 4096
	data := make([]float32, 1+tiny)
	data[0] = 1
	for i := 1; i < len(data); i++ {
		data[i] = float32(math.Ldexp(1, -24))
	}
	gy, err := tensor.FromFloat32(data, tensor.Shape{1, 1, 1, len(data)}, tensor.CPU)
	require.NoError(t, err)

	for _, backend := range []tensor.Backend{New(), tensor.NewMockBackend()} {
		gx := backend.ResizeImagesGrad(gy, tensor.Shape{1, 1, 1, 1}, interp.DefaultParams(1, len(data)))
		assert.Equal(t, []float32{float32(1 + 1.0/tiny)}, gx.AsFloat32(), backend.Name())
	}
}

func TestResizeImagesGrad_MatchesReference(t *testing.T) {
	backend := NewWithConfig(Config{
		Parallel:            parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1},
		MinParallelElements: 1,
	})
	ref := tensor.NewMockBackend()
	rng := rand.New(rand.NewSource(11))

	shape := tensor.Shape{3, 2, 6, 5}
	for _, p := range allParams(13, 4) {
		gy := randomImage(t, rng, tensor.Shape{3, 2, 13, 4})
		want := ref.ResizeImagesGrad(gy, shape, p).AsFloat32()
		got := backend.ResizeImagesGrad(gy, shape, p).AsFloat32()
		assert.Equal(t, want, got, "params %v", p)
	}
}

func TestResizeImagesGrad_ShapeMismatchPanics(t *testing.T) {
	backend := New()
	gy, _ := tensor.NewRaw(tensor.Shape{1, 1, 3, 3}, tensor.Float32, tensor.CPU)

	assert.Panics(t, func() {
		backend.ResizeImagesGrad(gy, tensor.Shape{1, 1, 2, 2}, interp.DefaultParams(4, 4))
	})
}

func BenchmarkResizeImagesGrad(b *testing.B) {
	backend := New()
	gy, _ := tensor.NewRaw(tensor.Shape{8, 16, 128, 128}, tensor.Float32, tensor.CPU)
	for i, data := 0, gy.AsFloat32(); i < len(data); i++ {
		data[i] = 1
	}
	inputShape := tensor.Shape{8, 16, 64, 64}
	p := interp.DefaultParams(128, 128)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.ResizeImagesGrad(gy, inputShape, p)
	}
}
