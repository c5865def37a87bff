package tensor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/resample/internal/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw_InvalidShape(t *testing.T) {
	_, err := NewRaw(Shape{1, 0, 2, 2}, Float32, CPU)
	require.Error(t, err)
}

func TestFromSlice(t *testing.T) {
	b := NewMockBackend()
	x, err := FromSlice([]float32{1, 2, 3, 4}, Shape{1, 1, 2, 2}, b)
	require.NoError(t, err)

	assert.Equal(t, Float32, x.DType())
	assert.Equal(t, CPU, x.Device())
	assert.Equal(t, float32(3), x.At(0, 0, 1, 0))

	x.Set(9, 0, 0, 1, 1)
	assert.Equal(t, []float32{1, 2, 3, 9}, x.Data())

	_, err = FromSlice([]float32{1, 2, 3}, Shape{2, 2}, b)
	require.Error(t, err)
}

func TestRawTensor_CloneSharesBuffer(t *testing.T) {
	raw, err := FromFloat32([]float32{1, 2}, Shape{2}, CPU)
	require.NoError(t, err)
	assert.True(t, raw.IsUnique())

	view := raw.WithDevice(WebGPU)
	assert.False(t, raw.IsUnique())
	assert.Equal(t, WebGPU, view.Device())

	view.AsFloat32()[0] = 5
	assert.Equal(t, float32(5), raw.AsFloat32()[0])
}

func TestRawTensor_ForceNonUnique(t *testing.T) {
	raw, err := NewRaw(Shape{3}, Float32, CPU)
	require.NoError(t, err)

	restore := raw.ForceNonUnique()
	assert.False(t, raw.IsUnique())
	restore()
	assert.True(t, raw.IsUnique())
}

func TestRawTensor_WrongDtypePanics(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float64, CPU)
	require.NoError(t, err)
	assert.Panics(t, func() { raw.AsFloat32() })
}

func TestShape_NCHW(t *testing.T) {
	n, c, h, w := Shape{2, 3, 4, 5}.NCHW()
	assert.Equal(t, []int{2, 3, 4, 5}, []int{n, c, h, w})
	assert.Panics(t, func() { Shape{2, 3}.NCHW() })
}

func TestMockBackend_ResizeImagesScenario(t *testing.T) {
	b := NewMockBackend()
	x, err := FromFloat32([]float32{1, 2, 3, 4}, Shape{1, 1, 2, 2}, CPU)
	require.NoError(t, err)

	y := b.ResizeImages(x, interp.DefaultParams(4, 4)).AsFloat32()

	// Bilinear over [[1,2],[3,4]] with align corners is 1 + j/3 + 2i/3.
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 1 + float64(j)/3 + 2*float64(i)/3
			assert.InDelta(t, want, float64(y[i*4+j]), 1e-6, "pixel (%d,%d)", i, j)
		}
	}
	assert.Equal(t, float32(1), y[0])
	assert.Equal(t, float32(2), y[3])
	assert.Equal(t, float32(3), y[12])
	assert.Equal(t, float32(4), y[15])
}

func TestMockBackend_Adjoint(t *testing.T) {
	b := NewMockBackend()
	rng := rand.New(rand.NewSource(1))
	x := Rand(Shape{2, 3, 5, 4}, rng, b)
	p := interp.Params{OutH: 7, OutW: 3, Mode: interp.Bilinear}
	gy := Rand(Shape{2, 3, 7, 3}, rng, b)

	y := b.ResizeImages(x.Raw(), p)
	gx := b.ResizeImagesGrad(gy.Raw(), x.Shape(), p)

	lhs := dot(y.AsFloat32(), gy.Data())
	rhs := dot(x.Data(), gx.AsFloat32())
	assert.InDelta(t, lhs, rhs, 1e-4*math.Max(1, math.Abs(lhs)))
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}
