//go:build windows

package webgpu

import (
	"testing"

	"github.com/born-ml/resample/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAvailable(t *testing.T) {
	available := IsAvailable()
	t.Logf("WebGPU available: %v", available)
}

// newTestBackend returns a backend or skips the test when no adapter exists.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := New()
	if err != nil {
		t.Logf("WebGPU not available: %v", err)
		t.Skip("WebGPU not available on this system")
	}
	t.Cleanup(backend.Release)
	return backend
}

// TestNew_AgreesWithIsAvailable requires New to succeed exactly when
// IsAvailable reports an adapter, and to fail with an error otherwise.
func TestNew_AgreesWithIsAvailable(t *testing.T) {
	available := IsAvailable()

	backend, err := New()
	if !available {
		require.Error(t, err)
		assert.Nil(t, backend)
		assert.Contains(t, err.Error(), "webgpu:")
		return
	}
	require.NoError(t, err)
	require.NotNil(t, backend)
	backend.Release()
}

func TestNew(t *testing.T) {
	backend := newTestBackend(t)

	assert.Equal(t, "WebGPU", backend.Name())
	assert.Equal(t, tensor.WebGPU, backend.Device())
}

func TestAdd(t *testing.T) {
	backend := newTestBackend(t)

	a, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.WebGPU)
	require.NoError(t, err)
	b, err := tensor.FromFloat32([]float32{10, 20, 30, 40}, tensor.Shape{2, 2}, tensor.WebGPU)
	require.NoError(t, err)

	result := backend.Add(a, b)
	assert.Equal(t, []float32{11, 22, 33, 44}, result.AsFloat32())
}

func TestDispatchGrid(t *testing.T) {
	x, y, stride := dispatchGrid(1000)
	assert.Equal(t, uint32(4), x)
	assert.Equal(t, uint32(1), y)
	assert.Equal(t, uint32(1024), stride)

	n := (maxWorkgroupsPerDim + 10) * workgroupSize
	x, y, stride = dispatchGrid(n)
	assert.Equal(t, uint32(maxWorkgroupsPerDim), x)
	assert.Equal(t, uint32(2), y)
	assert.GreaterOrEqual(t, uint64(x)*uint64(y)*workgroupSize, uint64(n))
	assert.Equal(t, uint32(maxWorkgroupsPerDim*workgroupSize), stride)
}
