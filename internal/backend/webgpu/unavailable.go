//go:build !windows

// Package webgpu implements the accelerator backend. The GPU build is
// compiled on Windows only; on other platforms New returns ErrUnavailable
// and IsAvailable reports false.
package webgpu

import (
	"errors"

	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
)

// ErrUnavailable is returned by New when WebGPU cannot be used on this platform.
var ErrUnavailable = errors.New("webgpu: not available on this platform")

// Verify that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Backend is a placeholder that is never constructed on this platform.
type Backend struct{}

// PoolStats mirrors the buffer pool counters of the GPU build.
type PoolStats struct {
	Allocated uint64
	Released  uint64
	Hits      uint64
	Misses    uint64
	Pooled    int
}

// New always fails on this platform.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false on this platform.
func IsAvailable() bool { return false }

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string { return "WebGPU" }

// Device returns the compute device.
func (b *Backend) Device() tensor.Device { return tensor.WebGPU }

// PoolStats returns zero counters.
func (b *Backend) PoolStats() PoolStats { return PoolStats{} }

// Add panics; the backend cannot be constructed on this platform.
func (b *Backend) Add(_, _ *tensor.RawTensor) *tensor.RawTensor {
	panic(ErrUnavailable)
}

// ResizeImages panics; the backend cannot be constructed on this platform.
func (b *Backend) ResizeImages(_ *tensor.RawTensor, _ interp.Params) *tensor.RawTensor {
	panic(ErrUnavailable)
}

// ResizeImagesGrad panics; the backend cannot be constructed on this platform.
func (b *Backend) ResizeImagesGrad(_ *tensor.RawTensor, _ tensor.Shape, _ interp.Params) *tensor.RawTensor {
	panic(ErrUnavailable)
}
