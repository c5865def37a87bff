// Package cpu implements the CPU backend: cache-blocked resize kernels and
// their scatter-add adjoints in pure Go.
package cpu

import (
	"fmt"

	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/parallel"
	"github.com/born-ml/resample/internal/tensor"
)

// Config tunes the CPU engines. None of the settings affect output values.
type Config struct {
	Parallel parallel.Config

	// PanelTarget is the working-set budget, in elements, used to size
	// output panels (see interp.InferLines).
	PanelTarget int

	// MinParallelElements is the output size below which kernels run on
	// the calling goroutine.
	MinParallelElements int
}

// DefaultConfig returns the default CPU engine configuration.
func DefaultConfig() Config {
	return Config{
		Parallel:            parallel.DefaultConfig(),
		PanelTarget:         interp.PanelTarget,
		MinParallelElements: 1 << 14,
	}
}

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	device tensor.Device
	cfg    Config
}

// New creates a new CPU backend with DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a CPU backend with the given configuration.
func NewWithConfig(cfg Config) *CPUBackend {
	if cfg.PanelTarget <= 0 {
		cfg.PanelTarget = interp.PanelTarget
	}
	return &CPUBackend{
		device: tensor.CPU,
		cfg:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Config returns the backend configuration.
func (cpu *CPUBackend) Config() Config {
	return cpu.cfg
}

// Add performs element-wise addition of same-shape float32 tensors.
// When a is not shared, the sum is written into a.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("add: shape mismatch %v vs %v", a.Shape(), b.Shape()))
	}
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic(fmt.Sprintf("add: unsupported dtypes %s, %s", a.DType(), b.DType()))
	}

	if a.IsUnique() {
		addInplaceFloat32(a.AsFloat32(), b.AsFloat32())
		return a
	}

	result, err := tensor.NewRaw(a.Shape(), tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("add: failed to create result tensor: %v", err))
	}
	addVectorizedFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	return result
}

func addInplaceFloat32(a, b []float32) {
	for i := range a {
		a[i] += b[i]
	}
}

func addVectorizedFloat32(dst, a, b []float32) {
	for i := range a {
		dst[i] = a[i] + b[i]
	}
}

// parallelFor returns the parallel config for a kernel producing numOutputs
// elements.
func (cpu *CPUBackend) parallelFor(numOutputs int) parallel.Config {
	if numOutputs < cpu.cfg.MinParallelElements {
		return parallel.Sequential()
	}
	return cpu.cfg.Parallel
}

// checkImage panics unless t is a float32 [N, C, H, W] tensor.
func checkImage(op string, t *tensor.RawTensor) {
	if len(t.Shape()) != 4 {
		panic(fmt.Sprintf("%s: expected 4D input [N,C,H,W], got %dD", op, len(t.Shape())))
	}
	if t.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, t.DType()))
	}
}
