// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation (CPU, WebGPU) and adds
// gradient tracking through a GradientTape. The resize operator and its
// gradient are recorded as a pair of mutual adjoints. The tape pauses
// recording during Backward, so only explicit ResizeImagesGrad calls are
// differentiable; gradients produced by Backward are not.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	y := backend.ResizeImages(x.Raw(), interp.DefaultParams(8, 8))
//	grads := autodiff.Backward(tensor.New[float32](y, backend), backend)
//	gx := grads[x.Raw()]
package autodiff

import (
	"github.com/born-ml/resample/internal/autodiff/ops"
	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a GradientTape.
//
// Type parameter B must satisfy the tensor.Backend interface.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend (CPU, GPU, etc.)
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	// Recorded inputs must not be overwritten by an in-place add.
	defer a.ForceNonUnique()()
	defer c.ForceNonUnique()()

	result := b.inner.Add(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddOp(a, c, result))
	}

	return result
}

// ResizeImages resizes x and records a ResizeImagesOp.
func (b *AutodiffBackend[B]) ResizeImages(x *tensor.RawTensor, p interp.Params) *tensor.RawTensor {
	result := b.inner.ResizeImages(x, p)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewResizeImagesOp(x, result, p))
	}

	return result
}

// ResizeImagesGrad applies the resize adjoint to gy and records a
// ResizeImagesGradOp, so the gradient itself is differentiable.
func (b *AutodiffBackend[B]) ResizeImagesGrad(gy *tensor.RawTensor, inputShape tensor.Shape, p interp.Params) *tensor.RawTensor {
	result := b.inner.ResizeImagesGrad(gy, inputShape, p)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewResizeImagesGradOp(gy, result, p))
	}

	return result
}
