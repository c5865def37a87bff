package tensor

import "github.com/born-ml/resample/internal/interp"

// Backend defines the operations a compute backend provides to the resize
// operator and to the gradient tape.
//
// Implementations:
//   - CPU: cache-blocked pure Go engines (internal/backend/cpu)
//   - WebGPU: WGSL compute shaders (internal/backend/webgpu)
//   - MockBackend: direct per-pixel formula, used as a test oracle
//
// Backends panic on contract violations; callers validate inputs first
// (see internal/resize).
type Backend interface {
	// Add performs element-wise addition of two same-shape tensors.
	// The tape uses it to accumulate gradients.
	Add(a, b *RawTensor) *RawTensor

	// ResizeImages resamples x [N, C, H, W] to [N, C, p.OutH, p.OutW].
	ResizeImages(x *RawTensor, p interp.Params) *RawTensor

	// ResizeImagesGrad is the adjoint of ResizeImages: it scatters
	// gy [N, C, p.OutH, p.OutW] back onto a zero tensor of inputShape.
	ResizeImagesGrad(gy *RawTensor, inputShape Shape, p interp.Params) *RawTensor

	// Name returns a human-readable backend name.
	Name() string

	// Device returns the device tag of tensors this backend produces.
	Device() Device
}
