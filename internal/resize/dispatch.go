package resize

import (
	"fmt"
	"sync"

	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
)

// Dispatcher routes raw tensors to the backend registered for their device.
// The backend is resolved once per call. It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	backends map[tensor.Device]tensor.Backend
}

// NewDispatcher creates a dispatcher with the given backends registered
// under their own devices.
func NewDispatcher(backends ...tensor.Backend) *Dispatcher {
	d := &Dispatcher{backends: make(map[tensor.Device]tensor.Backend, len(backends))}
	for _, b := range backends {
		d.Register(b)
	}
	return d
}

// Register installs b for b.Device(), replacing any previous backend.
func (d *Dispatcher) Register(b tensor.Backend) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.backends[b.Device()] = b
}

// Select returns the backend for x's device.
func (d *Dispatcher) Select(x *tensor.RawTensor) (tensor.Backend, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.backends[x.Device()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", interp.ErrNoBackend, x.Device())
	}
	return b, nil
}

// ResizeImages runs Forward on the backend selected for x.
func (d *Dispatcher) ResizeImages(x *tensor.RawTensor, p interp.Params) (*tensor.RawTensor, error) {
	if err := ValidateInput(x); err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	b, err := d.Select(x)
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	return Forward(x, p, b)
}

// ResizeImagesGrad runs Gradient on the backend selected for gy.
func (d *Dispatcher) ResizeImagesGrad(gy *tensor.RawTensor, inputShape tensor.Shape, p interp.Params) (*tensor.RawTensor, error) {
	if err := ValidateInput(gy); err != nil {
		return nil, fmt.Errorf("resize grad: %w", err)
	}
	b, err := d.Select(gy)
	if err != nil {
		return nil, fmt.Errorf("resize grad: %w", err)
	}
	return Gradient(gy, inputShape, p, b)
}
