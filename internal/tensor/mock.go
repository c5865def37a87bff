package tensor

import (
	"fmt"

	"github.com/born-ml/resample/internal/interp"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend evaluates every operation naively, one output pixel at a time.
// It is the reference the optimized backends are checked against.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition of same-shape float32 tensors.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("mock: add: shape mismatch %v vs %v", a.Shape(), b.Shape()))
	}
	result, err := NewRaw(a.Shape(), a.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	out, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
	for i := range out {
		out[i] = x[i] + y[i]
	}
	return result
}

// ResizeImages evaluates the blend formula directly for every output element:
//
//	y = ((1-uw)(1-vw)*x[v0,u0] + uw(1-vw)*x[v0,u1]) + ((1-uw)vw*x[v1,u0] + uw*vw*x[v1,u1])
func (m *MockBackend) ResizeImages(x *RawTensor, p interp.Params) *RawTensor {
	n, c, h, w := x.Shape().NCHW()
	result, err := NewRaw(Shape{n, c, p.OutH, p.OutW}, Float32, m.Device())
	if err != nil {
		panic(err)
	}

	idx := interp.Compute(p, h, w)
	src, dst := x.AsFloat32(), result.AsFloat32()
	for plane := 0; plane < n*c; plane++ {
		base := plane * h * w
		for i := 0; i < p.OutH; i++ {
			v0, vw := idx.V[i], idx.VW[i]
			v1 := min(v0+1, h-1)
			for j := 0; j < p.OutW; j++ {
				u0, uw := idx.U[j], idx.UW[j]
				u1 := min(u0+1, w-1)

				w00 := (1 - uw) * (1 - vw)
				w01 := uw * (1 - vw)
				w10 := (1 - uw) * vw
				w11 := uw * vw

				top := float32(w00*src[base+v0*w+u0]) + float32(w01*src[base+v0*w+u1])
				bottom := float32(w10*src[base+v1*w+u0]) + float32(w11*src[base+v1*w+u1])
				dst[(plane*p.OutH+i)*p.OutW+j] = top + bottom
			}
		}
	}
	return result
}

// ResizeImagesGrad scatters each gradient element onto its four corners,
// summing in float64 and rounding once per input element.
func (m *MockBackend) ResizeImagesGrad(gy *RawTensor, inputShape Shape, p interp.Params) *RawTensor {
	n, c, h, w := inputShape.NCHW()
	result, err := NewRaw(inputShape, Float32, m.Device())
	if err != nil {
		panic(err)
	}

	idx := interp.Compute(p, h, w)
	src, dst := gy.AsFloat32(), result.AsFloat32()
	acc := make([]float64, len(dst))
	for plane := 0; plane < n*c; plane++ {
		base := plane * h * w
		for i := 0; i < p.OutH; i++ {
			v0, vw := idx.V[i], idx.VW[i]
			v1 := min(v0+1, h-1)
			for j := 0; j < p.OutW; j++ {
				u0, uw := idx.U[j], idx.UW[j]
				u1 := min(u0+1, w-1)
				g := src[(plane*p.OutH+i)*p.OutW+j]

				acc[base+v0*w+u0] += float64(float32((1 - uw) * (1 - vw) * g))
				acc[base+v0*w+u1] += float64(float32(uw * (1 - vw) * g))
				acc[base+v1*w+u0] += float64(float32((1 - uw) * vw * g))
				acc[base+v1*w+u1] += float64(float32(uw * vw * g))
			}
		}
	}
	for i, v := range acc {
		dst[i] = float32(v)
	}
	return result
}
