package autodiff

import (
	"fmt"

	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
)

// AdjointCheck evaluates both sides of <R(x), gy> = <x, R*(gy)> for the
// resize R with params p, accumulating in float64. For an exact adjoint
// pair the two agree up to float32 rounding of the kernels.
func AdjointCheck(b tensor.Backend, x, gy *tensor.RawTensor, p interp.Params) (lhs, rhs float64) {
	y := b.ResizeImages(x, p)
	gx := b.ResizeImagesGrad(gy, x.Shape(), p)
	return dot(y.AsFloat32(), gy.AsFloat32()), dot(x.AsFloat32(), gx.AsFloat32())
}

// FiniteDifference estimates d<R(x), gy>/dx[i] by central differences for
// each flat index i in indices.
func FiniteDifference(b tensor.Backend, x, gy *tensor.RawTensor, p interp.Params, indices []int, eps float32) []float64 {
	base := x.AsFloat32()
	g := gy.AsFloat32()

	loss := func(i int, delta float32) float64 {
		data := append([]float32(nil), base...)
		data[i] += delta
		xp, err := tensor.FromFloat32(data, x.Shape(), x.Device())
		if err != nil {
			panic(fmt.Sprintf("finite difference: %v", err))
		}
		return dot(b.ResizeImages(xp, p).AsFloat32(), g)
	}

	out := make([]float64, len(indices))
	for k, i := range indices {
		out[k] = (loss(i, eps) - loss(i, -eps)) / (2 * float64(eps))
	}
	return out
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}
