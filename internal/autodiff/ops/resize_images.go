package ops

import (
	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
)

// ResizeImagesOp represents y = R(x), an image resize with fixed params.
//
// R is linear in x, so the backward pass is its adjoint:
//
//	grad_x = R*(grad_y) = ResizeImagesGrad(grad_y, x.Shape(), params)
//
// Only params and the input shape are needed; x itself is not read.
type ResizeImagesOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	params interp.Params
}

// NewResizeImagesOp creates a new ResizeImagesOp.
func NewResizeImagesOp(input, output *tensor.RawTensor, p interp.Params) *ResizeImagesOp {
	return &ResizeImagesOp{input: input, output: output, params: p}
}

// Backward scatters the output gradient back onto the input grid.
func (op *ResizeImagesOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.ResizeImagesGrad(outputGrad, op.input.Shape(), op.params)}
}

// Inputs returns [x].
func (op *ResizeImagesOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns R(x).
func (op *ResizeImagesOp) Output() *tensor.RawTensor {
	return op.output
}

// Params returns the resize parameters.
func (op *ResizeImagesOp) Params() interp.Params {
	return op.params
}

// ResizeImagesGradOp represents gx = R*(gy), the adjoint of ResizeImagesOp.
// Its own adjoint is R, so the backward pass resizes again:
//
//	grad_gy = R(grad_gx) = ResizeImages(grad_gx, params)
type ResizeImagesGradOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	params interp.Params
}

// NewResizeImagesGradOp creates a new ResizeImagesGradOp.
func NewResizeImagesGradOp(gy, gx *tensor.RawTensor, p interp.Params) *ResizeImagesGradOp {
	return &ResizeImagesGradOp{input: gy, output: gx, params: p}
}

// Backward resizes the output gradient forward again.
func (op *ResizeImagesGradOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.ResizeImages(outputGrad, op.params)}
}

// Inputs returns [gy].
func (op *ResizeImagesGradOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns R*(gy).
func (op *ResizeImagesGradOp) Output() *tensor.RawTensor {
	return op.output
}

// Params returns the resize parameters.
func (op *ResizeImagesGradOp) Params() interp.Params {
	return op.params
}
