//go:build windows

package webgpu

import (
	"fmt"

	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

// ResizeImages resamples x [N, C, H, W] to [N, C, OutH, OutW] with one GPU
// invocation per output element.
func (b *Backend) ResizeImages(x *tensor.RawTensor, p interp.Params) *tensor.RawTensor {
	result, err := b.runResize(x, p)
	if err != nil {
		panic("webgpu: ResizeImages: " + err.Error())
	}
	return result
}

// ResizeImagesGrad computes the gradient w.r.t. the input of ResizeImages.
// Each gy element is scattered to its four corners with atomic adds, so
// colliding contributions accumulate. Accumulation order is unspecified;
// results match the CPU backend up to float32 rounding.
func (b *Backend) ResizeImagesGrad(gy *tensor.RawTensor, inputShape tensor.Shape, p interp.Params) *tensor.RawTensor {
	result, err := b.runResizeGrad(gy, inputShape, p)
	if err != nil {
		panic("webgpu: ResizeImagesGrad: " + err.Error())
	}
	return result
}

// gridBuffers uploads the per-axis coordinates of p for an h x w plane:
// row indices then column indices as u32, and the matching weights as f32.
func (b *Backend) gridBuffers(p interp.Params, h, w int) (coords, weights binding) {
	idx := interp.Compute(p, h, w)

	flatIdx := append(append(make([]int, 0, p.OutH+p.OutW), idx.V...), idx.U...)
	flatW := append(append(make([]float32, 0, p.OutH+p.OutW), idx.VW...), idx.UW...)

	coordBytes := packUint32(flatIdx...)
	weightBytes := packFloat32(flatW)
	coords = binding{b.createBuffer(coordBytes, storageUsage), uint64(len(coordBytes))}
	weights = binding{b.createBuffer(weightBytes, storageUsage), uint64(len(weightBytes))}
	return coords, weights
}

// resizeParams packs the shared uniform block of both resize shaders.
func (b *Backend) resizeParams(total, h, w int, p interp.Params, stride uint32) binding {
	data := packUint32(total, h, w, p.OutH, p.OutW, int(stride))
	buf := b.createUniformBuffer(data)
	return binding{buf, (uint64(len(data)) + 15) &^ 15}
}

func (b *Backend) runResize(x *tensor.RawTensor, p interp.Params) (*tensor.RawTensor, error) {
	if err := checkImage(x); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n, c, h, w := x.Shape().NCHW()
	outShape := tensor.Shape{n, c, p.OutH, p.OutW}
	total := outShape.NumElements()
	pipeline := b.pipeline("resize_images", resizeImagesShader)

	input := b.createBuffer(x.Data(), storageUsage)
	defer input.Release()
	coords, weights := b.gridBuffers(p, h, w)
	defer coords.buffer.Release()
	defer weights.buffer.Release()

	outSize := uint64(total) * 4
	output := b.bufferPool.Acquire(outSize, storageUsage)
	defer b.bufferPool.Release(output, outSize, storageUsage)

	gx, gy, stride := dispatchGrid(total)
	params := b.resizeParams(total, h, w, p, stride)
	defer params.buffer.Release()

	b.dispatch(pipeline, gx, gy,
		binding{input, uint64(x.ByteSize())},
		coords,
		weights,
		binding{output, outSize},
		params,
	)

	return b.download(output, outShape)
}

func (b *Backend) runResizeGrad(gy *tensor.RawTensor, inputShape tensor.Shape, p interp.Params) (*tensor.RawTensor, error) {
	if err := checkImage(gy); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(inputShape) != 4 {
		return nil, fmt.Errorf("%w: input shape %v", interp.ErrInvalidRank, inputShape)
	}
	if err := inputShape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: input shape %v: %w", interp.ErrInvalidShape, inputShape, err)
	}
	n, c, h, w := inputShape.NCHW()
	if want := (tensor.Shape{n, c, p.OutH, p.OutW}); !gy.Shape().Equal(want) {
		return nil, fmt.Errorf("%w: %v != %v", interp.ErrShapeMismatch, gy.Shape(), want)
	}

	total := gy.NumElements()
	pipeline := b.pipeline("resize_images_grad", resizeImagesGradShader)

	upstream := b.createBuffer(gy.Data(), storageUsage)
	defer upstream.Release()
	coords, weights := b.gridBuffers(p, h, w)
	defer coords.buffer.Release()
	defer weights.buffer.Release()

	// Accumulation target must start at zero, so it is not taken from the pool.
	gradSize := uint64(inputShape.NumElements()) * 4
	grad := b.createZeroBuffer(gradSize)
	defer grad.Release()

	gx, gyDim, stride := dispatchGrid(total)
	params := b.resizeParams(total, h, w, p, stride)
	defer params.buffer.Release()

	b.dispatch(pipeline, gx, gyDim,
		binding{upstream, uint64(gy.ByteSize())},
		coords,
		weights,
		binding{grad, gradSize},
		params,
	)

	return b.download(grad, inputShape)
}

// download copies a float32 buffer of the given shape into a new tensor.
func (b *Backend) download(buf *wgpu.Buffer, shape tensor.Shape) (*tensor.RawTensor, error) {
	result, err := tensor.NewRaw(shape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		return nil, err
	}
	data, err := b.readBuffer(buf, uint64(result.ByteSize()))
	if err != nil {
		return nil, err
	}
	copy(result.Data(), data)
	return result, nil
}

// checkImage validates a float32 [N, C, H, W] tensor.
func checkImage(t *tensor.RawTensor) error {
	if len(t.Shape()) != 4 {
		return fmt.Errorf("%w: got %dD", interp.ErrInvalidRank, len(t.Shape()))
	}
	if t.DType() != tensor.Float32 {
		return fmt.Errorf("%w: got %s", interp.ErrInvalidDtype, t.DType())
	}
	return nil
}
