package cpu

import (
	"fmt"

	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/parallel"
	"github.com/born-ml/resample/internal/tensor"
)

// ResizeImagesGrad computes the gradient w.r.t. the input of ResizeImages.
//
// Algorithm: the exact transpose of the forward gather. Every gy element is
// scattered onto the four corners it was blended from, weighted by the same
// interp.Corners weights:
//
//	gx[v0,u0] += w00*gy   gx[v0,u1] += w01*gy
//	gx[v1,u0] += w10*gy   gx[v1,u1] += w11*gy
//
// Corners collide at clamped borders and under downsampling, so contributions
// are accumulated (a weighted bin count), never overwritten. Sums are kept in
// float64 and rounded to float32 once per element. Work is split by (n, c)
// plane; a plane's gradient has a single writer.
func (cpu *CPUBackend) ResizeImagesGrad(gy *tensor.RawTensor, inputShape tensor.Shape, p interp.Params) *tensor.RawTensor {
	checkImage("resize grad", gy)
	n, c, h, w := inputShape.NCHW()
	if want := (tensor.Shape{n, c, p.OutH, p.OutW}); !gy.Shape().Equal(want) {
		panic(fmt.Sprintf("resize grad: gradient shape %v != output shape %v", gy.Shape(), want))
	}

	inputGrad, err := tensor.NewRaw(inputShape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("resize grad: failed to create gradient tensor: %v", err))
	}

	grid := interp.NewGrid(p, h, w)
	bins := scatterBins(grid)

	gyData := gy.AsFloat32()
	gxData := inputGrad.AsFloat32()
	planeSize := h * w
	outPlaneSize := p.OutH * p.OutW
	parallel.ForRange(n*c, func(lo, hi int) {
		acc := make([]float64, planeSize)
		for plane := lo; plane < hi; plane++ {
			clear(acc)
			bincountFloat32(acc, gyData[plane*outPlaneSize:(plane+1)*outPlaneSize], bins)
			dst := gxData[plane*planeSize : (plane+1)*planeSize]
			for i, v := range acc {
				dst[i] = float32(v)
			}
		}
	}, cpu.parallelFor(gy.NumElements()))

	return inputGrad
}

// scatterBins expands the grid into per-output-cell corners, row-major.
func scatterBins(grid *interp.Grid) []panelCell {
	outH, outW := grid.OutH(), grid.OutW()
	bins := make([]panelCell, 0, outH*outW)
	for i := 0; i < outH; i++ {
		for j := 0; j < outW; j++ {
			corners := grid.At(i, j)
			bins = append(bins, panelCell{Corners: corners, off: corners.Offsets(grid.W)})
		}
	}
	return bins
}

// bincountFloat32 accumulates weighted gradients into acc: for every cell k,
// acc[bins[k].off[q]] += float32(weight[q] * g[k]). Products are rounded to
// float32, sums are kept in float64 and rounded once by the caller.
func bincountFloat32(acc []float64, g []float32, bins []panelCell) {
	for k := range bins {
		cell := &bins[k]
		gk := g[k]
		acc[cell.off[0]] += float64(float32(cell.W00 * gk))
		acc[cell.off[1]] += float64(float32(cell.W01 * gk))
		acc[cell.off[2]] += float64(float32(cell.W10 * gk))
		acc[cell.off[3]] += float64(float32(cell.W11 * gk))
	}
}
