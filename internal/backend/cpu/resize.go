package cpu

import (
	"fmt"

	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/parallel"
	"github.com/born-ml/resample/internal/tensor"
)

// ResizeImages resamples x [N, C, H, W] to [N, C, OutH, OutW].
//
// Output rows are processed in panels of `lines` rows (interp.InferLines) so
// the gathered corners of one panel stay cache resident across all N*C
// planes. Each panel writes a disjoint block of output rows, so panels run
// concurrently without synchronization. Panel size has no effect on values:
// every pixel is interp.Corners.Blend of its four corners.
func (cpu *CPUBackend) ResizeImages(x *tensor.RawTensor, p interp.Params) *tensor.RawTensor {
	checkImage("resize", x)
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("resize: %v", err))
	}

	n, c, h, w := x.Shape().NCHW()
	output, err := tensor.NewRaw(tensor.Shape{n, c, p.OutH, p.OutW}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("resize: failed to create output: %v", err))
	}

	grid := interp.NewGrid(p, h, w)
	lines := interp.InferLines(n, c, h, w, p.OutH, p.OutW, 2, 2, cpu.cfg.PanelTarget)
	numPanels := (p.OutH + lines - 1) / lines

	src := x.AsFloat32()
	dst := output.AsFloat32()
	parallel.For(numPanels, func(k int) {
		start := k * lines
		interpolatePanel(dst, src, grid, n*c, start, min(start+lines, p.OutH))
	}, cpu.parallelFor(output.NumElements()))

	return output
}

// interpolatePanel fills output rows [rowStart, rowEnd) of every plane.
func interpolatePanel(dst, src []float32, grid *interp.Grid, planes, rowStart, rowEnd int) {
	h, w := grid.H, grid.W
	outH, outW := grid.OutH(), grid.OutW()

	// Offsets and weights for the panel, shared by all planes.
	cells := make([]panelCell, 0, (rowEnd-rowStart)*outW)
	for i := rowStart; i < rowEnd; i++ {
		v0, v1, vw := grid.Row(i)
		for j := 0; j < outW; j++ {
			u0, u1, uw := grid.Col(j)
			corners := interp.NewCorners(v0, v1, u0, u1, vw, uw)
			cells = append(cells, panelCell{Corners: corners, off: corners.Offsets(w)})
		}
	}

	planeSize := h * w
	outPlaneSize := outH * outW
	panelOffset := rowStart * outW
	for plane := 0; plane < planes; plane++ {
		// Pre-slice the plane: one bounds check per plane instead of per read.
		in := src[plane*planeSize : (plane+1)*planeSize]
		out := dst[plane*outPlaneSize+panelOffset : plane*outPlaneSize+panelOffset+len(cells)]
		for k := range cells {
			cell := &cells[k]
			out[k] = cell.Blend(in[cell.off[0]], in[cell.off[1]], in[cell.off[2]], in[cell.off[3]])
		}
	}
}

type panelCell struct {
	interp.Corners
	off [4]int
}
