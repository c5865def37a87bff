package interp

import "math"

// Indices holds per-axis base source indices and blend weights.
//
// V and VW have one entry per output row, U and UW one per output column.
// Weights lie in [0, 1) and are exactly zero in Nearest mode.
type Indices struct {
	V, U   []int
	VW, UW []float32
}

// Compute derives source coordinates for resizing an H x W plane to
// p.OutH x p.OutW. It is a pure function of its arguments.
//
// Bilinear, align corners: v[i] = i * (H-1) / (outH-1), and v[i] = 0 when
// outH == 1 so a single output row samples the first input row.
// Bilinear, align edges:   v[i] = max((i+0.5) * H / outH - 0.5, 0).
// Nearest:                 v[i] = min(floor(i * H / outH), H-1), weight 0.
//
// The same rules apply to columns with W and outW.
func Compute(p Params, H, W int) Indices {
	v, vw := axis(p.OutH, H, p.Mode, p.AlignCorners)
	u, uw := axis(p.OutW, W, p.Mode, p.AlignCorners)
	return Indices{V: v, U: u, VW: vw, UW: uw}
}

func axis(outSize, inSize int, mode Mode, alignCorners bool) ([]int, []float32) {
	idx := make([]int, outSize)
	w := make([]float32, outSize)
	last := inSize - 1

	if mode == Nearest {
		scale := float64(inSize) / float64(outSize)
		for i := range idx {
			idx[i] = min(int(math.Floor(float64(i)*scale)), last)
		}
		return idx, w
	}

	for i := range idx {
		var pos float64
		switch {
		case alignCorners && outSize == 1:
			pos = 0
		case alignCorners:
			pos = float64(i) * float64(last) / float64(outSize-1)
		default:
			pos = (float64(i)+0.5)*float64(inSize)/float64(outSize) - 0.5
			pos = math.Max(pos, 0)
		}
		base, frac := math.Modf(pos)
		idx[i] = min(int(base), last)
		w[i] = float32(frac)
	}
	return idx, w
}

// Grid pairs Indices with the input plane size so every output cell can be
// expanded into its four clamped corners without materializing broadcast
// buffers.
type Grid struct {
	Indices
	H, W int
}

// NewGrid computes Indices for p and wraps them in a Grid.
func NewGrid(p Params, H, W int) *Grid {
	return &Grid{Indices: Compute(p, H, W), H: H, W: W}
}

// OutH returns the number of output rows.
func (g *Grid) OutH() int { return len(g.V) }

// OutW returns the number of output columns.
func (g *Grid) OutW() int { return len(g.U) }

// Row returns the two source rows and the row weight for output row i.
func (g *Grid) Row(i int) (v0, v1 int, vw float32) {
	v0 = g.V[i]
	return v0, min(v0+1, g.H-1), g.VW[i]
}

// Col returns the two source columns and the column weight for output column j.
func (g *Grid) Col(j int) (u0, u1 int, uw float32) {
	u0 = g.U[j]
	return u0, min(u0+1, g.W-1), g.UW[j]
}

// At returns the corners blended into output cell (i, j).
func (g *Grid) At(i, j int) Corners {
	v0, v1, vw := g.Row(i)
	u0, u1, uw := g.Col(j)
	return NewCorners(v0, v1, u0, u1, vw, uw)
}

// Corners are the four source pixels and weights that make up one output pixel.
type Corners struct {
	V0, V1, U0, U1     int
	W00, W01, W10, W11 float32
}

// NewCorners builds Corners from clamped indices and axis weights.
func NewCorners(v0, v1, u0, u1 int, vw, uw float32) Corners {
	return Corners{
		V0: v0, V1: v1, U0: u0, U1: u1,
		W00: (1 - uw) * (1 - vw),
		W01: uw * (1 - vw),
		W10: (1 - uw) * vw,
		W11: uw * vw,
	}
}

// Offsets returns the flat offsets of the four corners inside one H x W
// plane of row stride w, in the order 00, 01, 10, 11.
func (c Corners) Offsets(w int) [4]int {
	return [4]int{
		c.V0*w + c.U0,
		c.V0*w + c.U1,
		c.V1*w + c.U0,
		c.V1*w + c.U1,
	}
}

// Weights returns the four weights in the order 00, 01, 10, 11.
func (c Corners) Weights() [4]float32 {
	return [4]float32{c.W00, c.W01, c.W10, c.W11}
}

// Blend evaluates (w00*p00 + w01*p01) + (w10*p10 + w11*p11). Every backend
// uses this association order; the explicit float32 conversions stop the
// compiler from fusing multiply-adds, so CPU results are reproducible
// bit for bit.
func (c Corners) Blend(p00, p01, p10, p11 float32) float32 {
	top := float32(c.W00*p00) + float32(c.W01*p01)
	bottom := float32(c.W10*p10) + float32(c.W11*p11)
	return top + bottom
}
