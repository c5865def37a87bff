package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_AlignCorners(t *testing.T) {
	idx := Compute(DefaultParams(4, 4), 2, 2)

	assert.Equal(t, []int{0, 0, 0, 1}, idx.V)
	assert.Equal(t, []int{0, 0, 0, 1}, idx.U)
	assert.InDeltaSlice(t, []float32{0, 1.0 / 3, 2.0 / 3, 0}, idx.VW, 1e-6)
	assert.InDeltaSlice(t, []float32{0, 1.0 / 3, 2.0 / 3, 0}, idx.UW, 1e-6)
}

func TestCompute_AlignCornersSameSizeIsIdentity(t *testing.T) {
	idx := Compute(DefaultParams(7, 5), 7, 5)

	for i, v := range idx.V {
		assert.Equal(t, i, v)
		assert.Zero(t, idx.VW[i])
	}
	for j, u := range idx.U {
		assert.Equal(t, j, u)
		assert.Zero(t, idx.UW[j])
	}
}

func TestCompute_AlignCornersSingleOutput(t *testing.T) {
	idx := Compute(DefaultParams(1, 1), 9, 4)

	assert.Equal(t, []int{0}, idx.V)
	assert.Equal(t, []int{0}, idx.U)
	assert.Equal(t, []float32{0}, idx.VW)
	assert.Equal(t, []float32{0}, idx.UW)
}

func TestCompute_AlignEdges(t *testing.T) {
	p := Params{OutH: 6, OutW: 6, Mode: Bilinear}
	idx := Compute(p, 3, 3)

	// (i+0.5)*3/6 - 0.5 = 0.5i - 0.25, clamped at 0.
	assert.Equal(t, []int{0, 0, 0, 1, 1, 2}, idx.V)
	assert.InDeltaSlice(t, []float32{0, 0.25, 0.75, 0.25, 0.75, 0.25}, idx.VW, 1e-6)
}

func TestCompute_Nearest(t *testing.T) {
	tests := []struct {
		name      string
		out, in   int
		wantIndex []int
	}{
		{"upsample 3->6", 6, 3, []int{0, 0, 1, 1, 2, 2}},
		{"downsample 6->3", 3, 6, []int{0, 2, 4}},
		{"downsample 5->2", 2, 5, []int{0, 2}},
		{"same", 4, 4, []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{OutH: tt.out, OutW: 1, Mode: Nearest, AlignCorners: true}
			idx := Compute(p, tt.in, 1)
			assert.Equal(t, tt.wantIndex, idx.V)
			for _, w := range idx.VW {
				assert.Zero(t, w)
			}
		})
	}
}

func TestCompute_IndicesStayInBounds(t *testing.T) {
	sizes := []int{1, 2, 3, 5, 8, 13}
	for _, mode := range []Mode{Bilinear, Nearest} {
		for _, align := range []bool{true, false} {
			for _, in := range sizes {
				for _, out := range sizes {
					g := NewGrid(Params{OutH: out, OutW: out, Mode: mode, AlignCorners: align}, in, in)
					for i := 0; i < out; i++ {
						v0, v1, vw := g.Row(i)
						require.GreaterOrEqual(t, v0, 0)
						require.LessOrEqual(t, v1, in-1)
						require.GreaterOrEqual(t, vw, float32(0))
						require.Less(t, vw, float32(1))
					}
				}
			}
		}
	}
}

func TestGrid_BorderClamp(t *testing.T) {
	g := NewGrid(DefaultParams(5, 5), 3, 3)

	c := g.At(4, 4)
	assert.Equal(t, 2, c.V0)
	assert.Equal(t, 2, c.V1)
	assert.Equal(t, 2, c.U0)
	assert.Equal(t, 2, c.U1)
	assert.Equal(t, float32(1), c.W00)
}

func TestCorners_WeightsSumToOne(t *testing.T) {
	g := NewGrid(Params{OutH: 7, OutW: 9, Mode: Bilinear}, 4, 3)
	for i := 0; i < g.OutH(); i++ {
		for j := 0; j < g.OutW(); j++ {
			w := g.At(i, j).Weights()
			assert.InDelta(t, 1.0, float64(w[0]+w[1]+w[2]+w[3]), 1e-6)
		}
	}
}

func TestCorners_BlendCollapsedCorners(t *testing.T) {
	c := NewCorners(0, 0, 0, 0, 0.25, 0.5)

	assert.Equal(t, [4]int{0, 0, 0, 0}, c.Offsets(1))
	assert.InDelta(t, 2.0, float64(c.Blend(2, 2, 2, 2)), 1e-6)
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams(1, 1).Validate())

	err := DefaultParams(0, 3).Validate()
	require.ErrorIs(t, err, ErrInvalidOutputSize)

	err = Params{OutH: 2, OutW: 2, Mode: Mode(7)}.Validate()
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Nearest")
	require.NoError(t, err)
	assert.Equal(t, Nearest, m)

	m, err = ParseMode("bilinear")
	require.NoError(t, err)
	assert.Equal(t, Bilinear, m)

	_, err = ParseMode("bicubic")
	require.ErrorIs(t, err, ErrInvalidMode)
}
