package interp

// PanelTarget is the default working-set budget, in elements, for one CPU
// output panel.
const PanelTarget = 1 << 17

// InferLines picks how many output rows the CPU engine processes per panel.
//
// One output line touches roughly N*C*(H*W/outH + kH*kW*outW) elements. The
// result is the largest power of two whose panel fits in target elements, at
// least 1, or outH when the whole output fits.
func InferLines(n, c, h, w, outH, outW, kH, kW, target int) int {
	lineSize := n * c * (h*w/outH + kH*kW*outW)
	if lineSize <= 0 {
		return outH
	}
	targetLines := target / lineSize
	if targetLines >= outH {
		return outH
	}

	lines := 1
	for lines*2 <= targetLines {
		lines *= 2
	}
	return lines
}
