// Package interp computes the source coordinates and blend weights used to
// resample (N, C, H, W) image batches.
//
// Everything here is backend-independent: the CPU engine, the WebGPU kernels
// and the reference MockBackend all derive their per-pixel corners from
// Compute and Grid, which is what keeps the forward and gradient passes exact
// transposes of each other on every backend.
//
// For each output row i and column j the generator yields a base source index
// (v0, u0) and a fractional weight (vw, uw). The four neighbours that get
// blended are
//
//	(v0, u0) (v0, u1)
//	(v1, u0) (v1, u1)
//
// with v1 = min(v0+1, H-1) and u1 = min(u0+1, W-1). Indices are clamped at the
// border, never wrapped.
package interp
