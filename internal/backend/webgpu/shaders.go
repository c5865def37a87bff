//go:build windows

package webgpu

// WGSL compute shaders. Every shader uses @workgroup_size(256) and folds a 2D
// dispatch grid back into a flat index with params.stride.

// addShader performs element-wise addition: result = a + b.
const addShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    stride: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.y * params.stride + global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] + b[idx];
    }
}
`

// resizeImagesShader computes one output pixel per invocation.
// coords holds out_h row indices followed by out_w column indices, weights
// the matching row and column fractions.
const resizeImagesShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> coords: array<u32>;
@group(0) @binding(2) var<storage, read> weights: array<f32>;
@group(0) @binding(3) var<storage, read_write> y: array<f32>;

struct Params {
    total: u32,
    in_h: u32,
    in_w: u32,
    out_h: u32,
    out_w: u32,
    stride: u32,
}
@group(0) @binding(4) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.y * params.stride + global_id.x;
    if (idx >= params.total) {
        return;
    }

    let j = idx % params.out_w;
    let i = (idx / params.out_w) % params.out_h;
    let plane = idx / (params.out_w * params.out_h);

    let v0 = coords[i];
    let v1 = min(v0 + 1u, params.in_h - 1u);
    let u0 = coords[params.out_h + j];
    let u1 = min(u0 + 1u, params.in_w - 1u);
    let vw = weights[i];
    let uw = weights[params.out_h + j];

    let w00 = (1.0 - uw) * (1.0 - vw);
    let w01 = uw * (1.0 - vw);
    let w10 = (1.0 - uw) * vw;
    let w11 = uw * vw;

    let base = plane * params.in_h * params.in_w;
    let r0 = base + v0 * params.in_w;
    let r1 = base + v1 * params.in_w;

    let top = w00 * x[r0 + u0] + w01 * x[r0 + u1];
    let bottom = w10 * x[r1 + u0] + w11 * x[r1 + u1];
    y[idx] = top + bottom;
}
`

// resizeImagesGradShader scatters one upstream gradient per invocation into
// gx. WGSL has no floating-point atomics, so gx is viewed as u32 bits and
// updated with a compare-exchange loop. Zero weights are skipped.
const resizeImagesGradShader = `
@group(0) @binding(0) var<storage, read> gy: array<f32>;
@group(0) @binding(1) var<storage, read> coords: array<u32>;
@group(0) @binding(2) var<storage, read> weights: array<f32>;
@group(0) @binding(3) var<storage, read_write> gx: array<atomic<u32>>;

struct Params {
    total: u32,
    in_h: u32,
    in_w: u32,
    out_h: u32,
    out_w: u32,
    stride: u32,
}
@group(0) @binding(4) var<uniform> params: Params;

fn scatter_add(pos: u32, value: f32) {
    if (value == 0.0) {
        return;
    }
    var old = atomicLoad(&gx[pos]);
    loop {
        let next = bitcast<u32>(bitcast<f32>(old) + value);
        let res = atomicCompareExchangeWeak(&gx[pos], old, next);
        if (res.exchanged) {
            break;
        }
        old = res.old_value;
    }
}

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.y * params.stride + global_id.x;
    if (idx >= params.total) {
        return;
    }

    let j = idx % params.out_w;
    let i = (idx / params.out_w) % params.out_h;
    let plane = idx / (params.out_w * params.out_h);

    let v0 = coords[i];
    let v1 = min(v0 + 1u, params.in_h - 1u);
    let u0 = coords[params.out_h + j];
    let u1 = min(u0 + 1u, params.in_w - 1u);
    let vw = weights[i];
    let uw = weights[params.out_h + j];

    let g = gy[idx];
    let base = plane * params.in_h * params.in_w;
    let r0 = base + v0 * params.in_w;
    let r1 = base + v1 * params.in_w;

    scatter_add(r0 + u0, (1.0 - uw) * (1.0 - vw) * g);
    scatter_add(r0 + u1, uw * (1.0 - vw) * g);
    scatter_add(r1 + u0, (1.0 - uw) * vw * g);
    scatter_add(r1 + u1, uw * vw * g);
}
`
