//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/born-ml/resample/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

const (
	// workgroupSize matches @workgroup_size in every shader.
	workgroupSize = 256

	// maxWorkgroupsPerDim is the WebGPU default limit for one dispatch dimension.
	maxWorkgroupsPerDim = 65535

	storageUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	stagingUsage = wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst
)

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if shader, exists := b.shaders[name]; exists {
		return shader
	}
	shader := b.device.CreateShaderModuleWGSL(code)
	b.shaders[name] = shader
	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if pipeline, exists := b.pipelines[name]; exists {
		return pipeline
	}
	// Auto layout (nil layout).
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")
	b.pipelines[name] = pipeline
	return pipeline
}

// pipeline compiles (once) and returns the pipeline for a named shader.
func (b *Backend) pipeline(name, code string) *wgpu.ComputePipeline {
	return b.getOrCreatePipeline(name, b.compileShader(name, code))
}

// createBuffer creates a GPU buffer initialized with data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createZeroBuffer creates a storage buffer of size bytes, all zero.
func (b *Backend) createZeroBuffer(size uint64) *wgpu.Buffer {
	return b.createBuffer(make([]byte, size), storageUsage)
}

// createUniformBuffer creates a uniform buffer with proper alignment.
// Uniform buffers require 16-byte alignment for struct fields.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	padded := make([]byte, alignedSize)
	copy(padded, data)
	return b.createBuffer(padded, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a pooled staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.bufferPool.Acquire(size, stagingUsage)
	defer b.bufferPool.Release(stagingBuffer, size, stagingUsage)

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	stagingBuffer.Unmap()

	return result, nil
}

// dispatchGrid returns the workgroup grid for n invocations. Dispatches that
// exceed the per-dimension limit fold into a second dimension; the returned
// stride is the number of invocations per grid row.
func dispatchGrid(n int) (x, y, stride uint32) {
	groups := (n + workgroupSize - 1) / workgroupSize
	if groups <= maxWorkgroupsPerDim {
		//nolint:gosec // G115: groups is bounded by maxWorkgroupsPerDim
		return uint32(groups), 1, uint32(groups * workgroupSize)
	}
	rows := (groups + maxWorkgroupsPerDim - 1) / maxWorkgroupsPerDim
	//nolint:gosec // G115: bounded by maxWorkgroupsPerDim
	return maxWorkgroupsPerDim, uint32(rows), maxWorkgroupsPerDim * workgroupSize
}

// binding pairs a buffer with its bound size.
type binding struct {
	buffer *wgpu.Buffer
	size   uint64
}

// dispatch binds buffers at consecutive indices and runs one compute pass of
// pipeline over the (x, y) workgroup grid.
func (b *Backend) dispatch(pipeline *wgpu.ComputePipeline, x, y uint32, bindings ...binding) {
	entries := make([]wgpu.BindGroupEntry, len(bindings))
	for i, bd := range bindings {
		//nolint:gosec // G115: binding index is small
		entries[i] = wgpu.BufferBindingEntry(uint32(i), bd.buffer, 0, bd.size)
	}

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(x, y, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)
}

// packUint32 packs values as little-endian u32 words.
func packUint32(values ...int) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		//nolint:gosec // G115: values are validated non-negative sizes
		binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

// packFloat32 packs values as little-endian f32 words.
func packFloat32(values []float32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// runBinaryOp executes an element-wise binary operation on GPU.
func (b *Backend) runBinaryOp(a, other *tensor.RawTensor, shaderName, shaderCode string) (*tensor.RawTensor, error) {
	if a.DType() != tensor.Float32 {
		return nil, fmt.Errorf("webgpu: only float32 is supported, got %s", a.DType())
	}
	if !a.Shape().Equal(other.Shape()) {
		return nil, fmt.Errorf("webgpu: shape mismatch: %v vs %v", a.Shape(), other.Shape())
	}

	numElements := a.NumElements()
	pipeline := b.pipeline(shaderName, shaderCode)

	bufferA := b.createBuffer(a.Data(), storageUsage)
	defer bufferA.Release()
	bufferOther := b.createBuffer(other.Data(), storageUsage)
	defer bufferOther.Release()

	//nolint:gosec // G115: ByteSize() returns non-negative int
	resultSize := uint64(a.ByteSize())
	bufferResult := b.bufferPool.Acquire(resultSize, storageUsage)
	defer b.bufferPool.Release(bufferResult, resultSize, storageUsage)

	x, y, stride := dispatchGrid(numElements)
	bufferParams := b.createUniformBuffer(packUint32(numElements, int(stride)))
	defer bufferParams.Release()

	b.dispatch(pipeline, x, y,
		binding{bufferA, resultSize},
		binding{bufferOther, resultSize},
		binding{bufferResult, resultSize},
		binding{bufferParams, 16},
	)

	data, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		return nil, err
	}
	result, err := tensor.NewRaw(a.Shape(), tensor.Float32, tensor.WebGPU)
	if err != nil {
		return nil, err
	}
	copy(result.Data(), data)
	return result, nil
}
