//go:build windows

package webgpu

import (
	"math/bits"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPooledPerClass bounds how many idle buffers are kept per size class.
const maxPooledPerClass = 8

// poolKey identifies interchangeable buffers: same usage, same power-of-two
// size class.
type poolKey struct {
	class uint64
	usage wgpu.BufferUsage
}

// BufferPool recycles GPU buffers between kernel launches. Output and
// staging buffers of repeated resize calls have identical sizes, so reuse
// avoids an allocation per call.
type BufferPool struct {
	device *wgpu.Device
	idle   map[poolKey][]*wgpu.Buffer
	mu     sync.Mutex
	stats  PoolStats
}

// PoolStats are cumulative BufferPool counters.
type PoolStats struct {
	Allocated uint64
	Released  uint64
	Hits      uint64
	Misses    uint64
	Pooled    int
}

// NewBufferPool creates a new buffer pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{
		device: device,
		idle:   make(map[poolKey][]*wgpu.Buffer),
	}
}

// sizeClass rounds size up to the next power of two (minimum 256 bytes).
func sizeClass(size uint64) uint64 {
	if size <= 256 {
		return 256
	}
	return 1 << bits.Len64(size-1)
}

// Acquire returns a buffer of at least size bytes with the given usage.
// Its contents are undefined.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	key := poolKey{class: sizeClass(size), usage: usage}

	p.mu.Lock()
	defer p.mu.Unlock()

	if free := p.idle[key]; len(free) > 0 {
		buf := free[len(free)-1]
		p.idle[key] = free[:len(free)-1]
		p.stats.Hits++
		p.stats.Pooled--
		return buf
	}

	p.stats.Misses++
	p.stats.Allocated++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  key.class,
	})
}

// Release returns a buffer obtained from Acquire with the same size and usage.
func (p *BufferPool) Release(buf *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	key := poolKey{class: sizeClass(size), usage: usage}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Released++
	if len(p.idle[key]) >= maxPooledPerClass {
		buf.Release()
		return
	}
	p.idle[key] = append(p.idle[key], buf)
	p.stats.Pooled++
}

// Clear releases all pooled buffers.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, free := range p.idle {
		for _, buf := range free {
			buf.Release()
		}
		delete(p.idle, key)
	}
	p.stats.Pooled = 0
}

// Stats returns a snapshot of the pool counters.
func (p *BufferPool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
