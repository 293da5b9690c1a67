package null

import (
	"sync"
	"sync/atomic"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

var nextBufferID atomic.Uint64

// Texture is an in-memory texture backed by one flat byte slice sized to
// a single subresource (width*height*depth*bytes per pixel); further mips
// and array slices have no storage of their own.
type Texture struct {
	desc types.TextureDesc
	data []byte
}

func newTexture(desc types.TextureDesc) *Texture {
	info := types.GetFormatInfo(desc.Format)
	size := uint64(desc.Width) * uint64(desc.Height) * uint64(max1(desc.Depth)) * uint64(info.BytesPerPixel)
	if size == 0 {
		size = 1
	}
	return &Texture{desc: desc, data: make([]byte, size)}
}

func max1(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	return v
}

func (t *Texture) Destroy()                       {}
func (t *Texture) TextureDesc() types.TextureDesc { return t.desc }

// Buffer is an in-memory buffer. mu guards data because MapBuffer may be
// read concurrently with a queue-thread copy in a real backend; the null
// backend keeps the same discipline even though everything here runs on
// the caller's goroutine.
type Buffer struct {
	mu   sync.Mutex
	id   uint64
	desc types.BufferDesc
	data []byte
}

func newBuffer(desc types.BufferDesc) *Buffer {
	return &Buffer{id: nextBufferID.Add(1), desc: desc, data: make([]byte, desc.ByteSize)}
}

func (b *Buffer) Destroy()                     {}
func (b *Buffer) BufferDesc() types.BufferDesc { return b.desc }

type Sampler struct{ desc types.SamplerDesc }

func (s *Sampler) Destroy() {}

type Heap struct{ desc types.HeapDesc }

func (h *Heap) Destroy()                 {}
func (h *Heap) HeapDesc() types.HeapDesc { return h.desc }

type ShaderModule struct{ code types.ShaderByteCode }

func (s *ShaderModule) Destroy() {}

type RootLayout struct {
	desc hal.RootLayoutDesc
	hash uint64
}

func (r *RootLayout) Destroy()            {}
func (r *RootLayout) ContentHash() uint64 { return r.hash }

type GraphicsPipeline struct {
	desc   types.GraphicsPipelineDesc
	layout *RootLayout
}

func (p *GraphicsPipeline) Destroy()             {}
func (p *GraphicsPipeline) RootLayout() hal.RootLayout { return p.layout }

type ComputePipeline struct {
	desc   types.ComputePipelineDesc
	layout *RootLayout
}

func (p *ComputePipeline) Destroy()             {}
func (p *ComputePipeline) RootLayout() hal.RootLayout { return p.layout }

// Fence is a plain atomic-free counter: every Queue method on the null
// backend runs synchronously on the caller's goroutine, so a mutex is
// enough and there is never a "pending" value to poll for.
type Fence struct {
	mu    sync.Mutex
	value uint64
}

func (f *Fence) Destroy() {}

func (f *Fence) CompletedValue() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *Fence) signal(value uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if value > f.value {
		f.value = value
	}
}

type CommandAllocator struct{ queueType hal.QueueType }

func (a *CommandAllocator) Destroy()      {}
func (a *CommandAllocator) Reset() error  { return nil }

type QueryHeap struct{ count uint32 }

func (q *QueryHeap) Destroy()       {}
func (q *QueryHeap) Count() uint32 { return q.count }
