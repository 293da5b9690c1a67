package resource

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/descriptor"
	"github.com/CellarCordial/FTS-Render-sub002/internal/track"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// Texture wraps a native texture with its creation descriptor.
type Texture struct {
	native hal.Texture
	desc   types.TextureDesc
}

func (t *Texture) Native() hal.Texture     { return t.native }
func (t *Texture) Desc() types.TextureDesc { return t.desc }

// Buffer wraps a native buffer with its creation descriptor.
type Buffer struct {
	native hal.Buffer
	desc   types.BufferDesc
}

func (b *Buffer) Native() hal.Buffer     { return b.native }
func (b *Buffer) Desc() types.BufferDesc { return b.desc }

// Sampler wraps a native sampler.
type Sampler struct {
	native hal.Sampler
	desc   types.SamplerDesc
}

func (s *Sampler) Native() hal.Sampler     { return s.native }
func (s *Sampler) Desc() types.SamplerDesc { return s.desc }

// Heap wraps a native memory heap.
type Heap struct {
	native hal.Heap
	desc   types.HeapDesc
}

func (h *Heap) Native() hal.Heap     { return h.native }
func (h *Heap) Desc() types.HeapDesc { return h.desc }

const (
	defaultRTVCapacity         = 64
	defaultDSVCapacity         = 32
	defaultCBVSRVUAVCapacity   = 1024
	defaultSamplerCapacity     = 64
)

// Factory creates resources and owns the descriptor heaps / view caches
// and the resource state tracker every created resource is registered
// with.
type Factory struct {
	device hal.Device

	heaps  map[types.DescriptorHeapKind]*descriptor.HeapManager
	caches map[types.DescriptorHeapKind]*descriptor.ViewCache

	tracker *track.Tracker
}

// NewFactory creates the four descriptor heaps (RTV/DSV non-shader-
// visible, CBV/SRV/UAV and Sampler shader-visible) and an empty tracker.
func NewFactory(device hal.Device) (*Factory, error) {
	f := &Factory{
		device:  device,
		heaps:   make(map[types.DescriptorHeapKind]*descriptor.HeapManager),
		caches:  make(map[types.DescriptorHeapKind]*descriptor.ViewCache),
		tracker: track.New(),
	}

	kinds := []struct {
		kind     types.DescriptorHeapKind
		capacity uint32
	}{
		{types.DescriptorHeapRTV, defaultRTVCapacity},
		{types.DescriptorHeapDSV, defaultDSVCapacity},
		{types.DescriptorHeapCBVSRVUAV, defaultCBVSRVUAVCapacity},
		{types.DescriptorHeapSampler, defaultSamplerCapacity},
	}
	for _, k := range kinds {
		heap, err := descriptor.NewHeapManager(device, k.kind, k.capacity, k.kind.IsShaderVisible())
		if err != nil {
			return nil, fmt.Errorf("resource: create %v heap: %w", k.kind, err)
		}
		f.heaps[k.kind] = heap
		f.caches[k.kind] = descriptor.NewViewCache(heap)
	}
	return f, nil
}

// Tracker returns the shared resource-state tracker every create call
// registers with and internal/command drives during recording.
func (f *Factory) Tracker() *track.Tracker { return f.tracker }

// Heap returns the descriptor-heap manager for kind, used by
// internal/binding to reserve descriptor-table blocks.
func (f *Factory) Heap(kind types.DescriptorHeapKind) *descriptor.HeapManager { return f.heaps[kind] }

func (f *Factory) CreateTexture(desc types.TextureDesc) (*Texture, error) {
	native, err := f.device.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("resource: create texture %q: %w", desc.Name, err)
	}
	f.tracker.AdoptTexture(native, desc.InitialState)
	return &Texture{native: native, desc: desc}, nil
}

func (f *Factory) CreateBuffer(desc types.BufferDesc) (*Buffer, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	native, err := f.device.CreateBuffer(desc)
	if err != nil {
		return nil, fmt.Errorf("resource: create buffer %q: %w", desc.Name, err)
	}
	f.tracker.Adopt(native, desc.InitialState)
	return &Buffer{native: native, desc: desc}, nil
}

func (f *Factory) CreateSampler(desc types.SamplerDesc) (*Sampler, error) {
	native, err := f.device.CreateSampler(desc)
	if err != nil {
		return nil, fmt.Errorf("resource: create sampler %q: %w", desc.Name, err)
	}
	return &Sampler{native: native, desc: desc}, nil
}

func (f *Factory) CreateHeap(desc types.HeapDesc) (*Heap, error) {
	native, err := f.device.CreateHeap(desc)
	if err != nil {
		return nil, fmt.Errorf("resource: create heap %q: %w", desc.Name, err)
	}
	return &Heap{native: native, desc: desc}, nil
}

// DestroyTexture forgets tex's tracked state and every cached view
// before releasing the native object.
func (f *Factory) DestroyTexture(tex *Texture) {
	f.tracker.ForgetTexture(tex.native)
	for _, c := range f.caches {
		c.Invalidate(tex.native)
	}
	tex.native.Destroy()
}

// DestroyBuffer is the buffer analogue of DestroyTexture.
func (f *Factory) DestroyBuffer(buf *Buffer) {
	f.tracker.Forget(buf.native)
	for _, c := range f.caches {
		c.Invalidate(buf.native)
	}
	buf.native.Destroy()
}

// TextureView returns the descriptor-heap slot, on the heap heapKindFor
// picks for kind, of a texture-derived view, authoring and caching it on
// first request.
func (f *Factory) TextureView(tex *Texture, kind types.ViewKind, format types.Format, subresource hal.SubresourceRange) (uint32, error) {
	heapKind := heapKindFor(kind)
	return f.caches[heapKind].TextureView(tex.native, kind, resolveFormat(format, tex.desc.Format), subresource)
}

// TextureViewHandle is TextureView plus the CPU descriptor handle lookup,
// used by callers (the root assembly package's RTV/DSV clear paths) that
// need a handle rather than a shader-visible table slot.
func (f *Factory) TextureViewHandle(tex *Texture, kind types.ViewKind, format types.Format, subresource hal.SubresourceRange) (hal.CPUDescriptorHandle, error) {
	heapKind := heapKindFor(kind)
	slot, err := f.caches[heapKind].TextureView(tex.native, kind, resolveFormat(format, tex.desc.Format), subresource)
	if err != nil {
		return hal.CPUDescriptorHandle{}, err
	}
	return f.heaps[heapKind].CPUHandle(slot), nil
}

// BufferView is the buffer analogue of TextureView.
func (f *Factory) BufferView(buf *Buffer, kind types.ViewKind, format types.Format, offset, size uint64) (uint32, error) {
	heapKind := heapKindFor(kind)
	return f.caches[heapKind].BufferView(buf.native, kind, resolveFormat(format, buf.desc.Format), offset, size)
}

// InvalidateVolatileView drops any cached view for a volatile constant
// buffer's previous backing, called once per write since each write
// produces a distinct GPU address (spec.md §4.5 "volatile constant
// buffers").
func (f *Factory) InvalidateVolatileView(buf *Buffer) {
	f.caches[types.DescriptorHeapCBVSRVUAV].Invalidate(buf.native)
}

func heapKindFor(kind types.ViewKind) types.DescriptorHeapKind {
	switch kind {
	case types.ViewKindTextureRTV:
		return types.DescriptorHeapRTV
	case types.ViewKindTextureDSV:
		return types.DescriptorHeapDSV
	case types.ViewKindSampler:
		return types.DescriptorHeapSampler
	default:
		return types.DescriptorHeapCBVSRVUAV
	}
}

func resolveFormat(override, fallback types.Format) types.Format {
	if override == types.FormatUnknown {
		return fallback
	}
	return override
}
