package hal

import "github.com/CellarCordial/FTS-Render-sub002/types"

// Backend identifies one native graphics API implementation and is the
// sole entry point for obtaining a Device.
type Backend interface {
	// Name returns a human-readable backend identifier ("dx12", "vulkan",
	// "null") used in log lines and error messages.
	Name() string

	// OpenDevice opens the (singular, for this RHI) logical device the
	// backend exposes. Real multi-adapter enumeration is out of scope;
	// spec.md treats device selection as the embedding application's
	// concern.
	OpenDevice() (Device, error)
}

// RootLayoutDesc is the flattened binding-layout shape internal/binding
// lowers a layered BindingSpace into before asking the backend to build
// one native root signature / pipeline layout (spec.md §4.5). Order
// follows the four rules the binding layer applies: push constants first,
// then volatile constant buffers, then bound SRV/UAV/sampler tables, then
// bindless spaces.
type RootLayoutDesc struct {
	PushConstants      *types.BindingLayoutItem // Kind == ViewKindPushConstants, nil if unused
	VolatileConstants  []types.BindingLayoutItem
	BoundLayouts       []types.BindingLayoutDesc
	BindlessLayouts    []types.BindlessLayoutDesc
}

// Device creates and destroys native GPU resources and is the factory a
// backend exposes for everything internal/* layers build on top of.
type Device interface {
	Name() string

	CreateTexture(desc types.TextureDesc) (Texture, error)
	CreateBuffer(desc types.BufferDesc) (Buffer, error)
	CreateSampler(desc types.SamplerDesc) (Sampler, error)
	CreateHeap(desc types.HeapDesc) (Heap, error)

	CreateDescriptorHeap(kind types.DescriptorHeapKind, capacity uint32, shaderVisible bool) (DescriptorHeap, error)

	CreateShaderModule(code types.ShaderByteCode) (ShaderModule, error)
	CreateRootLayout(desc RootLayoutDesc) (RootLayout, error)
	CreateGraphicsPipeline(layout RootLayout, desc types.GraphicsPipelineDesc) (GraphicsPipeline, error)
	CreateComputePipeline(layout RootLayout, desc types.ComputePipelineDesc) (ComputePipeline, error)

	CreateCommandAllocator(queueType QueueType) (CommandAllocator, error)
	CreateCommandList(queueType QueueType) (CommandList, error)

	CreateFence(initialValue uint64) (Fence, error)
	CreateQueryHeap(count uint32) (QueryHeap, error)

	Queue(queueType QueueType) Queue

	// MapBuffer returns a CPU-visible pointer into a buffer created with
	// CPUAccess != None, valid until UnmapBuffer. internal/upload uses
	// this on the persistently-mapped upload ring; volatile constant
	// buffers route through it once per write.
	MapBuffer(buffer Buffer) ([]byte, error)
	UnmapBuffer(buffer Buffer)

	// GPUAddress returns the device-virtual address a buffer (or a
	// volatile CB's current version) is bound at, used to patch a root
	// CBV parameter directly instead of through a descriptor table.
	GPUAddress(buffer Buffer, offset uint64) uint64

	// Removed reports whether the device has entered the fatal
	// device-removed state; once true every subsequent call fails with
	// ErrDeviceRemoved.
	Removed() bool
}

// Queue is a native command queue commands are submitted to and fences
// are signaled/waited on.
type Queue interface {
	Type() QueueType

	// Submit enqueues lists for execution in order. Every list must have
	// been Close()d and must target this queue's type.
	Submit(lists []CommandList) error

	// Signal schedules a GPU-side signal of fence to value once every
	// command submitted before this call has completed.
	Signal(fence Fence, value uint64) error

	// Wait blocks the CPU until fence reaches value. It takes no timeout
	// and cannot be cancelled.
	Wait(fence Fence, value uint64) error

	// WaitOnQueue makes this queue's GPU timeline wait on another
	// queue's fence before executing further submitted work (cross-queue
	// dependency, spec.md §4.3).
	WaitOnQueue(fence Fence, value uint64) error
}
