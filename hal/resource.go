package hal

import "github.com/CellarCordial/FTS-Render-sub002/types"

// Resource is the base interface every native GPU object satisfies.
type Resource interface {
	// Destroy releases the native object. Calling it twice is undefined
	// behavior; callers are expected to release exactly once, normally
	// from the fence-completion path in internal/command.
	Destroy()

	// Resource has no description accessor of its own; subtypes that
	// carry one expose it by name (TextureDesc, BufferDesc, HeapDesc).
}

// Texture is a native 1D/2D/3D image resource.
type Texture interface {
	Resource
	TextureDesc() types.TextureDesc
}

// Buffer is a native linear memory resource.
type Buffer interface {
	Resource
	BufferDesc() types.BufferDesc
}

// Sampler is a native sampler state object.
type Sampler interface {
	Resource
}

// Heap is a native memory heap that virtual (placed) resources are
// created against.
type Heap interface {
	Resource
	HeapDesc() types.HeapDesc
}

// ShaderModule wraps a compiled shader blob in backend-native form
// (a D3D12 bytecode blob or a VkShaderModule handle).
type ShaderModule interface {
	Resource
}

// RootLayout is the backend-native flattening of a BindingLayout set plus
// any bindless spaces into one root signature / pipeline layout object
// (spec.md §4.5).
type RootLayout interface {
	Resource

	// ContentHash identifies the layout's shape. internal/pipeline does not
	// read it: its root-layout cache keys on internal/binding.ContentHash
	// of the lowered description instead.
	ContentHash() uint64
}

// GraphicsPipeline is a native graphics pipeline state object.
type GraphicsPipeline interface {
	Resource
	RootLayout() RootLayout
}

// ComputePipeline is a native compute pipeline state object.
type ComputePipeline interface {
	Resource
	RootLayout() RootLayout
}

// Fence is a native GPU/CPU synchronization primitive with a monotonic
// 64-bit value, mirroring a D3D12 fence or a Vulkan timeline semaphore.
type Fence interface {
	Resource

	// CompletedValue returns the highest value the GPU has signaled so
	// far. Safe to call from any goroutine.
	CompletedValue() uint64
}

// QueueType identifies which native queue a command list targets.
type QueueType uint8

const (
	QueueTypeGraphics QueueType = iota
	QueueTypeCompute
	QueueTypeCopy
)

func (t QueueType) String() string {
	switch t {
	case QueueTypeGraphics:
		return "graphics"
	case QueueTypeCompute:
		return "compute"
	case QueueTypeCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// CommandAllocator is the native backing store command lists record into
// (an ID3D12CommandAllocator or a VkCommandPool). It may only be reset
// once every command list recorded from it has retired.
type CommandAllocator interface {
	Resource

	// Reset reclaims the allocator's native memory for reuse. The caller
	// (internal/command) is responsible for ensuring nothing recorded
	// from this allocator is still in flight.
	Reset() error
}
