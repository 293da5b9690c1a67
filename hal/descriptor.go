package hal

import "github.com/CellarCordial/FTS-Render-sub002/types"

// CPUDescriptorHandle addresses one slot in a heap for CPU-side writes
// (CreateShaderResourceView-style calls). Its native representation is
// backend-specific (a D3D12_CPU_DESCRIPTOR_HANDLE or a VkDescriptorSet
// plus binding index); hal only needs it to be an opaque, comparable
// value the allocator can hand back to the same backend.
type CPUDescriptorHandle struct {
	Heap DescriptorHeap
	Slot uint32
}

// GPUDescriptorHandle addresses one slot in a shader-visible heap for
// binding into a root parameter.
type GPUDescriptorHandle struct {
	Heap DescriptorHeap
	Slot uint32
}

// DescriptorHeap is the native, fixed-capacity array of descriptor slots
// internal/descriptor suballocates from with its bitset allocator. A heap
// is homogeneous: every slot holds the same DescriptorHeapKind.
type DescriptorHeap interface {
	Resource

	Kind() types.DescriptorHeapKind
	Capacity() uint32

	CPUHandleAt(slot uint32) CPUDescriptorHandle
	GPUHandleAt(slot uint32) GPUDescriptorHandle

	// WriteTextureView authors a texture-derived view (RTV/DSV/SRV/UAV)
	// into slot, replacing whatever was there before.
	WriteTextureView(slot uint32, texture Texture, kind types.ViewKind, format types.Format, subresource SubresourceRange) error

	// WriteBufferView authors a buffer-derived view (CBV/typed or
	// structured or raw SRV/UAV) into slot.
	WriteBufferView(slot uint32, buffer Buffer, kind types.ViewKind, format types.Format, offset, size uint64) error

	// WriteSampler authors a sampler view into slot.
	WriteSampler(slot uint32, desc types.SamplerDesc) error

	// CopyRange copies count consecutive descriptors from src (this heap
	// or another of the same kind) starting at srcStart into this heap
	// starting at dstStart. DescriptorHeapManager uses this to promote a
	// CPU-only allocation onto the shader-visible heap and to preserve
	// live descriptors across a grow-in-place.
	CopyRange(dst DescriptorHeap, dstStart uint32, srcStart, count uint32) error
}

// SubresourceRange names the mips/array-slices a view or a barrier
// addresses. FullRange (zero value apart from MipCount/ArrayCount) covers
// the whole resource.
type SubresourceRange struct {
	BaseMipLevel   uint32
	MipCount       uint32
	BaseArraySlice uint32
	ArrayCount     uint32
}

// AllSubresources is the sentinel MipCount/ArrayCount meaning "every
// subresource the owning texture has", used both by view creation and by
// the barrier whole-resource fast path.
const AllSubresources uint32 = ^uint32(0)

// IsWholeResource reports whether the range addresses every subresource.
func (r SubresourceRange) IsWholeResource() bool {
	return r.MipCount == AllSubresources || r.ArrayCount == AllSubresources
}
