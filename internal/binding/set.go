package binding

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/descriptor"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// SetBinding is what one binding-layout slot is bound to.
type SetBinding struct {
	Texture     *resource.Texture
	Buffer      *resource.Buffer
	Sampler     *resource.Sampler
	Format      types.Format
	Subresource hal.SubresourceRange
	Offset, Size uint64
}

type itemLocation struct {
	item       types.BindingLayoutItem
	isSampler  bool
	localIndex uint32
}

// Set is one authored descriptor table for a bound (non-bindless)
// binding layout. Its slots occupy a fixed, contiguous block allocated
// once at creation; Bind only ever rewrites an existing slot, so the
// same table can be patched draw-to-draw without reallocating (spec.md
// §4.4's per-draw binding diff/patch).
type Set struct {
	layout types.BindingLayoutDesc

	resourceHeap *descriptor.HeapManager
	samplerHeap  *descriptor.HeapManager

	resourceBase, resourceCount uint32
	samplerBase, samplerCount   uint32

	byLayoutSlot map[uint32]itemLocation
}

// NewSet partitions layout's items between the CBV/SRV/UAV heap and the
// sampler heap, reserves one contiguous block in each, and returns a Set
// ready for Bind calls.
func NewSet(factory *resource.Factory, layout types.BindingLayoutDesc) (*Set, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	s := &Set{
		layout:       layout,
		resourceHeap: factory.Heap(types.DescriptorHeapCBVSRVUAV),
		samplerHeap:  factory.Heap(types.DescriptorHeapSampler),
		byLayoutSlot: make(map[uint32]itemLocation),
	}

	var resourceItems, samplerItems []types.BindingLayoutItem
	for _, it := range layout.Items {
		switch it.Kind {
		case types.ViewKindPushConstants, types.ViewKindVolatileConstantBuffer:
			// internal/binding.Lower routes these to dedicated root
			// parameters, never a descriptor table; a Set built from the
			// pre-Lower layout must skip them rather than reserve table
			// slots that Bind would never be asked to fill.
			continue
		case types.ViewKindSampler:
			samplerItems = append(samplerItems, it)
		default:
			resourceItems = append(resourceItems, it)
		}
	}

	if len(resourceItems) > 0 {
		base, err := s.resourceHeap.AllocateRange(uint32(len(resourceItems)))
		if err != nil {
			return nil, fmt.Errorf("binding: allocate resource table: %w", err)
		}
		s.resourceBase, s.resourceCount = base, uint32(len(resourceItems))
		for i, it := range resourceItems {
			s.byLayoutSlot[it.Slot] = itemLocation{item: it, localIndex: uint32(i)}
		}
	}
	if len(samplerItems) > 0 {
		base, err := s.samplerHeap.AllocateRange(uint32(len(samplerItems)))
		if err != nil {
			return nil, fmt.Errorf("binding: allocate sampler table: %w", err)
		}
		s.samplerBase, s.samplerCount = base, uint32(len(samplerItems))
		for i, it := range samplerItems {
			s.byLayoutSlot[it.Slot] = itemLocation{item: it, isSampler: true, localIndex: uint32(i)}
		}
	}

	return s, nil
}

// Bind authors binding into slot, replacing whatever was there. Slots
// never explicitly bound keep whatever the backend's descriptor heap
// defaults a fresh slot to (an invalid/empty view on the null backend),
// which is the table's implicit null-descriptor behavior.
func (s *Set) Bind(slot uint32, binding SetBinding) error {
	loc, ok := s.byLayoutSlot[slot]
	if !ok {
		return fmt.Errorf("binding: slot %d is not declared in this layout", slot)
	}

	if loc.isSampler {
		if binding.Sampler == nil {
			return fmt.Errorf("binding: slot %d expects a sampler", slot)
		}
		return s.samplerHeap.WriteSampler(s.samplerBase+loc.localIndex, binding.Sampler.Desc())
	}

	target := s.resourceBase + loc.localIndex
	switch {
	case loc.item.Kind.IsTexture():
		if binding.Texture == nil {
			return fmt.Errorf("binding: slot %d expects a texture", slot)
		}
		return s.resourceHeap.WriteTextureView(target, binding.Texture.Native(), loc.item.Kind, binding.Format, binding.Subresource)
	default:
		if binding.Buffer == nil {
			return fmt.Errorf("binding: slot %d expects a buffer", slot)
		}
		return s.resourceHeap.WriteBufferView(target, binding.Buffer.Native(), loc.item.Kind, binding.Format, binding.Offset, binding.Size)
	}
}

// ResourceTableBase returns the GPU handle to bind as the resource
// (CBV/SRV/UAV) descriptor table's base, or false if this set has no
// resource items.
func (s *Set) ResourceTableBase() (hal.GPUDescriptorHandle, bool) {
	if s.resourceCount == 0 {
		return hal.GPUDescriptorHandle{}, false
	}
	return s.resourceHeap.GPUHandle(s.resourceBase), true
}

// SamplerTableBase is the sampler analogue of ResourceTableBase.
func (s *Set) SamplerTableBase() (hal.GPUDescriptorHandle, bool) {
	if s.samplerCount == 0 {
		return hal.GPUDescriptorHandle{}, false
	}
	return s.samplerHeap.GPUHandle(s.samplerBase), true
}

// Destroy releases this set's descriptor-table blocks.
func (s *Set) Destroy() {
	if s.resourceCount > 0 {
		s.resourceHeap.FreeRange(s.resourceBase, s.resourceCount)
	}
	if s.samplerCount > 0 {
		s.samplerHeap.FreeRange(s.samplerBase, s.samplerCount)
	}
}
