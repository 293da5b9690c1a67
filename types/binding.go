package types

// ViewKind enumerates the kinds of descriptor a binding-layout item (or a
// texture/buffer view-cache entry) may resolve to, mirroring
// ResourceViewType from original_source/source/dynamic_rhi/binding.h.
type ViewKind uint16

const (
	ViewKindNone ViewKind = iota

	ViewKindTextureRTV
	ViewKindTextureDSV
	ViewKindTextureSRV
	ViewKindTextureUAV

	ViewKindTypedBufferSRV
	ViewKindTypedBufferUAV
	ViewKindStructuredBufferSRV
	ViewKindStructuredBufferUAV
	ViewKindRawBufferSRV
	ViewKindRawBufferUAV

	ViewKindConstantBuffer
	ViewKindVolatileConstantBuffer

	ViewKindAccelStruct

	ViewKindSampler
	ViewKindPushConstants
)

// IsTexture reports whether the view kind applies to textures.
func (k ViewKind) IsTexture() bool {
	switch k {
	case ViewKindTextureRTV, ViewKindTextureDSV, ViewKindTextureSRV, ViewKindTextureUAV:
		return true
	default:
		return false
	}
}

// IsUAV reports whether the view kind grants unordered access.
func (k ViewKind) IsUAV() bool {
	switch k {
	case ViewKindTextureUAV, ViewKindTypedBufferUAV, ViewKindStructuredBufferUAV, ViewKindRawBufferUAV:
		return true
	default:
		return false
	}
}

// DescriptorHeapKind selects one of the four physical descriptor heaps a
// DescriptorHeapManager owns (spec.md §4.1).
type DescriptorHeapKind uint8

const (
	DescriptorHeapRTV DescriptorHeapKind = iota
	DescriptorHeapDSV
	DescriptorHeapCBVSRVUAV
	DescriptorHeapSampler
)

// IsShaderVisible reports whether the heap kind is one of the two
// shader-visible heaps (CBV/SRV/UAV and Sampler).
func (k DescriptorHeapKind) IsShaderVisible() bool {
	return k == DescriptorHeapCBVSRVUAV || k == DescriptorHeapSampler
}

// ShaderVisibility restricts which shader stages may see a binding.
type ShaderVisibility uint16

const (
	ShaderVisibilityVS ShaderVisibility = 1 << iota
	ShaderVisibilityHS
	ShaderVisibilityDS
	ShaderVisibilityGS
	ShaderVisibilityPS
	ShaderVisibilityCS
	ShaderVisibilityAllGraphics = ShaderVisibilityVS | ShaderVisibilityHS | ShaderVisibilityDS | ShaderVisibilityGS | ShaderVisibilityPS
	ShaderVisibilityAll        = ShaderVisibilityAllGraphics | ShaderVisibilityCS
)

// BindingLayoutItem is one slot in a binding layout (spec.md §3
// "BindingLayout"). Slot is the register/slot index within the layout;
// Size carries the push-constants byte size when Kind is
// ViewKindPushConstants and is otherwise unused.
type BindingLayoutItem struct {
	Slot uint32
	Kind ViewKind
	Size uint32
}

// BindingLayoutDesc describes a bound (non-bindless) binding layout.
type BindingLayoutDesc struct {
	Visibility    ShaderVisibility
	RegisterSpace uint32
	Items         []BindingLayoutItem
}

// BindlessLayoutDesc describes a bindless binding layout: a single
// growable table starting at FirstSlot, holding items of the kinds
// listed (push constants and volatile CBs are illegal here per
// spec.md §3).
type BindlessLayoutDesc struct {
	Visibility ShaderVisibility
	FirstSlot  uint32
	Items      []BindingLayoutItem
}

// Validate enforces the BindingLayout invariants from spec.md §3: items
// of the same kind must be slot-contiguous, push-constants/volatile-CB
// are illegal in a bindless layout, and at most one push-constants range
// exists.
func (d *BindingLayoutDesc) Validate() error {
	return validateLayoutItems(d.Items, false)
}

// Validate enforces the bindless-specific subset of the same invariants.
func (d *BindlessLayoutDesc) Validate() error {
	return validateLayoutItems(d.Items, true)
}

func validateLayoutItems(items []BindingLayoutItem, bindless bool) error {
	pushConstants := 0
	bySlotStart := map[ViewKind][]uint32{}
	for _, item := range items {
		if bindless && (item.Kind == ViewKindPushConstants || item.Kind == ViewKindVolatileConstantBuffer) {
			return errInvalidf("binding layout: push-constants and volatile constant buffers are illegal in a bindless layout")
		}
		if item.Kind == ViewKindPushConstants {
			pushConstants++
		}
		bySlotStart[item.Kind] = append(bySlotStart[item.Kind], item.Slot)
	}
	if pushConstants > 1 {
		return errInvalidf("binding layout: at most one push-constants range is allowed, got %d", pushConstants)
	}
	for kind, slots := range bySlotStart {
		if !slotsContiguous(slots) {
			return errInvalidf("binding layout: items of kind %d are not slot-contiguous", kind)
		}
	}
	return nil
}

func slotsContiguous(slots []uint32) bool {
	if len(slots) <= 1 {
		return true
	}
	sorted := append([]uint32(nil), slots...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}
