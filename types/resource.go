package types

// TextureDimension is the shape of a texture resource.
type TextureDimension uint8

const (
	TextureDimensionUnknown TextureDimension = iota
	TextureDimension1D
	TextureDimension1DArray
	TextureDimension2D
	TextureDimension2DArray
	TextureDimensionCube
	TextureDimensionCubeArray
	TextureDimension2DMS
	TextureDimension2DMSArray
	TextureDimension3D
)

// IsArray reports whether the dimension carries more than one array slice
// semantically (cube maps are treated as 6-slice arrays).
func (d TextureDimension) IsArray() bool {
	switch d {
	case TextureDimension1DArray, TextureDimension2DArray, TextureDimensionCube, TextureDimensionCubeArray, TextureDimension2DMSArray:
		return true
	default:
		return false
	}
}

// CPUAccess describes what a CPU may do with mapped resource memory.
type CPUAccess uint8

const (
	CPUAccessNone CPUAccess = iota
	CPUAccessRead
	CPUAccessWrite
)

// ResourceState is a bitmask of the states a resource may be transitioned
// into. It is intentionally a flat flag set (not a small enum) because a
// desired state can legally request more than one bit at once (e.g. a
// structured buffer read as both an SRV and used as a copy source within
// the same barrier request — spec.md §4.2's "desired after-state" is a
// set, not a single value).
type ResourceState uint32

const (
	ResourceStateCommon ResourceState = 0
	ResourceStateConstantBuffer ResourceState = 1 << (iota - 1)
	ResourceStateVertexBuffer
	ResourceStateIndexBuffer
	ResourceStatePixelShaderResource
	ResourceStateNonPixelShaderResource
	ResourceStateUnorderedAccess
	ResourceStateRenderTarget
	ResourceStateDepthWrite
	ResourceStateDepthRead
	ResourceStateStreamOut
	ResourceStateCopyDest
	ResourceStateCopySource
	ResourceStateResolveDest
	ResourceStateResolveSource
	ResourceStatePresent
	ResourceStateIndirectArgument
	ResourceStateShadingRateSource
	ResourceStateAccelStructRead
	ResourceStateAccelStructWrite
	ResourceStateAccelStructBuildInput
	ResourceStateAccelStructBuildBlas
)

// Contains reports whether all bits in other are present in s.
func (s ResourceState) Contains(other ResourceState) bool {
	return s&other == other
}

// IsReadOnlyState reports whether every bit in s is a read-only usage.
// Used by the state tracker to decide whether two read states may coexist
// without a barrier.
func (s ResourceState) IsReadOnlyState() bool {
	const writeMask = ResourceStateUnorderedAccess | ResourceStateRenderTarget |
		ResourceStateDepthWrite | ResourceStateStreamOut | ResourceStateCopyDest |
		ResourceStateResolveDest | ResourceStateAccelStructWrite | ResourceStateAccelStructBuildBlas
	return s&writeMask == 0
}

// IsUAV reports whether the unordered-access bit is requested.
func (s ResourceState) IsUAV() bool {
	return s&ResourceStateUnorderedAccess != 0
}

// TextureUsage is a bitmask describing what a texture may be used for,
// validated at creation time so the descriptor-heap/view-cache layer can
// refuse to author a view kind the texture was never declared to support.
type TextureUsage uint32

const (
	TextureUsageShaderResource TextureUsage = 1 << iota
	TextureUsageRenderTarget
	TextureUsageDepthStencil
	TextureUsageUnorderedAccess
	TextureUsageShadingRateSource
)

// BufferUsage enumerates the ways a buffer may be bound.
type BufferUsage uint8

const (
	BufferUsageVertex BufferUsage = iota
	BufferUsageIndex
	BufferUsageConstant
	BufferUsageStructured
	BufferUsageRaw
	BufferUsageIndirect
	BufferUsageShaderBindingTable
	BufferUsageAccelStructStorage
)

// ConstantBufferAlignment is the offset/size alignment constant buffers
// must round up to, per spec.md §3.
const ConstantBufferAlignment = 256

// AlignConstantBufferSize rounds size up to ConstantBufferAlignment.
func AlignConstantBufferSize(size uint64) uint64 {
	const mask = ConstantBufferAlignment - 1
	return (size + mask) &^ mask
}

// TextureRowPitchAlignment is the placement-footprint row-pitch
// alignment a texture upload's row pitch must be rounded up to
// (spec.md §4.4 "writeTexture ... rounded up to the row-pitch
// alignment"), matching D3D12's D3D12_TEXTURE_DATA_PITCH_ALIGNMENT.
const TextureRowPitchAlignment = 256

// AlignRowPitch rounds pitch up to TextureRowPitchAlignment.
func AlignRowPitch(pitch uint32) uint32 {
	const mask = TextureRowPitchAlignment - 1
	return (pitch + mask) &^ mask
}

// Color is an RGBA clear/blend color.
type Color struct {
	R, G, B, A float32
}

// ClearValue is the optional fast-clear value stamped onto a texture
// description; depth/stencil textures use Depth/Stencil, color textures
// use Color.
type ClearValue struct {
	Color   Color
	Depth   float32
	Stencil uint8
}

// TextureDesc is the immutable description of a texture resource
// (spec.md §3 "Texture").
type TextureDesc struct {
	Name string

	Width       uint32
	Height      uint32
	Depth       uint32
	ArraySize   uint32
	MipLevels   uint32
	SampleCount uint32
	SampleQuality uint32

	Format    Format
	Dimension TextureDimension
	Usage     TextureUsage

	IsVirtual bool

	HasClearValue bool
	ClearValue    ClearValue

	InitialState ResourceState
}

// SubresourceCount returns mip_levels * array_size, the length of the
// per-subresource state vector the tracker allocates when it cannot
// collapse the texture to a single whole-resource state.
func (d TextureDesc) SubresourceCount() uint32 {
	arraySize := d.ArraySize
	if arraySize == 0 {
		arraySize = 1
	}
	mips := d.MipLevels
	if mips == 0 {
		mips = 1
	}
	return mips * arraySize
}

// BufferDesc is the immutable description of a buffer resource
// (spec.md §3 "Buffer").
type BufferDesc struct {
	Name string

	ByteSize     uint64
	StructStride uint32
	Format       Format
	Usage        BufferUsage

	IsVolatile bool
	CPUAccess  CPUAccess
	MaxVersions uint32

	IsVirtual    bool
	InitialState ResourceState
}

// Validate enforces the invariants spec.md §3 places on buffers:
// constant-buffer size rounding and volatile/cpu-access coupling.
func (d *BufferDesc) Validate() error {
	if d.Usage == BufferUsageConstant {
		d.ByteSize = AlignConstantBufferSize(d.ByteSize)
	}
	if d.IsVolatile && d.CPUAccess != CPUAccessWrite {
		return errInvalidf("buffer %q: is_volatile requires cpu_access=Write", d.Name)
	}
	return nil
}

// HeapType selects the memory pool a virtual resource is placed in.
type HeapType uint8

const (
	HeapTypeDefault HeapType = iota
	HeapTypeUpload
	HeapTypeReadback
)

// HeapDesc describes a memory heap resources can be suballocated from.
type HeapDesc struct {
	Name     string
	Type     HeapType
	Capacity uint64
}

// SamplerDesc describes a texture sampler.
type SamplerDesc struct {
	Name string

	AddressU, AddressV, AddressW AddressMode
	MinFilter, MagFilter, MipFilter FilterMode
	MaxAnisotropy                   uint32
	MinLOD, MaxLOD                  float32
	MipLODBias                      float32
	ReductionType                    SamplerReductionType
	BorderColor                      Color
}

// AddressMode is the texture-coordinate wrapping behavior.
type AddressMode uint8

const (
	AddressModeClamp AddressMode = iota
	AddressModeWrap
	AddressModeMirror
	AddressModeBorder
	AddressModeMirrorOnce
)

// FilterMode is the sampling filter.
type FilterMode uint8

const (
	FilterModePoint FilterMode = iota
	FilterModeLinear
)

// SamplerReductionType selects standard, comparison, minimum, or maximum
// filtering reduction.
type SamplerReductionType uint8

const (
	SamplerReductionStandard SamplerReductionType = iota
	SamplerReductionComparison
	SamplerReductionMinimum
	SamplerReductionMaximum
)
