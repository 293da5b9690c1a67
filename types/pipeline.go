package types

// MaxRenderTargets bounds how many simultaneous color attachments a
// framebuffer / graphics pipeline may describe.
const MaxRenderTargets = 8

// MaxVertexAttributes bounds an input layout's attribute count.
const MaxVertexAttributes = 16

// PrimitiveType selects how vertices assemble into primitives.
type PrimitiveType uint8

const (
	PrimitiveTypePointList PrimitiveType = iota
	PrimitiveTypeLineList
	PrimitiveTypeTriangleList
	PrimitiveTypeTriangleStrip
	PrimitiveTypeTriangleListAdjacency
	PrimitiveTypeTriangleStripAdjacency
	PrimitiveTypePatchList
)

// BlendFactor is a fixed-function blend operand.
type BlendFactor uint8

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorInvSrcColor
	BlendFactorSrcAlpha
	BlendFactorInvSrcAlpha
	BlendFactorDstAlpha
	BlendFactorInvDstAlpha
	BlendFactorDstColor
	BlendFactorInvDstColor
	BlendFactorSrcAlphaSaturate
	BlendFactorConstantColor
	BlendFactorInvConstantColor
)

// BlendOp combines source and destination blend operands.
type BlendOp uint8

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// ColorMask selects which color channels a render target writes.
type ColorMask uint8

const (
	ColorMaskRed   ColorMask = 1 << iota
	ColorMaskGreen
	ColorMaskBlue
	ColorMaskAlpha
	ColorMaskAll = ColorMaskRed | ColorMaskGreen | ColorMaskBlue | ColorMaskAlpha
)

// RenderTargetBlendState is the per-attachment blend configuration.
type RenderTargetBlendState struct {
	EnableBlend bool

	SrcBlend, DstBlend           BlendFactor
	BlendOp                      BlendOp
	SrcBlendAlpha, DstBlendAlpha BlendFactor
	BlendOpAlpha                 BlendOp

	ColorWriteMask ColorMask
}

// UsesConstantColor reports whether this state references the pipeline's
// blend-constant color.
func (s RenderTargetBlendState) UsesConstantColor() bool {
	isConst := func(f BlendFactor) bool {
		return f == BlendFactorConstantColor || f == BlendFactorInvConstantColor
	}
	return isConst(s.SrcBlend) || isConst(s.DstBlend) || isConst(s.SrcBlendAlpha) || isConst(s.DstBlendAlpha)
}

// BlendState bundles per-render-target blend configuration.
type BlendState struct {
	Targets               [MaxRenderTargets]RenderTargetBlendState
	EnableAlphaToCoverage bool
}

// FillMode selects solid or wireframe rasterization.
type FillMode uint8

const (
	FillModeSolid FillMode = iota
	FillModeWireframe
)

// CullMode selects triangle-facing culling.
type CullMode uint8

const (
	CullModeBack CullMode = iota
	CullModeFront
	CullModeNone
)

// RasterState is the fixed-function rasterizer configuration.
type RasterState struct {
	FillMode           FillMode
	CullMode           CullMode
	FrontCounterClockwise bool

	EnableDepthClip        bool
	EnableScissor          bool
	EnableMultisample      bool
	EnableAntialiasedLine  bool
	DepthBias              int32
	DepthBiasClamp         float32
	SlopeScaledDepthBias   float32

	ForcedSampleCount       uint8
	EnableConservativeRaster bool
}

// StencilOp is a stencil fixed-function operation.
type StencilOp uint8

const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrementClamp
	StencilOpDecrementClamp
	StencilOpInvert
	StencilOpIncrementWrap
	StencilOpDecrementWrap
)

// CompareFunc is a comparison function used by depth/stencil tests.
type CompareFunc uint8

const (
	CompareFuncNever CompareFunc = iota
	CompareFuncLess
	CompareFuncEqual
	CompareFuncLessEqual
	CompareFuncGreater
	CompareFuncNotEqual
	CompareFuncGreaterEqual
	CompareFuncAlways
)

// StencilFaceOp bundles the three stencil ops plus the comparison
// function for one polygon face.
type StencilFaceOp struct {
	PassOp      StencilOp
	FailOp      StencilOp
	DepthFailOp StencilOp
	Func        CompareFunc
}

// DepthStencilState is the fixed-function depth/stencil test configuration.
type DepthStencilState struct {
	EnableDepthTest  bool
	EnableDepthWrite bool
	DepthFunc        CompareFunc

	EnableStencil     bool
	StencilReadMask   uint8
	StencilWriteMask  uint8
	StencilRefValue   uint8
	DynamicStencilRef bool
	FrontFace         StencilFaceOp
	BackFace          StencilFaceOp
}

// RenderState bundles the three fixed-function state blocks a graphics
// pipeline carries (spec.md §4.6).
type RenderState struct {
	Blend        BlendState
	DepthStencil DepthStencilState
	Raster       RasterState
}

// VertexAttributeDesc is one entry in an input layout.
type VertexAttributeDesc struct {
	Name          string
	Format        Format
	Offset        uint32
	ElementStride uint32
	ArraySize     uint32
	BufferSlot    uint32
	IsInstanced   bool
}

// InputLayoutDesc is the ordered list of vertex attributes a graphics
// pipeline consumes.
type InputLayoutDesc struct {
	Attributes []VertexAttributeDesc
}

// FrameBufferInfo is the derived, canonical shape of a framebuffer: the
// width/height/sample-count every attachment must agree on plus the
// per-slot format arrays, used to key pipeline-state compatibility
// (spec.md §3 "FrameBuffer").
type FrameBufferInfo struct {
	Width, Height uint32
	SampleCount   uint32
	ColorFormats  [MaxRenderTargets]Format
	ColorCount    uint32
	DepthFormat   Format
	HasDepth      bool
}

// GraphicsPipelineDesc is the immutable description of a graphics
// pipeline (spec.md §3 "Pipeline").
type GraphicsPipelineDesc struct {
	Name string

	InputLayout        *InputLayoutDesc
	PrimitiveType       PrimitiveType
	PatchControlPoints  uint32

	VS, HS, DS, GS, PS *ShaderByteCode

	RenderState RenderState

	FrameBuffer FrameBufferInfo
}

// ComputePipelineDesc is the immutable description of a compute pipeline.
type ComputePipelineDesc struct {
	Name string
	CS   *ShaderByteCode
}
