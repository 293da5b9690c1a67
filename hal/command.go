package hal

import "github.com/CellarCordial/FTS-Render-sub002/types"

// Barrier is one resource transition a backend must emit before the
// commands that depend on it. internal/track builds batches of these and
// hands them to CommandList.ResourceBarrier in one call, the same way the
// teacher's tracker batches scope transitions before a pass.
type Barrier struct {
	Texture Texture // nil for a buffer barrier
	Buffer  Buffer  // nil for a texture barrier

	// Subresource is AllSubresources for a whole-resource transition, or
	// a single subresource index (mip + arraySlice*mipLevels) for a
	// per-subresource transition. Ignored for buffer barriers.
	Subresource uint32

	Before, After types.ResourceState

	// IsUAVBarrier marks a UAV-to-UAV synchronization barrier rather than
	// a state transition; Before/After are unused in that case.
	IsUAVBarrier bool
}

// Viewport and ScissorRect mirror the fixed-function rasterizer state a
// command list binds before a draw.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

type ScissorRect struct {
	Left, Top, Right, Bottom int32
}

// VertexBufferBinding binds one native buffer to one input-assembler
// slot.
type VertexBufferBinding struct {
	Buffer Buffer
	Offset uint64
	Stride uint32
}

// IndexBufferBinding binds the native index buffer.
type IndexBufferBinding struct {
	Buffer Buffer
	Offset uint64
	Format types.Format // R16_UINT or R32_UINT
}

// RenderTargetBinding pairs a render-target/depth-stencil descriptor
// handle with the clear behavior a begin-pass wants.
type RenderTargetBinding struct {
	Handle CPUDescriptorHandle
}

// CommandListState is the lifecycle state machine spec.md §4.4 assigns to
// every command list: Idle -> Open -> Closed -> Submitted -> Retired.
type CommandListState uint8

const (
	CommandListIdle CommandListState = iota
	CommandListOpen
	CommandListClosed
	CommandListSubmitted
	CommandListRetired
)

func (s CommandListState) String() string {
	switch s {
	case CommandListIdle:
		return "idle"
	case CommandListOpen:
		return "open"
	case CommandListClosed:
		return "closed"
	case CommandListSubmitted:
		return "submitted"
	case CommandListRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// CommandList is the native recording target (an ID3D12GraphicsCommandList
// or a VkCommandBuffer). Every method below may only be called while the
// list is Open; internal/command enforces that and returns
// types.ErrorKindStatePolicyViolation otherwise, so backends do not need
// to re-check it themselves.
type CommandList interface {
	Resource

	QueueType() QueueType

	Begin(allocator CommandAllocator) error
	Close() error

	ResourceBarrier(barriers []Barrier)

	CopyBufferRegion(dst Buffer, dstOffset uint64, src Buffer, srcOffset, size uint64)
	CopyTextureRegion(dst Texture, dstSubresource uint32, src Texture, srcSubresource uint32)
	CopyBufferToTexture(dst Texture, dstSubresource uint32, src Buffer, srcOffset uint64, rowPitch, rowCount uint32)

	ClearRenderTargetView(handle CPUDescriptorHandle, color types.Color)
	ClearDepthStencilView(handle CPUDescriptorHandle, depth float32, stencil uint8, clearDepth, clearStencil bool)

	SetGraphicsRootLayout(layout RootLayout)
	SetComputeRootLayout(layout RootLayout)
	SetGraphicsPipeline(pipeline GraphicsPipeline)
	SetComputePipeline(pipeline ComputePipeline)

	SetDescriptorHeaps(heaps []DescriptorHeap)
	SetGraphicsRootDescriptorTable(rootParamIndex uint32, base GPUDescriptorHandle)
	SetComputeRootDescriptorTable(rootParamIndex uint32, base GPUDescriptorHandle)
	SetGraphicsRootConstantBufferView(rootParamIndex uint32, gpuAddress uint64)
	SetComputeRootConstantBufferView(rootParamIndex uint32, gpuAddress uint64)
	SetGraphicsRoot32BitConstants(rootParamIndex uint32, data []byte, destOffsetIn32BitValues uint32)
	SetComputeRoot32BitConstants(rootParamIndex uint32, data []byte, destOffsetIn32BitValues uint32)

	IASetVertexBuffers(startSlot uint32, bindings []VertexBufferBinding)
	IASetIndexBuffer(binding IndexBufferBinding)
	IASetPrimitiveTopology(primitive types.PrimitiveType)

	RSSetViewports(viewports []Viewport)
	RSSetScissorRects(rects []ScissorRect)

	OMSetRenderTargets(colors []RenderTargetBinding, depthStencil *RenderTargetBinding)
	OMSetBlendFactor(color types.Color)
	OMSetStencilRef(ref uint8)

	DrawInstanced(vertexCount, instanceCount, startVertex, startInstance uint32)
	DrawIndexedInstanced(indexCount, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32)
	Dispatch(groupsX, groupsY, groupsZ uint32)

	BeginQuery(heap QueryHeap, index uint32)
	EndQuery(heap QueryHeap, index uint32)
	ResolveQueryData(heap QueryHeap, startIndex, count uint32, dst Buffer, dstOffset uint64)

	BeginMarker(name string)
	EndMarker()
}

// QueryHeap is a native timestamp/occlusion/statistics query pool.
type QueryHeap interface {
	Resource
	Count() uint32
}
