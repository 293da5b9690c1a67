package null

import (
	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// CommandList executes every recorded call immediately against the
// in-memory resources it touches; there is no native deferred-recording
// buffer to flush on Close. The recording methods do not check the list's
// state, so recording after Close is not rejected by this backend.
type CommandList struct {
	queueType hal.QueueType
	state     hal.CommandListState

	heaps []hal.DescriptorHeap

	boundColorTargets []hal.RenderTargetBinding
	boundDepthTarget  *hal.RenderTargetBinding
}

func newCommandList(queueType hal.QueueType) *CommandList {
	return &CommandList{queueType: queueType, state: hal.CommandListIdle}
}

func (c *CommandList) Destroy() {}

func (c *CommandList) QueueType() hal.QueueType { return c.queueType }

func (c *CommandList) Begin(allocator hal.CommandAllocator) error {
	c.state = hal.CommandListOpen
	return nil
}

func (c *CommandList) Close() error {
	c.state = hal.CommandListClosed
	return nil
}

func (c *CommandList) ResourceBarrier(barriers []hal.Barrier) {
	// The null backend has no hazard hardware to synchronize; barriers
	// are accepted and discarded. internal/track still exercises its
	// bookkeeping regardless of whether the backend needs the result.
}

func (c *CommandList) CopyBufferRegion(dst hal.Buffer, dstOffset uint64, src hal.Buffer, srcOffset, size uint64) {
	d := dst.(*Buffer)
	s := src.(*Buffer)
	d.mu.Lock()
	s.mu.Lock()
	copy(d.data[dstOffset:dstOffset+size], s.data[srcOffset:srcOffset+size])
	s.mu.Unlock()
	d.mu.Unlock()
}

func (c *CommandList) CopyTextureRegion(dst hal.Texture, dstSubresource uint32, src hal.Texture, srcSubresource uint32) {
	d := dst.(*Texture)
	s := src.(*Texture)
	n := len(d.data)
	if len(s.data) < n {
		n = len(s.data)
	}
	copy(d.data[:n], s.data[:n])
}

func (c *CommandList) CopyBufferToTexture(dst hal.Texture, dstSubresource uint32, src hal.Buffer, srcOffset uint64, rowPitch, rowCount uint32) {
	d := dst.(*Texture)
	s := src.(*Buffer)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(d.data)
	avail := len(s.data) - int(srcOffset)
	if avail < n {
		n = avail
	}
	if n > 0 {
		copy(d.data[:n], s.data[srcOffset:int(srcOffset)+n])
	}
}

func (c *CommandList) ClearRenderTargetView(handle hal.CPUDescriptorHandle, color types.Color) {
	heap := handle.Heap.(*DescriptorHeap)
	rec := heap.slots[handle.Slot]
	if !rec.valid || rec.texture == nil {
		return
	}
	info := types.GetFormatInfo(rec.texture.desc.Format)
	stride := int(info.BytesPerPixel)
	if stride == 0 {
		return
	}
	for off := 0; off+stride <= len(rec.texture.data); off += stride {
		writeClearPixel(rec.texture.data[off:off+stride], color)
	}
}

func writeClearPixel(dst []byte, color types.Color) {
	for i := range dst {
		switch i % 4 {
		case 0:
			dst[i] = byte(color.R * 255)
		case 1:
			dst[i] = byte(color.G * 255)
		case 2:
			dst[i] = byte(color.B * 255)
		default:
			dst[i] = byte(color.A * 255)
		}
	}
}

func (c *CommandList) ClearDepthStencilView(handle hal.CPUDescriptorHandle, depth float32, stencil uint8, clearDepth, clearStencil bool) {
	heap := handle.Heap.(*DescriptorHeap)
	rec := heap.slots[handle.Slot]
	if !rec.valid || rec.texture == nil {
		return
	}
	for i := range rec.texture.data {
		rec.texture.data[i] = 0
	}
}

func (c *CommandList) SetGraphicsRootLayout(layout hal.RootLayout) {}
func (c *CommandList) SetComputeRootLayout(layout hal.RootLayout)  {}
func (c *CommandList) SetGraphicsPipeline(pipeline hal.GraphicsPipeline) {}
func (c *CommandList) SetComputePipeline(pipeline hal.ComputePipeline)   {}

func (c *CommandList) SetDescriptorHeaps(heaps []hal.DescriptorHeap) { c.heaps = heaps }

func (c *CommandList) SetGraphicsRootDescriptorTable(rootParamIndex uint32, base hal.GPUDescriptorHandle) {}
func (c *CommandList) SetComputeRootDescriptorTable(rootParamIndex uint32, base hal.GPUDescriptorHandle)  {}
func (c *CommandList) SetGraphicsRootConstantBufferView(rootParamIndex uint32, gpuAddress uint64)          {}
func (c *CommandList) SetComputeRootConstantBufferView(rootParamIndex uint32, gpuAddress uint64)           {}
func (c *CommandList) SetGraphicsRoot32BitConstants(rootParamIndex uint32, data []byte, destOffsetIn32BitValues uint32) {
}
func (c *CommandList) SetComputeRoot32BitConstants(rootParamIndex uint32, data []byte, destOffsetIn32BitValues uint32) {
}

func (c *CommandList) IASetVertexBuffers(startSlot uint32, bindings []hal.VertexBufferBinding) {}
func (c *CommandList) IASetIndexBuffer(binding hal.IndexBufferBinding)                         {}
func (c *CommandList) IASetPrimitiveTopology(primitive types.PrimitiveType)                    {}

func (c *CommandList) RSSetViewports(viewports []hal.Viewport)     {}
func (c *CommandList) RSSetScissorRects(rects []hal.ScissorRect)   {}

func (c *CommandList) OMSetRenderTargets(colors []hal.RenderTargetBinding, depthStencil *hal.RenderTargetBinding) {
	c.boundColorTargets = colors
	c.boundDepthTarget = depthStencil
}
func (c *CommandList) OMSetBlendFactor(color types.Color) {}
func (c *CommandList) OMSetStencilRef(ref uint8)          {}

func (c *CommandList) DrawInstanced(vertexCount, instanceCount, startVertex, startInstance uint32) {}
func (c *CommandList) DrawIndexedInstanced(indexCount, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32) {
}
func (c *CommandList) Dispatch(groupsX, groupsY, groupsZ uint32) {}

func (c *CommandList) BeginQuery(heap hal.QueryHeap, index uint32)                               {}
func (c *CommandList) EndQuery(heap hal.QueryHeap, index uint32)                                 {}
func (c *CommandList) ResolveQueryData(heap hal.QueryHeap, startIndex, count uint32, dst hal.Buffer, dstOffset uint64) {
}

func (c *CommandList) BeginMarker(name string) {}
func (c *CommandList) EndMarker()              {}

var _ hal.CommandList = (*CommandList)(nil)
