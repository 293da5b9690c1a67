// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/hal/vulkan/vk"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

type commandAllocator struct {
	device *Device
	handle vk.CommandPool
}

var _ hal.CommandAllocator = (*commandAllocator)(nil)

func (a *commandAllocator) Destroy() {
	a.device.cmds.DestroyCommandPool(a.device.handle, a.handle)
}

func (a *commandAllocator) Reset() error {
	r, err := a.device.cmds.ResetCommandPool(a.device.handle, a.handle)
	if err != nil {
		return err
	}
	if r != vk.Success {
		return r
	}
	return nil
}

type commandList struct {
	device    *Device
	queueType hal.QueueType
	handle    vk.CommandBuffer
	allocator *commandAllocator
}

var _ hal.CommandList = (*commandList)(nil)

func (l *commandList) Destroy()                  {}
func (l *commandList) QueueType() hal.QueueType { return l.queueType }

func (l *commandList) Begin(allocator hal.CommandAllocator) error {
	a, ok := allocator.(*commandAllocator)
	if !ok {
		return hal.ErrUnsupported
	}
	l.allocator = a
	info := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        a.handle,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	cb, result, err := l.device.cmds.AllocateCommandBuffers(l.device.handle, &info)
	if err != nil {
		return err
	}
	if result != vk.Success {
		return result
	}
	l.handle = cb

	beginInfo := vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo}
	result, err = l.device.cmds.BeginCommandBuffer(cb, &beginInfo)
	if err != nil {
		return err
	}
	if result != vk.Success {
		return result
	}
	return nil
}

func (l *commandList) Close() error {
	result, err := l.device.cmds.EndCommandBuffer(l.handle)
	if err != nil {
		return err
	}
	if result != vk.Success {
		return result
	}
	return nil
}

func (l *commandList) ResourceBarrier(barriers []hal.Barrier) {
	const pipelineStageAllCommands = 1 << 16
	var imageBarriers []vk.ImageMemoryBarrier
	for _, b := range barriers {
		if b.Texture == nil || b.IsUAVBarrier {
			continue
		}
		tex, ok := b.Texture.(*texture)
		if !ok {
			continue
		}
		imageBarriers = append(imageBarriers, vk.ImageMemoryBarrier{
			SType:     vk.StructureTypeImageMemoryBarrier,
			OldLayout: resourceStateToLayout(b.Before),
			NewLayout: resourceStateToLayout(b.After),
			Image:     tex.handle,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vkAspectMask(tex.desc.Format),
				LevelCount: tex.desc.MipLevels,
				LayerCount: tex.desc.ArraySize,
			},
		})
	}
	if len(imageBarriers) == 0 {
		return
	}
	l.device.cmds.CmdPipelineBarrier(l.handle, pipelineStageAllCommands, pipelineStageAllCommands, imageBarriers)
}

// resourceStateToLayout collapses the RHI's flag-set resource state onto
// the single VkImageLayout a transition barrier needs, erring toward
// General for any ambiguous/multi-bit combination.
func resourceStateToLayout(s types.ResourceState) uint32 {
	switch {
	case s == types.ResourceStateCommon:
		return vk.ImageLayoutUndefined
	case s.Contains(types.ResourceStateRenderTarget):
		return vk.ImageLayoutColorAttachmentOptimal
	case s.Contains(types.ResourceStateCopySource):
		return vk.ImageLayoutTransferSrcOptimal
	case s.Contains(types.ResourceStateCopyDest):
		return vk.ImageLayoutTransferDstOptimal
	default:
		return vk.ImageLayoutGeneral
	}
}

func (l *commandList) CopyBufferRegion(dst hal.Buffer, dstOffset uint64, src hal.Buffer, srcOffset, size uint64) {
	s, ok1 := src.(*buffer)
	d, ok2 := dst.(*buffer)
	if !ok1 || !ok2 {
		return
	}
	l.device.cmds.CmdCopyBuffer(l.handle, s.handle, d.handle, []vk.BufferCopy{{SrcOffset: srcOffset, DstOffset: dstOffset, Size: size}})
}

// CopyTextureRegion is not implemented: the trimmed binding does not
// construct VkImageCopy metadata from TextureDesc layout information.
func (l *commandList) CopyTextureRegion(dst hal.Texture, dstSubresource uint32, src hal.Texture, srcSubresource uint32) {
}

func (l *commandList) CopyBufferToTexture(dst hal.Texture, dstSubresource uint32, src hal.Buffer, srcOffset uint64, rowPitch, rowCount uint32) {
	// VkBufferImageCopy construction needs per-format block size and the
	// destination mip's extent, neither of which this trimmed binding
	// tracks per subresource; left as a structural gap (see DESIGN.md).
}

func (l *commandList) ClearRenderTargetView(handle hal.CPUDescriptorHandle, color types.Color) {
	h, ok := handle.Heap.(*descriptorHeap)
	if !ok {
		return
	}
	h.mu.Lock()
	rec := h.view[handle.Slot]
	h.mu.Unlock()
	tex, ok := rec.texture.(*texture)
	if !ok {
		return
	}
	clear := vk.ClearColorValue{color.R, color.G, color.B, color.A}
	l.device.cmds.CmdClearColorImage(l.handle, tex.handle, vk.ImageLayoutGeneral, &clear, []vk.ImageSubresourceRange{{
		AspectMask: vkAspectMask(tex.desc.Format),
		LevelCount: tex.desc.MipLevels,
		LayerCount: tex.desc.ArraySize,
	}})
}

// ClearDepthStencilView is not implemented: vkCmdClearDepthStencilImage
// is outside the entry-point set this binding resolves.
func (l *commandList) ClearDepthStencilView(handle hal.CPUDescriptorHandle, depth float32, stencil uint8, clearDepth, clearStencil bool) {
}

func (l *commandList) SetGraphicsRootLayout(layout hal.RootLayout) {}
func (l *commandList) SetComputeRootLayout(layout hal.RootLayout)  {}

// SetGraphicsPipeline/SetComputePipeline are structural no-ops: pipeline
// creation is unsupported (see device.go), so there is never a
// VkPipeline to bind.
func (l *commandList) SetGraphicsPipeline(pipeline hal.GraphicsPipeline) {}
func (l *commandList) SetComputePipeline(pipeline hal.ComputePipeline)   {}

func (l *commandList) SetDescriptorHeaps(heaps []hal.DescriptorHeap) {}
func (l *commandList) SetGraphicsRootDescriptorTable(rootParamIndex uint32, base hal.GPUDescriptorHandle) {
}
func (l *commandList) SetComputeRootDescriptorTable(rootParamIndex uint32, base hal.GPUDescriptorHandle) {
}
func (l *commandList) SetGraphicsRootConstantBufferView(rootParamIndex uint32, gpuAddress uint64) {}
func (l *commandList) SetComputeRootConstantBufferView(rootParamIndex uint32, gpuAddress uint64)  {}

func (l *commandList) SetGraphicsRoot32BitConstants(rootParamIndex uint32, data []byte, destOffsetIn32BitValues uint32) {
}
func (l *commandList) SetComputeRoot32BitConstants(rootParamIndex uint32, data []byte, destOffsetIn32BitValues uint32) {
}

func (l *commandList) IASetVertexBuffers(startSlot uint32, bindings []hal.VertexBufferBinding) {
	if len(bindings) == 0 {
		return
	}
	buffers := make([]vk.Buffer, 0, len(bindings))
	offsets := make([]uint64, 0, len(bindings))
	for _, b := range bindings {
		nb, ok := b.Buffer.(*buffer)
		if !ok {
			return
		}
		buffers = append(buffers, nb.handle)
		offsets = append(offsets, b.Offset)
	}
	l.device.cmds.CmdBindVertexBuffers(l.handle, startSlot, buffers, offsets)
}

func (l *commandList) IASetIndexBuffer(binding hal.IndexBufferBinding) {
	b, ok := binding.Buffer.(*buffer)
	if !ok {
		return
	}
	indexType := uint32(0) // VK_INDEX_TYPE_UINT16
	if binding.Format == types.FormatR32Uint {
		indexType = 1
	}
	l.device.cmds.CmdBindIndexBuffer(l.handle, b.handle, binding.Offset, indexType)
}

// IASetPrimitiveTopology is baked into VkPipeline input-assembly state in
// a real Vulkan backend; pipelines are unsupported here, so this is a
// structural no-op.
func (l *commandList) IASetPrimitiveTopology(primitive types.PrimitiveType) {}

func (l *commandList) RSSetViewports(viewports []hal.Viewport) {
	if len(viewports) == 0 {
		return
	}
	vp := make([]vk.Viewport, len(viewports))
	for i, v := range viewports {
		vp[i] = vk.Viewport{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height, MinDepth: v.MinDepth, MaxDepth: v.MaxDepth}
	}
	l.device.cmds.CmdSetViewport(l.handle, vp)
}

func (l *commandList) RSSetScissorRects(rects []hal.ScissorRect) {
	if len(rects) == 0 {
		return
	}
	rs := make([]vk.Rect2D, len(rects))
	for i, r := range rects {
		rs[i] = vk.Rect2D{
			Offset: vk.Offset2D{X: r.Left, Y: r.Top},
			Extent: vk.Extent2D{Width: uint32(r.Right - r.Left), Height: uint32(r.Bottom - r.Top)},
		}
	}
	l.device.cmds.CmdSetScissor(l.handle, rs)
}

// OMSetRenderTargets is a no-op: no VkRenderPass/VkFramebuffer pair is
// begun, and with pipeline creation unsupported there is nothing for
// draws to render into.
func (l *commandList) OMSetRenderTargets(colors []hal.RenderTargetBinding, depthStencil *hal.RenderTargetBinding) {
}
func (l *commandList) OMSetBlendFactor(color types.Color) {}
func (l *commandList) OMSetStencilRef(ref uint8)          {}

func (l *commandList) DrawInstanced(vertexCount, instanceCount, startVertex, startInstance uint32) {
	l.device.cmds.CmdDraw(l.handle, vertexCount, instanceCount, startVertex, startInstance)
}

func (l *commandList) DrawIndexedInstanced(indexCount, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32) {
	l.device.cmds.CmdDrawIndexed(l.handle, indexCount, instanceCount, startIndex, baseVertex, startInstance)
}

func (l *commandList) Dispatch(groupsX, groupsY, groupsZ uint32) {
	l.device.cmds.CmdDispatch(l.handle, groupsX, groupsY, groupsZ)
}

// BeginQuery/EndQuery/ResolveQueryData: query pools are not part of the
// entry-point set this binding resolves (see queryHeap below).
func (l *commandList) BeginQuery(heap hal.QueryHeap, index uint32)                                   {}
func (l *commandList) EndQuery(heap hal.QueryHeap, index uint32)                                      {}
func (l *commandList) ResolveQueryData(heap hal.QueryHeap, startIndex, count uint32, dst hal.Buffer, dstOffset uint64) {
}

func (l *commandList) BeginMarker(name string) {}
func (l *commandList) EndMarker()               {}

type queryHeap struct {
	count uint32
}

var _ hal.QueryHeap = (*queryHeap)(nil)

func (q *queryHeap) Destroy()      {}
func (q *queryHeap) Count() uint32 { return q.count }
