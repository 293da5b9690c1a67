package command

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// SetGraphicsPipeline binds pipeline if it differs from what is already
// bound; otherwise it is a no-op.
func (r *Recorder) SetGraphicsPipeline(pipeline hal.GraphicsPipeline) error {
	if err := r.requireOpen("SetGraphicsPipeline"); err != nil {
		return err
	}
	if r.bound.graphicsPipeline == pipeline {
		return nil
	}
	r.list.SetGraphicsPipeline(pipeline)
	r.bound.graphicsPipeline = pipeline
	return nil
}

// SetComputePipeline is the compute analogue of SetGraphicsPipeline.
func (r *Recorder) SetComputePipeline(pipeline hal.ComputePipeline) error {
	if err := r.requireOpen("SetComputePipeline"); err != nil {
		return err
	}
	if r.bound.computePipeline == pipeline {
		return nil
	}
	r.list.SetComputePipeline(pipeline)
	r.bound.computePipeline = pipeline
	return nil
}

// bindTables patches the resource and sampler descriptor tables for bs,
// rebinding each table's root parameter. It is only called for slots the
// update bitmask marked dirty (spec.md §4.4 "bindings patching"); the
// per-bit dirtiness check already happened in SetGraphicsState/
// SetComputeState, so this always issues the native call for every table
// bs declares. isGraphics selects SetGraphicsRootDescriptorTable vs
// SetComputeRootDescriptorTable.
func (r *Recorder) bindTables(bs BoundSet, isGraphics bool) {
	if bs.Set == nil {
		return
	}
	if base, ok := bs.Set.ResourceTableBase(); ok && bs.HasResourceParam {
		if isGraphics {
			r.list.SetGraphicsRootDescriptorTable(bs.ResourceRootParam, base)
		} else {
			r.list.SetComputeRootDescriptorTable(bs.ResourceRootParam, base)
		}
	}
	if base, ok := bs.Set.SamplerTableBase(); ok && bs.HasSamplerParam {
		if isGraphics {
			r.list.SetGraphicsRootDescriptorTable(bs.SamplerRootParam, base)
		} else {
			r.list.SetComputeRootDescriptorTable(bs.SamplerRootParam, base)
		}
	}
}

// volatileCBNeedsRebind reports whether a volatile constant buffer's
// current GPU address differs from the address last bound at
// rootParamIndex. Both the graphics and compute paths call this exact
// function: an earlier version checked the inverse condition on the
// compute path, which left a dispatch silently reusing a stale address
// after the buffer had already been rewritten.
func volatileCBNeedsRebind(bound map[uint32]uint64, rootParamIndex uint32, currentAddr uint64) bool {
	last, ok := bound[rootParamIndex]
	return !ok || last != currentAddr
}

// BindVolatileConstantBuffer patches rootParamIndex with buf's most
// recently written GPU address, skipping the native call if that address
// has not changed since the last patch. Calling it before buf has been
// written at all within this recording is a usage bug (spec.md §7): a
// volatile CB has no persistent backing to fall back to.
func (r *Recorder) BindVolatileConstantBuffer(rootParamIndex uint32, buf *resource.Buffer, isGraphics bool) error {
	if err := r.requireOpen("BindVolatileConstantBuffer"); err != nil {
		return err
	}
	addr, ok := r.volatileWrites[buf]
	if !ok {
		return &types.RHIError{Kind: types.ErrorKindUsageBug, Message: fmt.Sprintf("command: volatile constant buffer %q bound before its first write this recording", buf.Desc().Name)}
	}
	if !volatileCBNeedsRebind(r.bound.volatileCBAddr, rootParamIndex, addr) {
		return nil
	}
	if isGraphics {
		r.list.SetGraphicsRootConstantBufferView(rootParamIndex, addr)
	} else {
		r.list.SetComputeRootConstantBufferView(rootParamIndex, addr)
	}
	r.bound.volatileCBAddr[rootParamIndex] = addr
	return nil
}

// SetPushConstants records push-constant bytes starting at
// destOffsetIn32BitValues.
func (r *Recorder) SetPushConstants(rootParamIndex uint32, data []byte, destOffsetIn32BitValues uint32, isGraphics bool) error {
	if err := r.requireOpen("SetPushConstants"); err != nil {
		return err
	}
	if isGraphics {
		r.list.SetGraphicsRoot32BitConstants(rootParamIndex, data, destOffsetIn32BitValues)
	} else {
		r.list.SetComputeRoot32BitConstants(rootParamIndex, data, destOffsetIn32BitValues)
	}
	return nil
}

// TransitionTexture requires tex's subresource range to reach desired,
// flushing whatever barrier that requires immediately. Exposed for
// callers that need to order a transition against something other than
// a draw, dispatch, copy, or clear (spec.md §4.4 lists "barriers" as one
// of the high-level intents the recorder turns into native commands,
// alongside draws/dispatches/copies).
func (r *Recorder) TransitionTexture(tex *resource.Texture, subresource hal.SubresourceRange, desired types.ResourceState) error {
	if err := r.requireOpen("TransitionTexture"); err != nil {
		return err
	}
	r.factory.Tracker().RequireTextureState(tex.Native(), subresource, tex.Desc().MipLevels, tex.Desc().SubresourceCount(), desired)
	r.FlushBarriers()
	return nil
}

// TransitionBuffer is the buffer analogue of TransitionTexture.
func (r *Recorder) TransitionBuffer(buf *resource.Buffer, desired types.ResourceState) error {
	if err := r.requireOpen("TransitionBuffer"); err != nil {
		return err
	}
	r.factory.Tracker().RequireBufferState(buf.Native(), desired)
	r.FlushBarriers()
	return nil
}

// SetVertexBuffers binds vertex buffers starting at startSlot, issuing a
// barrier for each to ResourceStateVertexBuffer first.
func (r *Recorder) SetVertexBuffers(startSlot uint32, bindings []hal.VertexBufferBinding) {
	for _, b := range bindings {
		r.factory.Tracker().RequireBufferState(b.Buffer, types.ResourceStateVertexBuffer)
	}
	r.FlushBarriers()
	r.list.IASetVertexBuffers(startSlot, bindings)
}

// SetIndexBuffer binds the index buffer, skipping the native call if it
// did not change since the last draw.
func (r *Recorder) SetIndexBuffer(binding hal.IndexBufferBinding) {
	if r.bound.indexBuffer != nil && *r.bound.indexBuffer == binding {
		return
	}
	r.factory.Tracker().RequireBufferState(binding.Buffer, types.ResourceStateIndexBuffer)
	r.FlushBarriers()
	r.list.IASetIndexBuffer(binding)
	b := binding
	r.bound.indexBuffer = &b
}

// SetRenderTargets begins rendering into fb, transitioning every color
// attachment to RenderTarget and the depth attachment to DepthWrite (or
// DepthRead if the attachment is marked read-only) before binding.
func (r *Recorder) SetRenderTargets(fb *resource.FrameBuffer) {
	if r.bound.framebuffer == fb {
		return
	}
	for _, a := range fb.Colors {
		if a.Texture == nil {
			continue
		}
		r.factory.Tracker().RequireTextureState(a.Texture.Native(), a.Subresource, a.Texture.Desc().MipLevels, a.Texture.Desc().SubresourceCount(), types.ResourceStateRenderTarget)
	}
	if fb.DepthStencil.Texture != nil {
		desired := types.ResourceStateDepthWrite
		if fb.DepthStencil.ReadOnly {
			desired = types.ResourceStateDepthRead
		}
		r.factory.Tracker().RequireTextureState(fb.DepthStencil.Texture.Native(), fb.DepthStencil.Subresource, fb.DepthStencil.Texture.Desc().MipLevels, fb.DepthStencil.Texture.Desc().SubresourceCount(), desired)
	}
	r.FlushBarriers()

	var colors []hal.RenderTargetBinding
	for _, h := range fb.ColorHandles() {
		colors = append(colors, hal.RenderTargetBinding{Handle: h})
	}
	var depth *hal.RenderTargetBinding
	if h := fb.DepthHandle(); h != nil {
		depth = &hal.RenderTargetBinding{Handle: *h}
	}
	r.list.OMSetRenderTargets(colors, depth)
	r.bound.framebuffer = fb
}

// SetViewportsAndScissors binds the rasterizer viewport/scissor state.
func (r *Recorder) SetViewportsAndScissors(viewports []hal.Viewport, scissors []hal.ScissorRect) {
	r.list.RSSetViewports(viewports)
	r.list.RSSetScissorRects(scissors)
}

// Draw issues a non-indexed draw after flushing any pending barriers.
func (r *Recorder) Draw(vertexCount, instanceCount, startVertex, startInstance uint32) error {
	if err := r.requireOpen("Draw"); err != nil {
		return err
	}
	r.FlushBarriers()
	r.list.DrawInstanced(vertexCount, instanceCount, startVertex, startInstance)
	return nil
}

// DrawIndexed issues an indexed draw.
func (r *Recorder) DrawIndexed(indexCount, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32) error {
	if err := r.requireOpen("DrawIndexed"); err != nil {
		return err
	}
	r.FlushBarriers()
	r.list.DrawIndexedInstanced(indexCount, instanceCount, startIndex, baseVertex, startInstance)
	return nil
}

// Dispatch issues a compute dispatch.
func (r *Recorder) Dispatch(groupsX, groupsY, groupsZ uint32) error {
	if err := r.requireOpen("Dispatch"); err != nil {
		return err
	}
	r.FlushBarriers()
	r.list.Dispatch(groupsX, groupsY, groupsZ)
	return nil
}

// CopyBuffer transitions src to CopySource and dst to CopyDest, then
// records the copy.
func (r *Recorder) CopyBuffer(dst *resource.Buffer, dstOffset uint64, src *resource.Buffer, srcOffset, size uint64) error {
	if err := r.requireOpen("CopyBuffer"); err != nil {
		return err
	}
	r.factory.Tracker().RequireBufferState(src.Native(), types.ResourceStateCopySource)
	r.factory.Tracker().RequireBufferState(dst.Native(), types.ResourceStateCopyDest)
	r.FlushBarriers()
	r.list.CopyBufferRegion(dst.Native(), dstOffset, src.Native(), srcOffset, size)
	return nil
}

// CopyBufferToTexture transitions dst to CopyDest and records an upload
// copy from a staging region.
func (r *Recorder) CopyBufferToTexture(dst *resource.Texture, dstSubresource uint32, region resource.StagingRegion) error {
	if err := r.requireOpen("CopyBufferToTexture"); err != nil {
		return err
	}
	r.factory.Tracker().RequireTextureState(dst.Native(), hal.SubresourceRange{BaseMipLevel: dstSubresource, MipCount: 1, ArrayCount: 1}, dst.Desc().MipLevels, dst.Desc().SubresourceCount(), types.ResourceStateCopyDest)
	r.FlushBarriers()
	r.list.CopyBufferToTexture(dst.Native(), dstSubresource, region.Buffer, region.Offset, region.RowPitch, region.RowCount)
	return nil
}

// ClearRenderTargetView transitions tex to RenderTarget and clears it.
func (r *Recorder) ClearRenderTargetView(handle hal.CPUDescriptorHandle, tex *resource.Texture, color types.Color) error {
	if err := r.requireOpen("ClearRenderTargetView"); err != nil {
		return err
	}
	whole := hal.SubresourceRange{MipCount: hal.AllSubresources, ArrayCount: hal.AllSubresources}
	r.factory.Tracker().RequireTextureState(tex.Native(), whole, tex.Desc().MipLevels, tex.Desc().SubresourceCount(), types.ResourceStateRenderTarget)
	r.FlushBarriers()
	r.list.ClearRenderTargetView(handle, color)
	return nil
}

// BeginMarker/EndMarker bracket a named debug region.
func (r *Recorder) BeginMarker(name string) { r.list.BeginMarker(name) }
func (r *Recorder) EndMarker()              { r.list.EndMarker() }

// BeginQuery/EndQuery/ResolveQueryData pass through to the native list.
func (r *Recorder) BeginQuery(heap hal.QueryHeap, index uint32) { r.list.BeginQuery(heap, index) }
func (r *Recorder) EndQuery(heap hal.QueryHeap, index uint32)   { r.list.EndQuery(heap, index) }
func (r *Recorder) ResolveQueryData(heap hal.QueryHeap, startIndex, count uint32, dst *resource.Buffer, dstOffset uint64) {
	r.list.ResolveQueryData(heap, startIndex, count, dst.Native(), dstOffset)
}
