package rhi

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/binding"
	"github.com/CellarCordial/FTS-Render-sub002/internal/command"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// CommandList is a single recording of GPU work against one queue,
// acquired from Device.CreateCommandList and submitted exactly once via
// Device.Submit.
type CommandList struct {
	device    *Device
	queueType hal.QueueType
	recorder  *command.Recorder
}

// QueueType returns the queue this list records for.
func (cl *CommandList) QueueType() hal.QueueType { return cl.queueType }

// Close ends recording; the list becomes eligible for Device.Submit.
func (cl *CommandList) Close() error { return cl.recorder.Close() }

// FlushBarriers forces any pending resource-state barriers to be recorded
// immediately rather than batched until the next draw/dispatch/copy.
func (cl *CommandList) FlushBarriers() { cl.recorder.FlushBarriers() }

// Draw issues a non-indexed draw.
func (cl *CommandList) Draw(vertexCount, instanceCount, startVertex, startInstance uint32) error {
	return cl.recorder.Draw(vertexCount, instanceCount, startVertex, startInstance)
}

// DrawIndexed issues an indexed draw.
func (cl *CommandList) DrawIndexed(indexCount, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32) error {
	return cl.recorder.DrawIndexed(indexCount, instanceCount, startIndex, baseVertex, startInstance)
}

// Dispatch issues a compute dispatch.
func (cl *CommandList) Dispatch(groupsX, groupsY, groupsZ uint32) error {
	return cl.recorder.Dispatch(groupsX, groupsY, groupsZ)
}

// CopyBuffer records a GPU-GPU buffer copy.
func (cl *CommandList) CopyBuffer(dst *Buffer, dstOffset uint64, src *Buffer, srcOffset, size uint64) error {
	return cl.recorder.CopyBuffer(dst.inner, dstOffset, src.inner, srcOffset, size)
}

// TransitionTexture requires tex's subresource range to reach desired
// immediately, independent of any draw/dispatch/copy/clear that would
// otherwise imply the transition (e.g. a final transition to Present
// before a swap-chain hand-off, spec.md Scenario A).
func (cl *CommandList) TransitionTexture(tex *Texture, subresource hal.SubresourceRange, desired types.ResourceState) error {
	return cl.recorder.TransitionTexture(tex.inner, subresource, desired)
}

// TransitionBuffer is the buffer analogue of TransitionTexture.
func (cl *CommandList) TransitionBuffer(buf *Buffer, desired types.ResourceState) error {
	return cl.recorder.TransitionBuffer(buf.inner, desired)
}

// ClearRenderTargetView clears tex through handle to color.
func (cl *CommandList) ClearRenderTargetView(handle hal.CPUDescriptorHandle, tex *Texture, color types.Color) error {
	return cl.recorder.ClearRenderTargetView(handle, tex.inner, color)
}

// WriteBuffer stages data through the upload ring and either copies it
// into buf (a persistently backed buffer) or records buf's fresh GPU
// address for the next root-CBV patch (a volatile constant buffer).
func (cl *CommandList) WriteBuffer(buf *Buffer, data []byte, offset uint64) error {
	return cl.recorder.WriteBuffer(buf.inner, data, offset)
}

// WriteTexture stages data through the upload ring and copies it into one
// subresource of dst.
func (cl *CommandList) WriteTexture(dst *Texture, mipLevel, arraySlice uint32, data []byte, srcRowPitch uint32) error {
	return cl.recorder.WriteTexture(dst.inner, mipLevel, arraySlice, data, srcRowPitch)
}

// BeginMarker/EndMarker bracket a named debug region visible in GPU
// capture tools.
func (cl *CommandList) BeginMarker(name string) { cl.recorder.BeginMarker(name) }
func (cl *CommandList) EndMarker()              { cl.recorder.EndMarker() }

// BeginQuery/EndQuery/ResolveQueryData record timestamp/occlusion queries.
func (cl *CommandList) BeginQuery(heap hal.QueryHeap, index uint32) { cl.recorder.BeginQuery(heap, index) }
func (cl *CommandList) EndQuery(heap hal.QueryHeap, index uint32)   { cl.recorder.EndQuery(heap, index) }
func (cl *CommandList) ResolveQueryData(heap hal.QueryHeap, startIndex, count uint32, dst *Buffer, dstOffset uint64) {
	cl.recorder.ResolveQueryData(heap, startIndex, count, dst.inner, dstOffset)
}

// buildBoundSets assembles the internal/command.BoundSet slice a pipeline's
// root-parameter assignment and a caller's ordered binding sets produce
// together: table base plus root-parameter indices from params, and the
// volatile constant buffers currently bound on each set resolved against
// the pipeline's declared layouts.
func buildBoundSets(bindingSets []*BindingSet, layoutParams []binding.BoundLayoutParams, volatileFn func(int, *BindingSet) ([]volatileCBBinding, error)) ([]command.BoundSet, error) {
	out := make([]command.BoundSet, len(bindingSets))
	for i, bs := range bindingSets {
		var lp binding.BoundLayoutParams
		if i < len(layoutParams) {
			lp = layoutParams[i]
		}
		var table *binding.Set
		if bs != nil {
			table = bs.table
		}
		vcbs, err := volatileFn(i, bs)
		if err != nil {
			return nil, err
		}
		var vols []command.VolatileCBBinding
		if len(vcbs) > 0 && bs == nil {
			return nil, fmt.Errorf("rhi: binding set %d declares a volatile constant buffer but no set was provided", i)
		}
		for _, v := range vcbs {
			vols = append(vols, command.VolatileCBBinding{RootParamIndex: v.rootParamIndex, Buffer: bs.volatile[v.slot]})
		}
		out[i] = command.BoundSet{
			Set:               table,
			ResourceRootParam: lp.ResourceParam,
			SamplerRootParam:  lp.SamplerParam,
			HasResourceParam:  lp.HasResource,
			HasSamplerParam:   lp.HasSampler,
			Volatile:          vols,
		}
	}
	return out, nil
}

// GraphicsStateDesc is everything one draw call needs, in the root
// package's caller-facing shape: binding sets in the same order as the
// layouts pipeline was created with.
type GraphicsStateDesc struct {
	Pipeline    *GraphicsPipeline
	BindingSets []*BindingSet

	FrameBuffer *FrameBuffer

	Viewports []hal.Viewport
	Scissors  []hal.ScissorRect

	BlendColor *types.Color
	StencilRef *uint8

	IndexBuffer   *hal.IndexBufferBinding
	VertexBuffers []hal.VertexBufferBinding

	PushConstants []byte
}

// SetGraphicsState resolves desc against its pipeline's root-parameter
// layout and applies it, reissuing native calls only for the components
// that changed since the list's previous SetGraphicsState.
func (cl *CommandList) SetGraphicsState(desc GraphicsStateDesc) error {
	boundSets, err := buildBoundSets(desc.BindingSets, desc.Pipeline.params.BoundLayouts, desc.Pipeline.volatileBindings)
	if err != nil {
		return err
	}

	var fb *resource.FrameBuffer
	if desc.FrameBuffer != nil {
		fb = desc.FrameBuffer.inner
	}

	state := command.GraphicsState{
		Pipeline:      desc.Pipeline.native,
		BindingSets:   boundSets,
		FrameBuffer:   fb,
		Viewports:     desc.Viewports,
		Scissors:      desc.Scissors,
		BlendColor:    desc.BlendColor,
		StencilRef:    desc.StencilRef,
		IndexBuffer:   desc.IndexBuffer,
		VertexBuffers: desc.VertexBuffers,
		PushConstants: desc.PushConstants,
	}
	if desc.Pipeline.params.HasPushConstants {
		state.PushConstantsRootParam = desc.Pipeline.params.PushConstantsParam
	}
	return cl.recorder.SetGraphicsState(state)
}

// ComputeStateDesc is the ComputeState analogue of GraphicsStateDesc.
type ComputeStateDesc struct {
	Pipeline      *ComputePipeline
	BindingSets   []*BindingSet
	PushConstants []byte
}

// SetComputeState is the ComputeStateDesc analogue of SetGraphicsState.
func (cl *CommandList) SetComputeState(desc ComputeStateDesc) error {
	boundSets, err := buildBoundSets(desc.BindingSets, desc.Pipeline.params.BoundLayouts, desc.Pipeline.volatileBindings)
	if err != nil {
		return err
	}

	state := command.ComputeState{
		Pipeline:      desc.Pipeline.native,
		BindingSets:   boundSets,
		PushConstants: desc.PushConstants,
	}
	if desc.Pipeline.params.HasPushConstants {
		state.PushConstantsRootParam = desc.Pipeline.params.PushConstantsParam
	}
	return cl.recorder.SetComputeState(state)
}
