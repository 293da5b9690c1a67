package command

import (
	"bytes"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/binding"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// VolatileCBBinding names one volatile constant buffer root CBV parameter
// a binding set carries, bound directly rather than through a descriptor
// table (spec.md §4.5 rule 2, §4.4 "bindings patching").
type VolatileCBBinding struct {
	RootParamIndex uint32
	Buffer         *resource.Buffer
}

// BoundSet is one binding-set slot within a GraphicsState/ComputeState. The
// two root-parameter indices name where internal/binding.Lower placed this
// layout's SRV-etc and sampler tables (spec.md §4.5 rule 4: "per-layout
// root-parameter index offset"); a zero-valued Set pointer means this slot
// carries no resource or sampler table, only volatile CBs.
type BoundSet struct {
	Set               *binding.Set
	ResourceRootParam uint32
	SamplerRootParam  uint32
	HasResourceParam  bool
	HasSamplerParam   bool
	Volatile          []VolatileCBBinding
}

// GraphicsState is everything a draw call reads, bundled so the recorder
// can diff it against the previous draw's state component by component
// and only reissue the native calls for what changed (spec.md §4.4).
type GraphicsState struct {
	Pipeline hal.GraphicsPipeline

	BindingSets []BoundSet

	FrameBuffer *resource.FrameBuffer

	Viewports []hal.Viewport
	Scissors  []hal.ScissorRect

	BlendColor *types.Color
	StencilRef *uint8

	IndexBuffer   *hal.IndexBufferBinding
	VertexBuffers []hal.VertexBufferBinding

	PushConstants          []byte
	PushConstantsRootParam uint32
}

// ComputeState is the GraphicsState analogue without rasterizer concerns
// (spec.md §4.4 "Compute is analogous, minus rasterizer-state concerns").
type ComputeState struct {
	Pipeline               hal.ComputePipeline
	BindingSets            []BoundSet
	PushConstants          []byte
	PushConstantsRootParam uint32
}

// bindingSetMask computes the per-slot update bitmask between prev and
// next: bit i is set when slot i's Set pointer changed, including the
// case where next has more slots than prev ever had.
func bindingSetMask(prev, next []BoundSet) uint64 {
	var mask uint64
	for i, bs := range next {
		if i >= len(prev) || prev[i].Set != bs.Set {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

func viewportsEqual(a, b []hal.Viewport) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func scissorsEqual(a, b []hal.ScissorRect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func vertexBuffersEqual(a, b []hal.VertexBufferBinding) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func colorsEqual(a, b *types.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func u8PtrEqual(a, b *uint8) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SetGraphicsState diffs state against the previously applied graphics
// state (nil on the first call after Open/Reopen) and issues only the
// native calls the changed components require: root layout/pipeline,
// per-slot binding-set tables, framebuffer attachments, viewport+scissor,
// blend constant, stencil ref, index/vertex buffers, and push constants
// (spec.md §4.4). Volatile constant buffers are re-patched for every
// binding set whenever a write has landed since the last patch,
// independent of whether that set's table changed, since a volatile CB's
// GPU address can move without its owning set changing.
func (r *Recorder) SetGraphicsState(state GraphicsState) error {
	if err := r.requireOpen("SetGraphicsState"); err != nil {
		return err
	}
	prev := r.graphicsState

	if prev == nil || prev.Pipeline != state.Pipeline {
		r.list.SetGraphicsPipeline(state.Pipeline)
		r.list.SetGraphicsRootLayout(state.Pipeline.RootLayout())
	}

	var prevSets []BoundSet
	if prev != nil {
		prevSets = prev.BindingSets
	}
	mask := bindingSetMask(prevSets, state.BindingSets)
	for i, bs := range state.BindingSets {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		r.bindTables(bs, true)
	}

	if r.anyVolatileCBWrites {
		for _, bs := range state.BindingSets {
			for _, v := range bs.Volatile {
				if err := r.BindVolatileConstantBuffer(v.RootParamIndex, v.Buffer, true); err != nil {
					return err
				}
			}
		}
		r.anyVolatileCBWrites = false
	}

	if state.FrameBuffer != nil {
		r.SetRenderTargets(state.FrameBuffer)
	}

	if prev == nil || !viewportsEqual(prev.Viewports, state.Viewports) || !scissorsEqual(prev.Scissors, state.Scissors) {
		r.SetViewportsAndScissors(state.Viewports, state.Scissors)
	}

	if prev == nil || !colorsEqual(prev.BlendColor, state.BlendColor) {
		if state.BlendColor != nil {
			r.list.OMSetBlendFactor(*state.BlendColor)
		}
	}

	if prev == nil || !u8PtrEqual(prev.StencilRef, state.StencilRef) {
		if state.StencilRef != nil {
			r.list.OMSetStencilRef(*state.StencilRef)
		}
	}

	if state.IndexBuffer != nil {
		r.SetIndexBuffer(*state.IndexBuffer)
	}

	if prev == nil || !vertexBuffersEqual(prev.VertexBuffers, state.VertexBuffers) {
		if len(state.VertexBuffers) > 0 {
			r.SetVertexBuffers(0, state.VertexBuffers)
		}
	}

	if (prev == nil && len(state.PushConstants) > 0) || (prev != nil && !bytes.Equal(prev.PushConstants, state.PushConstants)) {
		if len(state.PushConstants) > 0 {
			if err := r.SetPushConstants(state.PushConstantsRootParam, state.PushConstants, 0, true); err != nil {
				return err
			}
		}
	}

	r.graphicsState = &state
	return nil
}

// SetComputeState is the ComputeState analogue of SetGraphicsState. Per
// spec.md §9's resolved Open Question, the compute path uses the same
// polarity as the graphics path: volatile CBs are only re-walked when
// anyVolatileCBWrites is true, not its inverse.
func (r *Recorder) SetComputeState(state ComputeState) error {
	if err := r.requireOpen("SetComputeState"); err != nil {
		return err
	}
	prev := r.computeState

	if prev == nil || prev.Pipeline != state.Pipeline {
		r.list.SetComputePipeline(state.Pipeline)
		r.list.SetComputeRootLayout(state.Pipeline.RootLayout())
	}

	var prevSets []BoundSet
	if prev != nil {
		prevSets = prev.BindingSets
	}
	mask := bindingSetMask(prevSets, state.BindingSets)
	for i, bs := range state.BindingSets {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		r.bindTables(bs, false)
	}

	if r.anyVolatileCBWrites {
		for _, bs := range state.BindingSets {
			for _, v := range bs.Volatile {
				if err := r.BindVolatileConstantBuffer(v.RootParamIndex, v.Buffer, false); err != nil {
					return err
				}
			}
		}
		r.anyVolatileCBWrites = false
	}

	if (prev == nil && len(state.PushConstants) > 0) || (prev != nil && !bytes.Equal(prev.PushConstants, state.PushConstants)) {
		if len(state.PushConstants) > 0 {
			if err := r.SetPushConstants(state.PushConstantsRootParam, state.PushConstants, 0, false); err != nil {
				return err
			}
		}
	}

	r.computeState = &state
	return nil
}
