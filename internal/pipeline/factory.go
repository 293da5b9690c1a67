package pipeline

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/binding"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// Factory creates graphics and compute pipeline state objects, routing
// every root-layout request through a shared RootLayoutCache so two
// pipelines with identical binding shapes share one native root layout.
type Factory struct {
	device      hal.Device
	rootLayouts *binding.RootLayoutCache
}

// NewFactory wraps device with a fresh root-layout cache.
func NewFactory(device hal.Device) *Factory {
	return &Factory{device: device, rootLayouts: binding.NewRootLayoutCache(device)}
}

// CreateGraphicsPipeline expands desc's input layout, resolves (and
// memoizes) its root layout, and asks the backend to build the native
// pipeline state object.
func (f *Factory) CreateGraphicsPipeline(layouts []types.BindingLayoutDesc, bindless []types.BindlessLayoutDesc, desc types.GraphicsPipelineDesc) (hal.GraphicsPipeline, error) {
	if desc.InputLayout != nil {
		expanded := ExpandSemantics(desc.InputLayout.Attributes)
		desc.InputLayout = &types.InputLayoutDesc{Attributes: expanded}
	}
	if err := validateInputLayoutStrides(desc.InputLayout); err != nil {
		return nil, err
	}
	desc.RenderState = disableDepthStencilWithoutFormat(desc.Name, desc.RenderState, desc.FrameBuffer)

	rootLayout, err := f.rootLayouts.GetOrCreate(binding.Lower(layouts, bindless))
	if err != nil {
		return nil, fmt.Errorf("pipeline: resolve root layout: %w", err)
	}

	pso, err := f.device.CreateGraphicsPipeline(rootLayout, desc)
	if err != nil {
		return nil, fmt.Errorf("pipeline: create graphics pipeline %q: %w", desc.Name, err)
	}
	return pso, nil
}

// CreateComputePipeline is the compute analogue of CreateGraphicsPipeline.
func (f *Factory) CreateComputePipeline(layouts []types.BindingLayoutDesc, bindless []types.BindlessLayoutDesc, desc types.ComputePipelineDesc) (hal.ComputePipeline, error) {
	rootLayout, err := f.rootLayouts.GetOrCreate(binding.Lower(layouts, bindless))
	if err != nil {
		return nil, fmt.Errorf("pipeline: resolve root layout: %w", err)
	}
	pso, err := f.device.CreateComputePipeline(rootLayout, desc)
	if err != nil {
		return nil, fmt.Errorf("pipeline: create compute pipeline %q: %w", desc.Name, err)
	}
	return pso, nil
}

// disableDepthStencilWithoutFormat enforces spec.md §4.6's edge case:
// when the pipeline wants a depth test or stencil test but the
// framebuffer it targets carries no depth format, both are disabled
// rather than left to fail native pipeline creation, and the downgrade
// is logged so it is visible instead of silently changing draw output.
func disableDepthStencilWithoutFormat(name string, rs types.RenderState, fb types.FrameBufferInfo) types.RenderState {
	if fb.HasDepth || !(rs.DepthStencil.EnableDepthTest || rs.DepthStencil.EnableStencil) {
		return rs
	}
	hal.Logger().Warn("pipeline: disabling depth/stencil test: framebuffer has no depth format", "pipeline", name)
	rs.DepthStencil.EnableDepthTest = false
	rs.DepthStencil.EnableStencil = false
	return rs
}

// ExpandSemantics expands any attribute with ArraySize > 1 into
// ArraySize consecutive entries (Name, Name1, Name2, ...) each at
// Offset + i*ElementStride, the way a float3x4 matrix input expands to
// four consecutive TEXCOORD-style semantics in HLSL.
func ExpandSemantics(attrs []types.VertexAttributeDesc) []types.VertexAttributeDesc {
	var out []types.VertexAttributeDesc
	for _, a := range attrs {
		n := a.ArraySize
		if n <= 1 {
			out = append(out, a)
			continue
		}
		for i := uint32(0); i < n; i++ {
			elem := a
			elem.ArraySize = 1
			elem.Offset = a.Offset + i*a.ElementStride
			if i > 0 {
				elem.Name = fmt.Sprintf("%s%d", a.Name, i)
			}
			out = append(out, elem)
		}
	}
	return out
}

// validateInputLayoutStrides enforces that every attribute bound to the
// same vertex-buffer slot agrees on ElementStride, the invariant a
// mismatched manual interleave would otherwise violate silently.
func validateInputLayoutStrides(layout *types.InputLayoutDesc) error {
	if layout == nil {
		return nil
	}
	strides := map[uint32]uint32{}
	for _, a := range layout.Attributes {
		if existing, ok := strides[a.BufferSlot]; ok {
			if existing != a.ElementStride {
				return fmt.Errorf("pipeline: input layout: buffer slot %d has mismatched strides %d and %d", a.BufferSlot, existing, a.ElementStride)
			}
		} else {
			strides[a.BufferSlot] = a.ElementStride
		}
	}
	return nil
}
