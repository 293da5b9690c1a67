package rhi

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/binding"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// GraphicsPipeline is a native graphics pipeline state object plus the
// binding-layout shape it was built from, which SetGraphicsState needs to
// know which root parameter each binding-set slot patches.
type GraphicsPipeline struct {
	native hal.GraphicsPipeline

	layouts        []types.BindingLayoutDesc
	volatileOwners []int
	params         binding.RootParamLayout
}

// CreateGraphicsPipeline expands vertex-attribute semantics, resolves
// (and memoizes by content hash) the flattened root layout, and asks the
// backend to build the native pipeline state object.
func (d *Device) CreateGraphicsPipeline(layouts []types.BindingLayoutDesc, bindless []types.BindlessLayoutDesc, desc types.GraphicsPipelineDesc) (*GraphicsPipeline, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	native, err := d.pipelines.CreateGraphicsPipeline(layouts, bindless, desc)
	if err != nil {
		return nil, err
	}
	lowered := binding.Lower(layouts, bindless)
	return &GraphicsPipeline{
		native:         native,
		layouts:        layouts,
		volatileOwners: binding.VolatileOwners(layouts),
		params:         binding.AssignRootParams(lowered),
	}, nil
}

// Native exposes the backend-native pipeline handle.
func (p *GraphicsPipeline) Native() hal.GraphicsPipeline { return p.native }

func (p *GraphicsPipeline) volatileBindings(layoutIndex int, bs *BindingSet) ([]volatileCBBinding, error) {
	return resolveVolatileBindings(p.layouts, p.volatileOwners, p.params.VolatileParams, layoutIndex, bs)
}

// ComputePipeline is the compute analogue of GraphicsPipeline.
type ComputePipeline struct {
	native hal.ComputePipeline

	layouts        []types.BindingLayoutDesc
	volatileOwners []int
	params         binding.RootParamLayout
}

// CreateComputePipeline is the compute analogue of CreateGraphicsPipeline.
func (d *Device) CreateComputePipeline(layouts []types.BindingLayoutDesc, bindless []types.BindlessLayoutDesc, desc types.ComputePipelineDesc) (*ComputePipeline, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	native, err := d.pipelines.CreateComputePipeline(layouts, bindless, desc)
	if err != nil {
		return nil, err
	}
	lowered := binding.Lower(layouts, bindless)
	return &ComputePipeline{
		native:         native,
		layouts:        layouts,
		volatileOwners: binding.VolatileOwners(layouts),
		params:         binding.AssignRootParams(lowered),
	}, nil
}

// Native exposes the backend-native pipeline handle.
func (p *ComputePipeline) Native() hal.ComputePipeline { return p.native }

func (p *ComputePipeline) volatileBindings(layoutIndex int, bs *BindingSet) ([]volatileCBBinding, error) {
	return resolveVolatileBindings(p.layouts, p.volatileOwners, p.params.VolatileParams, layoutIndex, bs)
}

// volatileCBBinding is the root-level analogue of command.VolatileCBBinding,
// kept distinct so this file does not need to import internal/command.
type volatileCBBinding struct {
	rootParamIndex uint32
	slot           uint32
}

// resolveVolatileBindings matches the volatile-constant-buffer items
// declared in layouts[layoutIndex] (in declaration order) against the
// same-index subsequence of volatileOwners/volatileParams that
// internal/binding.Lower/AssignRootParams produced for the whole pipeline,
// then looks up which buffer bs has bound to each such slot.
func resolveVolatileBindings(layouts []types.BindingLayoutDesc, volatileOwners []int, volatileParams []uint32, layoutIndex int, bs *BindingSet) ([]volatileCBBinding, error) {
	if layoutIndex >= len(layouts) {
		return nil, nil
	}
	var slots []uint32
	for _, it := range layouts[layoutIndex].Items {
		if it.Kind == types.ViewKindVolatileConstantBuffer {
			slots = append(slots, it.Slot)
		}
	}
	if len(slots) == 0 {
		return nil, nil
	}

	var params []uint32
	for pos, owner := range volatileOwners {
		if owner == layoutIndex {
			params = append(params, volatileParams[pos])
		}
	}
	if len(params) != len(slots) {
		return nil, fmt.Errorf("rhi: internal volatile-CB accounting mismatch for binding set %d", layoutIndex)
	}

	out := make([]volatileCBBinding, len(slots))
	for i, slot := range slots {
		if bs != nil {
			if _, ok := bs.volatile[slot]; !ok {
				return nil, &types.RHIError{Kind: types.ErrorKindUsageBug, Message: fmt.Sprintf("rhi: binding set slot %d is declared as a volatile constant buffer but has no buffer bound", slot)}
			}
		}
		out[i] = volatileCBBinding{rootParamIndex: params[i], slot: slot}
	}
	return out, nil
}
