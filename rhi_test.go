package rhi

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/hal/null"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

func newTestDevice(t *testing.T) *Device {
	t.Helper()
	d, err := NewDevice(null.New())
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	return d
}

// Scenario A (spec.md §8): clear-and-present. Create a render-target
// texture, clear it, transition to Present, submit. The texture's tracked
// state should end at Present.
func TestScenarioClearAndPresent(t *testing.T) {
	d := newTestDevice(t)

	tex, err := d.CreateTexture(types.TextureDesc{
		Name:          "rt",
		Width:         256,
		Height:        256,
		Depth:         1,
		ArraySize:     1,
		MipLevels:     1,
		SampleCount:   1,
		Format:        types.FormatRGBA8Unorm,
		Dimension:     types.TextureDimension2D,
		Usage:         types.TextureUsageRenderTarget,
		HasClearValue: true,
		ClearValue:    types.ClearValue{Color: types.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}},
		InitialState:  types.ResourceStateCommon,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	list, err := d.CreateCommandList(hal.QueueTypeGraphics)
	if err != nil {
		t.Fatalf("CreateCommandList: %v", err)
	}

	whole := hal.SubresourceRange{MipCount: hal.AllSubresources, ArrayCount: hal.AllSubresources}
	handle, err := tex.Handle(types.ViewKindTextureRTV, types.FormatUnknown, whole)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if err := list.ClearRenderTargetView(handle, tex, types.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}); err != nil {
		t.Fatalf("ClearRenderTargetView: %v", err)
	}
	if err := list.TransitionTexture(tex, whole, types.ResourceStatePresent); err != nil {
		t.Fatalf("TransitionTexture: %v", err)
	}

	// Device.Submit closes the list itself; calling Close first would
	// double-close it.
	sub, err := d.Submit(list)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := d.WaitForSubmission(sub); err != nil {
		t.Fatalf("WaitForSubmission: %v", err)
	}

	state, ok := d.factory.Tracker().GetTextureState(tex.Native(), 0, 0, 1)
	if !ok || state != types.ResourceStatePresent {
		t.Fatalf("expected tracked state Present, got %v (ok=%v)", state, ok)
	}
}

// Scenario B (spec.md §8): upload + sample. WriteTexture against a
// shader-resource texture should round-trip through the upload ring and
// leave the texture in PixelShaderResource state afterward.
func TestScenarioUploadAndSample(t *testing.T) {
	d := newTestDevice(t)

	tex, err := d.CreateTexture(types.TextureDesc{
		Name:         "src",
		Width:        4,
		Height:       4,
		Depth:        1,
		ArraySize:    1,
		MipLevels:    1,
		SampleCount:  1,
		Format:       types.FormatR8Unorm,
		Dimension:    types.TextureDimension2D,
		Usage:        types.TextureUsageShaderResource,
		InitialState: types.ResourceStatePixelShaderResource,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	list, err := d.CreateCommandList(hal.QueueTypeGraphics)
	if err != nil {
		t.Fatalf("CreateCommandList: %v", err)
	}

	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}
	if err := list.WriteTexture(tex, 0, 0, data, 4); err != nil {
		t.Fatalf("WriteTexture: %v", err)
	}

	whole := hal.SubresourceRange{MipCount: hal.AllSubresources, ArrayCount: hal.AllSubresources}
	if err := list.TransitionTexture(tex, whole, types.ResourceStatePixelShaderResource); err != nil {
		t.Fatalf("TransitionTexture: %v", err)
	}

	sub, err := d.Submit(list)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := d.WaitForSubmission(sub); err != nil {
		t.Fatalf("WaitForSubmission: %v", err)
	}

	state, ok := d.factory.Tracker().GetTextureState(tex.Native(), 0, 0, 1)
	if !ok || state != types.ResourceStatePixelShaderResource {
		t.Fatalf("expected tracked state PixelShaderResource, got %v (ok=%v)", state, ok)
	}
}

// Scenario C (spec.md §8): volatile CB churn. Neither of two writes
// within one recording may emit a transition barrier.
func TestScenarioVolatileConstantBufferChurn(t *testing.T) {
	d := newTestDevice(t)

	cb, err := d.CreateBuffer(types.BufferDesc{
		Name:       "volatile-cb",
		ByteSize:   256,
		Usage:      types.BufferUsageConstant,
		IsVolatile: true,
		CPUAccess:  types.CPUAccessWrite,
		MaxVersions: 2,
	})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	list, err := d.CreateCommandList(hal.QueueTypeGraphics)
	if err != nil {
		t.Fatalf("CreateCommandList: %v", err)
	}

	first := make([]byte, 256)
	first[0] = 1
	if err := list.WriteBuffer(cb, first, 0); err != nil {
		t.Fatalf("WriteBuffer #1: %v", err)
	}

	second := make([]byte, 256)
	second[0] = 2
	if err := list.WriteBuffer(cb, second, 0); err != nil {
		t.Fatalf("WriteBuffer #2: %v", err)
	}

	// Neither write may queue a transition barrier for a volatile CB: it
	// has no persistent GPU backing to transition (spec.md §4.4
	// "writeBuffer ... does *not* emit a barrier").
	if n := len(d.factory.Tracker().Barriers()); n != 0 {
		t.Fatalf("expected no barriers from volatile constant buffer writes, got %d", n)
	}

	if _, err := d.Submit(list); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

// TestVolatileWriteBeforeBindFails exercises spec.md §7's UsageBug case:
// binding a volatile constant buffer that has never been written within
// the current recording must fail rather than silently bind garbage.
func TestVolatileWriteBeforeBindFails(t *testing.T) {
	d := newTestDevice(t)

	cb, err := d.CreateBuffer(types.BufferDesc{
		Name:        "volatile-cb",
		ByteSize:    256,
		Usage:       types.BufferUsageConstant,
		IsVolatile:  true,
		CPUAccess:   types.CPUAccessWrite,
		MaxVersions: 2,
	})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	list, err := d.CreateCommandList(hal.QueueTypeGraphics)
	if err != nil {
		t.Fatalf("CreateCommandList: %v", err)
	}
	defer list.Close()

	if err := list.recorder.BindVolatileConstantBuffer(0, cb.inner, true); err == nil {
		t.Fatalf("expected binding an unwritten volatile constant buffer to fail")
	}
}
