package binding

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/hal/null"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

func newTestFactory(t *testing.T) *resource.Factory {
	t.Helper()
	device, err := null.New().OpenDevice()
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	factory, err := resource.NewFactory(device)
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	return factory
}

func TestNewSetSkipsPushConstantsAndVolatileCBs(t *testing.T) {
	factory := newTestFactory(t)
	layout := types.BindingLayoutDesc{
		Items: []types.BindingLayoutItem{
			{Slot: 0, Kind: types.ViewKindPushConstants, Size: 16},
			{Slot: 1, Kind: types.ViewKindVolatileConstantBuffer},
			{Slot: 2, Kind: types.ViewKindTextureSRV},
			{Slot: 3, Kind: types.ViewKindSampler},
		},
	}

	set, err := NewSet(factory, layout)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	defer set.Destroy()

	if _, ok := set.ResourceTableBase(); !ok {
		t.Fatalf("expected a resource table for the lone SRV item")
	}
	if _, ok := set.SamplerTableBase(); !ok {
		t.Fatalf("expected a sampler table for the lone sampler item")
	}
	if err := set.Bind(0, SetBinding{}); err == nil {
		t.Fatalf("expected binding slot 0 (push constants) to fail: it owns no table slot")
	}
	if err := set.Bind(1, SetBinding{}); err == nil {
		t.Fatalf("expected binding slot 1 (volatile CB) to fail: it owns no table slot")
	}
}

func TestSetBindRewritesSlotInPlace(t *testing.T) {
	factory := newTestFactory(t)
	layout := types.BindingLayoutDesc{
		Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureSRV}},
	}
	set, err := NewSet(factory, layout)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	defer set.Destroy()

	tex, err := factory.CreateTexture(types.TextureDesc{
		Name: "t", Width: 4, Height: 4, Depth: 1, ArraySize: 1, MipLevels: 1, SampleCount: 1,
		Format: types.FormatRGBA8Unorm, Dimension: types.TextureDimension2D, Usage: types.TextureUsageShaderResource,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	baseBefore, _ := set.ResourceTableBase()
	if err := set.Bind(0, SetBinding{Texture: tex}); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	baseAfter, _ := set.ResourceTableBase()
	if baseBefore != baseAfter {
		t.Fatalf("expected Bind to rewrite the existing slot, not reallocate the table")
	}
}

func TestSetBindUnknownSlotFails(t *testing.T) {
	factory := newTestFactory(t)
	layout := types.BindingLayoutDesc{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureSRV}}}
	set, err := NewSet(factory, layout)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	defer set.Destroy()

	if err := set.Bind(5, SetBinding{}); err == nil {
		t.Fatalf("expected binding an undeclared slot to fail")
	}
}

func TestBindlessSetTombstoneReuseBeforeGrowth(t *testing.T) {
	factory := newTestFactory(t)
	layout := types.BindlessLayoutDesc{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureSRV}}}
	set, err := NewBindlessSet(factory, layout, 4)
	if err != nil {
		t.Fatalf("NewBindlessSet: %v", err)
	}
	defer set.Destroy()

	tex, err := factory.CreateTexture(types.TextureDesc{
		Name: "t", Width: 4, Height: 4, Depth: 1, ArraySize: 1, MipLevels: 1, SampleCount: 1,
		Format: types.FormatRGBA8Unorm, Dimension: types.TextureDimension2D, Usage: types.TextureUsageShaderResource,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	binding := SetBinding{Texture: tex}

	h0, err := set.Insert(types.ViewKindTextureSRV, binding)
	if err != nil {
		t.Fatalf("Insert #1: %v", err)
	}
	if _, err := set.Insert(types.ViewKindTextureSRV, binding); err != nil {
		t.Fatalf("Insert #2: %v", err)
	}

	set.Remove(h0)
	firstBase := set.FirstSlot()

	h2, err := set.Insert(types.ViewKindTextureSRV, binding)
	if err != nil {
		t.Fatalf("Insert #3: %v", err)
	}
	if h2 != h0 {
		t.Fatalf("expected the tombstoned handle %d to be reused, got %d", h0, h2)
	}
	if set.FirstSlot() != firstBase {
		t.Fatalf("reusing a tombstone must not trigger a table reallocation")
	}
}

func TestBindlessSetGrowsAndPreservesFirstSlotMovement(t *testing.T) {
	factory := newTestFactory(t)
	layout := types.BindlessLayoutDesc{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureSRV}}}
	set, err := NewBindlessSet(factory, layout, 2)
	if err != nil {
		t.Fatalf("NewBindlessSet: %v", err)
	}
	defer set.Destroy()

	tex, err := factory.CreateTexture(types.TextureDesc{
		Name: "t", Width: 4, Height: 4, Depth: 1, ArraySize: 1, MipLevels: 1, SampleCount: 1,
		Format: types.FormatRGBA8Unorm, Dimension: types.TextureDimension2D, Usage: types.TextureUsageShaderResource,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	binding := SetBinding{Texture: tex}

	firstBase := set.FirstSlot()
	for i := 0; i < 2; i++ {
		if _, err := set.Insert(types.ViewKindTextureSRV, binding); err != nil {
			t.Fatalf("Insert #%d: %v", i, err)
		}
	}
	// Capacity (2) is now exhausted; the next insert must grow the table.
	if _, err := set.Insert(types.ViewKindTextureSRV, binding); err != nil {
		t.Fatalf("Insert after exhausting capacity: %v", err)
	}
	if set.FirstSlot() == firstBase {
		t.Fatalf("expected growth to move the table to a new, larger base")
	}
}
