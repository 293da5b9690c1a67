package binding

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/hal/null"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

func TestLowerPullsPushConstantsAndVolatileCBsOutOfTables(t *testing.T) {
	layouts := []types.BindingLayoutDesc{
		{
			Visibility: types.ShaderVisibilityAllGraphics,
			Items: []types.BindingLayoutItem{
				{Slot: 0, Kind: types.ViewKindPushConstants, Size: 16},
				{Slot: 1, Kind: types.ViewKindVolatileConstantBuffer},
				{Slot: 2, Kind: types.ViewKindTextureSRV},
			},
		},
	}

	desc := Lower(layouts, nil)
	if desc.PushConstants == nil || desc.PushConstants.Slot != 0 {
		t.Fatalf("expected push constants pulled out at slot 0, got %+v", desc.PushConstants)
	}
	if len(desc.VolatileConstants) != 1 || desc.VolatileConstants[0].Slot != 1 {
		t.Fatalf("expected one volatile constant at slot 1, got %+v", desc.VolatileConstants)
	}
	if len(desc.BoundLayouts) != 1 || len(desc.BoundLayouts[0].Items) != 1 || desc.BoundLayouts[0].Items[0].Slot != 2 {
		t.Fatalf("expected remaining table to hold only the SRV item, got %+v", desc.BoundLayouts)
	}
}

func TestLowerDropsLayoutWithNoTableItems(t *testing.T) {
	layouts := []types.BindingLayoutDesc{
		{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindVolatileConstantBuffer}}},
	}
	desc := Lower(layouts, nil)
	if len(desc.BoundLayouts) != 0 {
		t.Fatalf("expected a layout with only a volatile CB to contribute no table, got %+v", desc.BoundLayouts)
	}
}

func TestVolatileOwnersTracksSourceLayoutIndex(t *testing.T) {
	layouts := []types.BindingLayoutDesc{
		{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureSRV}}},
		{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindVolatileConstantBuffer}}},
		{Items: []types.BindingLayoutItem{
			{Slot: 0, Kind: types.ViewKindVolatileConstantBuffer},
			{Slot: 1, Kind: types.ViewKindVolatileConstantBuffer},
		}},
	}
	owners := VolatileOwners(layouts)
	want := []int{1, 2, 2}
	if len(owners) != len(want) {
		t.Fatalf("expected %d owners, got %d (%v)", len(want), len(owners), owners)
	}
	for i, w := range want {
		if owners[i] != w {
			t.Fatalf("owner %d: expected %d, got %d", i, w, owners[i])
		}
	}
}

func TestContentHashStableAndShapeSensitive(t *testing.T) {
	a := []types.BindingLayoutDesc{{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureSRV}}}}
	b := []types.BindingLayoutDesc{{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureSRV}}}}
	c := []types.BindingLayoutDesc{{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureUAV}}}}

	ha1 := ContentHash(Lower(a, nil))
	ha2 := ContentHash(Lower(b, nil))
	hc := ContentHash(Lower(c, nil))

	if ha1 != ha2 {
		t.Fatalf("expected identical logical layouts to hash the same, got %d vs %d", ha1, ha2)
	}
	if ha1 == hc {
		t.Fatalf("expected a different view kind to change the hash")
	}
}

func TestAssignRootParamsOrdersPushConstantsThenVolatilesThenTables(t *testing.T) {
	layouts := []types.BindingLayoutDesc{
		{
			Items: []types.BindingLayoutItem{
				{Slot: 0, Kind: types.ViewKindPushConstants, Size: 4},
				{Slot: 1, Kind: types.ViewKindVolatileConstantBuffer},
				{Slot: 2, Kind: types.ViewKindTextureSRV},
				{Slot: 3, Kind: types.ViewKindSampler},
			},
		},
	}
	lowered := Lower(layouts, nil)
	params := AssignRootParams(lowered)

	if !params.HasPushConstants || params.PushConstantsParam != 0 {
		t.Fatalf("expected push constants at root param 0, got %+v", params)
	}
	if len(params.VolatileParams) != 1 || params.VolatileParams[0] != 1 {
		t.Fatalf("expected one volatile CB at root param 1, got %+v", params.VolatileParams)
	}
	if len(params.BoundLayouts) != 1 {
		t.Fatalf("expected one bound-layout table assignment, got %+v", params.BoundLayouts)
	}
	bp := params.BoundLayouts[0]
	if !bp.HasResource || bp.ResourceParam != 2 {
		t.Fatalf("expected resource table at root param 2, got %+v", bp)
	}
	if !bp.HasSampler || bp.SamplerParam != 3 {
		t.Fatalf("expected sampler table at root param 3, got %+v", bp)
	}
}

func TestRootLayoutCacheReusesEquivalentShape(t *testing.T) {
	device, err := null.New().OpenDevice()
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	cache := NewRootLayoutCache(device)

	a := Lower([]types.BindingLayoutDesc{{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureSRV}}}}, nil)
	b := Lower([]types.BindingLayoutDesc{{Items: []types.BindingLayoutItem{{Slot: 0, Kind: types.ViewKindTextureSRV}}}}, nil)

	rl1, err := cache.GetOrCreate(a)
	if err != nil {
		t.Fatalf("GetOrCreate #1: %v", err)
	}
	rl2, err := cache.GetOrCreate(b)
	if err != nil {
		t.Fatalf("GetOrCreate #2: %v", err)
	}
	if rl1 != rl2 {
		t.Fatalf("expected the second equivalent layout to reuse the cached native object")
	}
}
