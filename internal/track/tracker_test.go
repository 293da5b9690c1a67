package track

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

func TestRequireBufferStateNoopWhenAlreadyDesired(t *testing.T) {
	tr := New()
	var buf hal.Buffer = &struct{ hal.Buffer }{}
	tr.Adopt(buf, types.ResourceStateCommon)

	tr.RequireBufferState(buf, types.ResourceStateCopyDest)
	if n := len(tr.Barriers()); n != 1 {
		t.Fatalf("expected 1 barrier after first transition, got %d", n)
	}
	tr.Clear()

	tr.RequireBufferState(buf, types.ResourceStateCopyDest)
	if n := len(tr.Barriers()); n != 0 {
		t.Fatalf("expected no barrier when state is already desired, got %d", n)
	}
}

func TestRequireTextureStateWholeResourceMinimalBarriers(t *testing.T) {
	tr := New()
	tex := &fakeTextureHandle{}
	tr.AdoptTexture(tex, types.ResourceStateCommon)

	whole := hal.SubresourceRange{MipCount: hal.AllSubresources, ArrayCount: hal.AllSubresources}
	tr.RequireTextureState(tex, whole, 2, 6, types.ResourceStateRenderTarget)
	barriers := tr.Barriers()
	if len(barriers) != 1 {
		t.Fatalf("expected exactly one barrier transitioning the whole texture, got %d", len(barriers))
	}
	if barriers[0].Subresource != hal.AllSubresources {
		t.Fatalf("expected a whole-resource barrier, got subresource %d", barriers[0].Subresource)
	}
	tr.Clear()

	tr.RequireTextureState(tex, whole, 2, 6, types.ResourceStateRenderTarget)
	if n := len(tr.Barriers()); n != 0 {
		t.Fatalf("expected no barrier for a repeated whole-resource request, got %d", n)
	}
}

func TestRequireTextureStatePartialSubresourceDoesNotDisturbRest(t *testing.T) {
	tr := New()
	tex := &fakeTextureHandle{}
	tr.AdoptTexture(tex, types.ResourceStateCommon)

	// 2 mips x 3 slices = 6 subresources; transition only mip 0 of slice 1.
	one := hal.SubresourceRange{BaseMipLevel: 0, MipCount: 1, BaseArraySlice: 1, ArrayCount: 1}
	tr.RequireTextureState(tex, one, 2, 6, types.ResourceStatePixelShaderResource)
	barriers := tr.Barriers()
	if len(barriers) != 1 {
		t.Fatalf("expected exactly one barrier for the touched subresource, got %d", len(barriers))
	}
	if barriers[0].Subresource == hal.AllSubresources {
		t.Fatalf("partial request must not emit a whole-resource barrier")
	}
	tr.Clear()

	// Every other subresource should still read back as Common.
	for slice := uint32(0); slice < 3; slice++ {
		for mip := uint32(0); mip < 2; mip++ {
			if slice == 1 && mip == 0 {
				continue
			}
			state, ok := tr.GetTextureState(tex, mip, slice, 2)
			if !ok || state != types.ResourceStateCommon {
				t.Fatalf("subresource (mip=%d,slice=%d) expected Common, got %v (ok=%v)", mip, slice, state, ok)
			}
		}
	}
	state, ok := tr.GetTextureState(tex, 0, 1, 2)
	if !ok || state != types.ResourceStatePixelShaderResource {
		t.Fatalf("touched subresource expected PixelShaderResource, got %v (ok=%v)", state, ok)
	}
}

// Once a texture has been expanded to per-subresource granularity, a
// later whole-resource request (MipCount/ArrayCount == AllSubresources)
// must still reach every subresource instead of overflowing
// mipCount*sliceCount (^uint32(0) * ^uint32(0)) down to a single slot.
func TestRequireTextureStateWholeResourceAfterExpansionTouchesEverySubresource(t *testing.T) {
	tr := New()
	tex := &fakeTextureHandle{}
	tr.AdoptTexture(tex, types.ResourceStateCommon)

	one := hal.SubresourceRange{BaseMipLevel: 0, MipCount: 1, BaseArraySlice: 1, ArrayCount: 1}
	tr.RequireTextureState(tex, one, 2, 6, types.ResourceStatePixelShaderResource)
	tr.Clear()

	whole := hal.SubresourceRange{MipCount: hal.AllSubresources, ArrayCount: hal.AllSubresources}
	tr.RequireTextureState(tex, whole, 2, 6, types.ResourceStateRenderTarget)
	tr.Clear()

	for slice := uint32(0); slice < 3; slice++ {
		for mip := uint32(0); mip < 2; mip++ {
			state, ok := tr.GetTextureState(tex, mip, slice, 2)
			if !ok || state != types.ResourceStateRenderTarget {
				t.Fatalf("subresource (mip=%d,slice=%d) expected RenderTarget, got %v (ok=%v)", mip, slice, state, ok)
			}
		}
	}
}

func TestUAVBarrierGuardPlacesOnceUntilReset(t *testing.T) {
	tr := New()
	var buf hal.Buffer = &struct{ hal.Buffer }{}
	tr.Adopt(buf, types.ResourceStateUnorderedAccess)

	tr.RequireBufferState(buf, types.ResourceStateUnorderedAccess)
	if n := len(tr.Barriers()); n != 1 {
		t.Fatalf("expected first repeated UAV request to place a UAV barrier, got %d", n)
	}
	tr.Clear()

	tr.RequireBufferState(buf, types.ResourceStateUnorderedAccess)
	if n := len(tr.Barriers()); n != 0 {
		t.Fatalf("expected the guard to suppress a second UAV barrier, got %d", n)
	}

	tr.SetEnableUAVBarriersBuffer(buf, true)
	tr.RequireBufferState(buf, types.ResourceStateUnorderedAccess)
	if n := len(tr.Barriers()); n != 1 {
		t.Fatalf("expected SetEnableUAVBarriersBuffer to reopen the guard, got %d barriers", n)
	}
}

// fakeTextureHandle is a distinct comparable value satisfying hal.Texture
// so the tracker's map keys behave like real native handles would.
type fakeTextureHandle struct{ hal.Texture }
