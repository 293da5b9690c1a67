package pipeline

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// disableDepthStencilWithoutFormat implements spec.md §4.6's edge case:
// a pipeline wanting depth/stencil testing against a framebuffer with no
// depth attachment gets both disabled rather than handed to the backend.
func TestDisableDepthStencilWithoutFormat(t *testing.T) {
	rs := types.RenderState{DepthStencil: types.DepthStencilState{EnableDepthTest: true, EnableStencil: true}}

	withoutDepth := disableDepthStencilWithoutFormat("test", rs, types.FrameBufferInfo{HasDepth: false})
	if withoutDepth.DepthStencil.EnableDepthTest || withoutDepth.DepthStencil.EnableStencil {
		t.Fatalf("expected depth test and stencil to be disabled when the framebuffer has no depth format")
	}

	withDepth := disableDepthStencilWithoutFormat("test", rs, types.FrameBufferInfo{HasDepth: true, DepthFormat: types.FormatD32})
	if !withDepth.DepthStencil.EnableDepthTest || !withDepth.DepthStencil.EnableStencil {
		t.Fatalf("expected depth/stencil state to pass through unchanged when the framebuffer has a depth format")
	}
}
