package rhi

import (
	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// Attachment pairs a texture with the subresource range and format
// override a framebuffer binds it through.
type Attachment struct {
	Texture     *Texture
	Subresource hal.SubresourceRange
	Format      types.Format
	ReadOnly    bool
}

func (a Attachment) toInternal() resource.Attachment {
	ia := resource.Attachment{Subresource: a.Subresource, Format: a.Format, ReadOnly: a.ReadOnly}
	if a.Texture != nil {
		ia.Texture = a.Texture.inner
	}
	return ia
}

// FrameBuffer bundles a set of color/depth-stencil attachments behind the
// RTV/DSV descriptors a draw call's OMSetRenderTargets binds.
type FrameBuffer struct {
	device *Device
	inner  *resource.FrameBuffer
}

// CreateFrameBuffer authors the RTV/DSV descriptors for every attachment
// and derives the FrameBufferInfo pipeline compatibility is validated
// against.
func (d *Device) CreateFrameBuffer(colors []Attachment, depthStencil Attachment) (*FrameBuffer, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	ic := make([]resource.Attachment, len(colors))
	for i, a := range colors {
		ic[i] = a.toInternal()
	}
	inner, err := d.factory.CreateFrameBuffer(ic, depthStencil.toInternal())
	if err != nil {
		return nil, err
	}
	return &FrameBuffer{device: d, inner: inner}, nil
}

// Info returns the derived width/height/sample-count/format shape.
func (fb *FrameBuffer) Info() types.FrameBufferInfo { return fb.inner.Info() }
