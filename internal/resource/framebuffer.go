package resource

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
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

func (a Attachment) isValid() bool { return a.Texture != nil }

// FrameBuffer bundles a set of color/depth-stencil attachments with the
// CPU descriptor handles internal/command binds via OMSetRenderTargets,
// plus the derived FrameBufferInfo pipelines are validated against.
type FrameBuffer struct {
	Colors       []Attachment
	DepthStencil Attachment

	colorHandles []hal.CPUDescriptorHandle
	depthHandle  *hal.CPUDescriptorHandle

	info types.FrameBufferInfo
}

// CreateFrameBuffer authors the RTV/DSV descriptors for every attachment
// and derives the FrameBufferInfo the pipeline factory keys pipeline
// compatibility on.
func (f *Factory) CreateFrameBuffer(colors []Attachment, depthStencil Attachment) (*FrameBuffer, error) {
	if len(colors) > types.MaxRenderTargets {
		return nil, fmt.Errorf("resource: framebuffer: %d color attachments exceeds MaxRenderTargets", len(colors))
	}

	fb := &FrameBuffer{Colors: colors, DepthStencil: depthStencil}

	for _, a := range colors {
		if !a.isValid() {
			fb.colorHandles = append(fb.colorHandles, hal.CPUDescriptorHandle{})
			continue
		}
		slot, err := f.TextureView(a.Texture, types.ViewKindTextureRTV, a.Format, a.Subresource)
		if err != nil {
			return nil, err
		}
		fb.colorHandles = append(fb.colorHandles, f.heaps[types.DescriptorHeapRTV].CPUHandle(slot))
	}

	if depthStencil.isValid() {
		slot, err := f.TextureView(depthStencil.Texture, types.ViewKindTextureDSV, depthStencil.Format, depthStencil.Subresource)
		if err != nil {
			return nil, err
		}
		handle := f.heaps[types.DescriptorHeapDSV].CPUHandle(slot)
		fb.depthHandle = &handle
	}

	fb.info = deriveFrameBufferInfo(colors, depthStencil)
	return fb, nil
}

// Info returns the derived width/height/sample-count/format shape.
func (fb *FrameBuffer) Info() types.FrameBufferInfo { return fb.info }

// ColorHandles returns the CPU descriptor handles for OMSetRenderTargets,
// in attachment order.
func (fb *FrameBuffer) ColorHandles() []hal.CPUDescriptorHandle { return fb.colorHandles }

// DepthHandle returns the depth/stencil CPU handle, or nil if this
// framebuffer has no depth attachment.
func (fb *FrameBuffer) DepthHandle() *hal.CPUDescriptorHandle { return fb.depthHandle }

func deriveFrameBufferInfo(colors []Attachment, depthStencil Attachment) types.FrameBufferInfo {
	var info types.FrameBufferInfo

	for _, a := range colors {
		if !a.isValid() {
			continue
		}
		format := a.Format
		if format == types.FormatUnknown {
			format = a.Texture.desc.Format
		}
		info.ColorFormats[info.ColorCount] = format
		info.ColorCount++
	}

	switch {
	case depthStencil.isValid():
		d := depthStencil.Texture.desc
		info.HasDepth = true
		info.DepthFormat = depthStencil.Format
		if info.DepthFormat == types.FormatUnknown {
			info.DepthFormat = d.Format
		}
		info.SampleCount = maxU32(d.SampleCount, 1)
		info.Width = maxU32(d.Width>>depthStencil.Subresource.BaseMipLevel, 1)
		info.Height = maxU32(d.Height>>depthStencil.Subresource.BaseMipLevel, 1)
	case len(colors) > 0 && colors[0].isValid():
		d := colors[0].Texture.desc
		info.SampleCount = maxU32(d.SampleCount, 1)
		info.Width = maxU32(d.Width>>colors[0].Subresource.BaseMipLevel, 1)
		info.Height = maxU32(d.Height>>colors[0].Subresource.BaseMipLevel, 1)
	}

	return info
}

func maxU32(v, floor uint32) uint32 {
	if v < floor {
		return floor
	}
	return v
}
