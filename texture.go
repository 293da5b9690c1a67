package rhi

import (
	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// Texture is a GPU image resource.
type Texture struct {
	device *Device
	inner  *resource.Texture
}

// CreateTexture creates a texture and registers its initial state with
// the resource tracker.
func (d *Device) CreateTexture(desc types.TextureDesc) (*Texture, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	inner, err := d.factory.CreateTexture(desc)
	if err != nil {
		return nil, err
	}
	return &Texture{device: d, inner: inner}, nil
}

// Desc returns the descriptor the texture was created from.
func (t *Texture) Desc() types.TextureDesc { return t.inner.Desc() }

// Native exposes the backend-native handle for backends or command lists
// that need it directly.
func (t *Texture) Native() hal.Texture { return t.inner.Native() }

// View returns the shader-visible descriptor-heap slot for a
// texture-derived view, authoring and caching it on first request.
func (t *Texture) View(kind types.ViewKind, format types.Format, subresource hal.SubresourceRange) (uint32, error) {
	return t.device.factory.TextureView(t.inner, kind, format, subresource)
}

// Handle is the CPU-descriptor-handle analogue of View, used for RTV/DSV
// attachments and clear calls that bind by handle rather than table slot.
func (t *Texture) Handle(kind types.ViewKind, format types.Format, subresource hal.SubresourceRange) (hal.CPUDescriptorHandle, error) {
	return t.device.factory.TextureViewHandle(t.inner, kind, format, subresource)
}

// Destroy forgets the texture's tracked state and cached views, then
// releases the native object.
func (t *Texture) Destroy() {
	t.device.factory.DestroyTexture(t.inner)
}
