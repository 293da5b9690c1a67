package rhi

import (
	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// Buffer is a GPU linear-memory resource.
type Buffer struct {
	device *Device
	inner  *resource.Buffer
}

// CreateBuffer creates a buffer, validating isVolatile/cpuAccess and the
// constant-buffer size-rounding invariant before asking the backend to
// allocate it.
func (d *Device) CreateBuffer(desc types.BufferDesc) (*Buffer, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	inner, err := d.factory.CreateBuffer(desc)
	if err != nil {
		return nil, err
	}
	return &Buffer{device: d, inner: inner}, nil
}

// Desc returns the descriptor the buffer was created from.
func (b *Buffer) Desc() types.BufferDesc { return b.inner.Desc() }

// Native exposes the backend-native handle.
func (b *Buffer) Native() hal.Buffer { return b.inner.Native() }

// View returns the shader-visible descriptor-heap slot for a
// buffer-derived view (typed/structured/raw SRV/UAV or a static constant
// buffer view), authoring and caching it on first request. Volatile
// constant buffers never go through this path: they bind as a root CBV
// instead (see BindingSet.BindVolatileConstantBuffer).
func (b *Buffer) View(kind types.ViewKind, format types.Format, offset, size uint64) (uint32, error) {
	return b.device.factory.BufferView(b.inner, kind, format, offset, size)
}

// Destroy forgets the buffer's tracked state and cached views, then
// releases the native object.
func (b *Buffer) Destroy() {
	b.device.factory.DestroyBuffer(b.inner)
}
