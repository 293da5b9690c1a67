package rhi

import (
	"github.com/CellarCordial/FTS-Render-sub002/internal/binding"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// BindlessSet is a growable, shader-indexable descriptor table: entries
// are referenced by a stable BindlessHandle rather than an author-time
// layout slot, and a removed handle's slot is recycled by a later
// Insert rather than left to grow the table forever.
type BindlessSet struct {
	device *Device
	inner  *binding.BindlessSet
}

// BindlessHandle is an opaque index into a BindlessSet.
type BindlessHandle = binding.BindlessHandle

// CreateBindlessSet reserves capacity slots (256 if zero) for layout.
func (d *Device) CreateBindlessSet(layout types.BindlessLayoutDesc, capacity uint32) (*BindlessSet, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	inner, err := binding.NewBindlessSet(d.factory, layout, capacity)
	if err != nil {
		return nil, err
	}
	return &BindlessSet{device: d, inner: inner}, nil
}

// Insert authors value into a fresh or reclaimed handle and returns it.
func (bs *BindlessSet) Insert(kind types.ViewKind, value BindValue) (BindlessHandle, error) {
	return bs.inner.Insert(kind, value.toInternal())
}

// Remove releases handle's slot for reuse by a future Insert.
func (bs *BindlessSet) Remove(handle BindlessHandle) { bs.inner.Remove(handle) }

// FirstSlot returns the heap-relative slot the table currently starts at,
// for shaders computing a bindless index as FirstSlot()+handle.
func (bs *BindlessSet) FirstSlot() uint32 { return bs.inner.FirstSlot() }

// Destroy releases the table's descriptor-heap range.
func (bs *BindlessSet) Destroy() { bs.inner.Destroy() }
