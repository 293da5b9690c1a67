package rhi

import (
	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// Heap is a native memory heap that placed (suballocated) resources are
// created against, used for aliasing transient GPU allocations across a
// frame graph.
type Heap struct {
	device *Device
	inner  *resource.Heap
}

// CreateHeap creates a memory heap.
func (d *Device) CreateHeap(desc types.HeapDesc) (*Heap, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	inner, err := d.factory.CreateHeap(desc)
	if err != nil {
		return nil, err
	}
	return &Heap{device: d, inner: inner}, nil
}

// Desc returns the descriptor the heap was created from.
func (h *Heap) Desc() types.HeapDesc { return h.inner.Desc() }

// Native exposes the backend-native handle.
func (h *Heap) Native() hal.Heap { return h.inner.Native() }
