package descriptor

import (
	"sync"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// viewKey identifies one authored descriptor so repeated requests for
// "the SRV of mip 2 of texture X as format Y" reuse the same heap slot
// instead of re-authoring it every draw.
type viewKey struct {
	resource    any // hal.Texture or hal.Buffer, used as a map key by identity
	kind        types.ViewKind
	format      types.Format
	baseMip     uint32
	mipCount    uint32
	baseSlice   uint32
	sliceCount  uint32
	offset      uint64
	size        uint64
}

// ViewCache memoizes authored views on top of a HeapManager. CBVs are a
// first-class entry here alongside SRV/UAV/RTV/DSV (spec.md §11 resolves
// the open question of whether constant-buffer views belong in the
// general cache in favor of folding them in, rather than giving volatile
// CBs a separate code path).
type ViewCache struct {
	mu      sync.Mutex
	heap    *HeapManager
	entries map[viewKey]uint32
}

// NewViewCache wraps heap with a lookup cache.
func NewViewCache(heap *HeapManager) *ViewCache {
	return &ViewCache{heap: heap, entries: make(map[viewKey]uint32)}
}

// TextureView returns the cached slot for a texture-derived view,
// authoring it on first request.
func (c *ViewCache) TextureView(texture hal.Texture, kind types.ViewKind, format types.Format, subresource hal.SubresourceRange) (uint32, error) {
	key := viewKey{
		resource:   texture,
		kind:       kind,
		format:     format,
		baseMip:    subresource.BaseMipLevel,
		mipCount:   subresource.MipCount,
		baseSlice:  subresource.BaseArraySlice,
		sliceCount: subresource.ArrayCount,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if slot, ok := c.entries[key]; ok {
		return slot, nil
	}

	slot, err := c.heap.Allocate()
	if err != nil {
		return 0, err
	}
	if err := c.heap.heap.WriteTextureView(slot, texture, kind, format, subresource); err != nil {
		c.heap.Free(slot)
		return 0, err
	}
	c.entries[key] = slot
	return slot, nil
}

// BufferView returns the cached slot for a buffer-derived view (typed,
// structured, raw SRV/UAV, or a constant buffer view), authoring it on
// first request.
func (c *ViewCache) BufferView(buffer hal.Buffer, kind types.ViewKind, format types.Format, offset, size uint64) (uint32, error) {
	key := viewKey{resource: buffer, kind: kind, format: format, offset: offset, size: size}

	c.mu.Lock()
	defer c.mu.Unlock()
	if slot, ok := c.entries[key]; ok {
		return slot, nil
	}

	slot, err := c.heap.Allocate()
	if err != nil {
		return 0, err
	}
	if err := c.heap.heap.WriteBufferView(slot, buffer, kind, format, offset, size); err != nil {
		c.heap.Free(slot)
		return 0, err
	}
	c.entries[key] = slot
	return slot, nil
}

// Invalidate drops every cached view for resource, freeing their slots.
// Called when a resource is destroyed or, for a volatile constant
// buffer, on every write since its backing address changes each time.
func (c *ViewCache) Invalidate(resource any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, slot := range c.entries {
		if key.resource == resource {
			c.heap.Free(slot)
			delete(c.entries, key)
		}
	}
}
