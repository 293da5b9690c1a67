package binding

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/internal/descriptor"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// BindlessSet is one growable bindless table, starting at FirstSlot on
// the CBV/SRV/UAV heap. Entries are referenced by handle, and freeing a
// handle drops it onto a tombstone free-list instead of compacting the
// table, so outstanding handles into other entries never shift
// (supplementing the distilled spec with the bindless-descriptor reuse
// original_source's descriptor-table code performs).
type BindlessSet struct {
	heap      *descriptor.HeapManager
	layout    types.BindlessLayoutDesc
	base      uint32
	capacity  uint32
	tombstones []uint32
	highWater  uint32
}

// BindlessHandle is an opaque index into a BindlessSet.
type BindlessHandle uint32

// NewBindlessSet reserves an initial block of capacity slots.
func NewBindlessSet(factory *resource.Factory, layout types.BindlessLayoutDesc, capacity uint32) (*BindlessSet, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if capacity == 0 {
		capacity = 256
	}
	heap := factory.Heap(types.DescriptorHeapCBVSRVUAV)
	base, err := heap.AllocateRange(capacity)
	if err != nil {
		return nil, fmt.Errorf("binding: allocate bindless table: %w", err)
	}
	return &BindlessSet{heap: heap, layout: layout, base: base, capacity: capacity}, nil
}

// Insert authors binding into a fresh or reclaimed handle.
func (s *BindlessSet) Insert(kind types.ViewKind, binding SetBinding) (BindlessHandle, error) {
	local, err := s.reserveLocal()
	if err != nil {
		return 0, err
	}
	slot := s.base + local
	if kind.IsTexture() {
		if err := s.heap.WriteTextureView(slot, binding.Texture.Native(), kind, binding.Format, binding.Subresource); err != nil {
			s.tombstones = append(s.tombstones, local)
			return 0, err
		}
	} else {
		if err := s.heap.WriteBufferView(slot, binding.Buffer.Native(), kind, binding.Format, binding.Offset, binding.Size); err != nil {
			s.tombstones = append(s.tombstones, local)
			return 0, err
		}
	}
	return BindlessHandle(local), nil
}

// reserveLocal pops a tombstoned slot if one exists, otherwise grows the
// high-water mark (and, once that exceeds capacity, the underlying
// heap range).
func (s *BindlessSet) reserveLocal() (uint32, error) {
	if n := len(s.tombstones); n > 0 {
		local := s.tombstones[n-1]
		s.tombstones = s.tombstones[:n-1]
		return local, nil
	}
	if s.highWater >= s.capacity {
		newCapacity := s.capacity * 2
		newBase, err := s.heap.AllocateRange(newCapacity)
		if err != nil {
			return 0, fmt.Errorf("binding: grow bindless table: %w", err)
		}
		if err := s.heap.CopyRangeToSelf(newBase, s.base, s.capacity); err != nil {
			return 0, err
		}
		s.heap.FreeRange(s.base, s.capacity)
		s.base = newBase
		s.capacity = newCapacity
	}
	local := s.highWater
	s.highWater++
	return local, nil
}

// Remove tombstones handle's slot for reuse by a future Insert. The slot
// keeps whatever view it last held until Insert overwrites it; any
// shader access via a stale handle value (one the caller no longer owns)
// is a usage bug the caller is responsible for not committing.
func (s *BindlessSet) Remove(handle BindlessHandle) {
	s.tombstones = append(s.tombstones, uint32(handle))
}

// FirstSlot returns the heap-relative slot the bindless table currently
// starts at, for computing shader-visible indices as base+handle.
func (s *BindlessSet) FirstSlot() uint32 { return s.base }

// Destroy releases the bindless table's heap range.
func (s *BindlessSet) Destroy() {
	s.heap.FreeRange(s.base, s.capacity)
}
