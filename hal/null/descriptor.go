package null

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// viewRecord is what a descriptor slot actually holds in the null
// backend: enough to satisfy a later ClearRenderTargetView or
// CopyTextureRegion call without a real driver underneath.
type viewRecord struct {
	kind       types.ViewKind
	texture    *Texture
	buffer     *Buffer
	sampler    types.SamplerDesc
	format     types.Format
	subresource hal.SubresourceRange
	offset, size uint64
	valid      bool
}

type DescriptorHeap struct {
	kind          types.DescriptorHeapKind
	shaderVisible bool
	slots         []viewRecord
}

func newDescriptorHeap(kind types.DescriptorHeapKind, capacity uint32, shaderVisible bool) *DescriptorHeap {
	return &DescriptorHeap{kind: kind, shaderVisible: shaderVisible, slots: make([]viewRecord, capacity)}
}

func (h *DescriptorHeap) Destroy() {}

func (h *DescriptorHeap) Kind() types.DescriptorHeapKind { return h.kind }
func (h *DescriptorHeap) Capacity() uint32               { return uint32(len(h.slots)) }

func (h *DescriptorHeap) CPUHandleAt(slot uint32) hal.CPUDescriptorHandle {
	return hal.CPUDescriptorHandle{Heap: h, Slot: slot}
}

func (h *DescriptorHeap) GPUHandleAt(slot uint32) hal.GPUDescriptorHandle {
	return hal.GPUDescriptorHandle{Heap: h, Slot: slot}
}

func (h *DescriptorHeap) WriteTextureView(slot uint32, texture hal.Texture, kind types.ViewKind, format types.Format, subresource hal.SubresourceRange) error {
	t, ok := texture.(*Texture)
	if !ok {
		return fmt.Errorf("null: WriteTextureView given foreign texture handle")
	}
	if slot >= uint32(len(h.slots)) {
		return fmt.Errorf("null: descriptor slot %d out of range (capacity %d)", slot, len(h.slots))
	}
	h.slots[slot] = viewRecord{kind: kind, texture: t, format: format, subresource: subresource, valid: true}
	return nil
}

func (h *DescriptorHeap) WriteBufferView(slot uint32, buffer hal.Buffer, kind types.ViewKind, format types.Format, offset, size uint64) error {
	b, ok := buffer.(*Buffer)
	if !ok {
		return fmt.Errorf("null: WriteBufferView given foreign buffer handle")
	}
	if slot >= uint32(len(h.slots)) {
		return fmt.Errorf("null: descriptor slot %d out of range (capacity %d)", slot, len(h.slots))
	}
	h.slots[slot] = viewRecord{kind: kind, buffer: b, format: format, offset: offset, size: size, valid: true}
	return nil
}

func (h *DescriptorHeap) WriteSampler(slot uint32, desc types.SamplerDesc) error {
	if slot >= uint32(len(h.slots)) {
		return fmt.Errorf("null: descriptor slot %d out of range (capacity %d)", slot, len(h.slots))
	}
	h.slots[slot] = viewRecord{kind: types.ViewKindSampler, sampler: desc, valid: true}
	return nil
}

func (h *DescriptorHeap) CopyRange(dst hal.DescriptorHeap, dstStart uint32, srcStart, count uint32) error {
	d, ok := dst.(*DescriptorHeap)
	if !ok {
		return fmt.Errorf("null: CopyRange given foreign destination heap")
	}
	if srcStart+count > uint32(len(h.slots)) || dstStart+count > uint32(len(d.slots)) {
		return fmt.Errorf("null: CopyRange out of range")
	}
	copy(d.slots[dstStart:dstStart+count], h.slots[srcStart:srcStart+count])
	return nil
}
