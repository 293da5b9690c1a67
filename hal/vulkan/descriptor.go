// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// viewRecord is what descriptorHeap remembers about one written slot.
// Nothing here is consumed by a native VkDescriptorSet yet: pipeline
// creation is unsupported (see resource.go), so a bound table never
// actually reaches a shader. Keeping the bookkeeping real (rather than a
// no-op) lets internal/descriptor's allocator, view cache and
// CopyRange-based promotion exercise their full logic against this
// backend the same way they do against hal/null.
type viewRecord struct {
	valid    bool
	texture  hal.Texture
	buffer   hal.Buffer
	sampler  types.SamplerDesc
	kind     types.ViewKind
	format   types.Format
	sub      hal.SubresourceRange
	offset   uint64
	size     uint64
}

type descriptorHeap struct {
	device        *Device
	kind          types.DescriptorHeapKind
	capacity      uint32
	shaderVisible bool

	mu   sync.Mutex
	view []viewRecord
}

var _ hal.DescriptorHeap = (*descriptorHeap)(nil)

func newDescriptorHeap(device *Device, kind types.DescriptorHeapKind, capacity uint32, shaderVisible bool) *descriptorHeap {
	return &descriptorHeap{device: device, kind: kind, capacity: capacity, shaderVisible: shaderVisible, view: make([]viewRecord, capacity)}
}

func (h *descriptorHeap) Destroy()                           {}
func (h *descriptorHeap) Kind() types.DescriptorHeapKind      { return h.kind }
func (h *descriptorHeap) Capacity() uint32                    { return h.capacity }
func (h *descriptorHeap) CPUHandleAt(slot uint32) hal.CPUDescriptorHandle {
	return hal.CPUDescriptorHandle{Heap: h, Slot: slot}
}
func (h *descriptorHeap) GPUHandleAt(slot uint32) hal.GPUDescriptorHandle {
	return hal.GPUDescriptorHandle{Heap: h, Slot: slot}
}

func (h *descriptorHeap) WriteTextureView(slot uint32, texture hal.Texture, kind types.ViewKind, format types.Format, subresource hal.SubresourceRange) error {
	if slot >= h.capacity {
		return fmt.Errorf("vulkan: descriptor slot %d out of range (capacity %d)", slot, h.capacity)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.view[slot] = viewRecord{valid: true, texture: texture, kind: kind, format: format, sub: subresource}
	return nil
}

func (h *descriptorHeap) WriteBufferView(slot uint32, buffer hal.Buffer, kind types.ViewKind, format types.Format, offset, size uint64) error {
	if slot >= h.capacity {
		return fmt.Errorf("vulkan: descriptor slot %d out of range (capacity %d)", slot, h.capacity)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.view[slot] = viewRecord{valid: true, buffer: buffer, kind: kind, format: format, offset: offset, size: size}
	return nil
}

func (h *descriptorHeap) WriteSampler(slot uint32, desc types.SamplerDesc) error {
	if slot >= h.capacity {
		return fmt.Errorf("vulkan: descriptor slot %d out of range (capacity %d)", slot, h.capacity)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.view[slot] = viewRecord{valid: true, sampler: desc, kind: types.ViewKindSampler}
	return nil
}

func (h *descriptorHeap) CopyRange(dst hal.DescriptorHeap, dstStart uint32, srcStart, count uint32) error {
	target, ok := dst.(*descriptorHeap)
	if !ok {
		return fmt.Errorf("vulkan: CopyRange destination is not a vulkan descriptor heap")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if target != h {
		target.mu.Lock()
		defer target.mu.Unlock()
	}
	for i := uint32(0); i < count; i++ {
		target.view[dstStart+i] = h.view[srcStart+i]
	}
	return nil
}
