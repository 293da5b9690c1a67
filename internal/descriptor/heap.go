package descriptor

import (
	"sync"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

const bitsPerWord = 64

// slot 0 on the shader-visible CBV/SRV/UAV heap is reserved: bindless
// tables start at slot 1 so that a null descriptor can always live at a
// fixed, well-known address for unbound bindless entries.
const reservedShaderVisibleSlot = 0

// HeapManager suballocates one native descriptor heap with a
// mutex-protected bitset and a rolling search cursor. Growth doubles
// capacity and copies every live descriptor into the new heap before the
// old one is dropped, so already-issued CPU/GPU handles referencing the
// manager (not the raw native heap) keep working across a grow.
type HeapManager struct {
	mu sync.Mutex

	device hal.Device
	kind   types.DescriptorHeapKind
	visible bool

	heap   hal.DescriptorHeap
	bits   []uint64
	cursor uint32
	used   uint32
}

// NewHeapManager creates a manager backed by a heap of initialCapacity
// slots. On the shader-visible CBV/SRV/UAV heap, slot 0 is pre-reserved.
func NewHeapManager(device hal.Device, kind types.DescriptorHeapKind, initialCapacity uint32, shaderVisible bool) (*HeapManager, error) {
	if initialCapacity == 0 {
		initialCapacity = 256
	}
	heap, err := device.CreateDescriptorHeap(kind, initialCapacity, shaderVisible)
	if err != nil {
		return nil, err
	}
	m := &HeapManager{
		device:  device,
		kind:    kind,
		visible: shaderVisible,
		heap:    heap,
		bits:    make([]uint64, (initialCapacity+bitsPerWord-1)/bitsPerWord),
	}
	if shaderVisible && kind == types.DescriptorHeapCBVSRVUAV {
		m.setBit(reservedShaderVisibleSlot)
		m.used++
		m.cursor = reservedShaderVisibleSlot + 1
	}
	return m, nil
}

func (m *HeapManager) capacity() uint32 { return m.heap.Capacity() }

func (m *HeapManager) bit(slot uint32) bool {
	return m.bits[slot/bitsPerWord]&(1<<(slot%bitsPerWord)) != 0
}

func (m *HeapManager) setBit(slot uint32) {
	m.bits[slot/bitsPerWord] |= 1 << (slot % bitsPerWord)
}

func (m *HeapManager) clearBit(slot uint32) {
	m.bits[slot/bitsPerWord] &^= 1 << (slot % bitsPerWord)
}

// Allocate reserves one free slot, growing the heap in place if it is
// full. The search starts at the rolling cursor rather than slot 0 so
// that repeated alloc/free churn does not keep reusing the same handful
// of low slots (and the view cache above this layer can rely on slots
// staying stable once assigned).
func (m *HeapManager) Allocate() (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cap := m.capacity()
	if m.used >= cap {
		if err := m.grow(); err != nil {
			return 0, err
		}
		cap = m.capacity()
	}

	for i := uint32(0); i < cap; i++ {
		slot := (m.cursor + i) % cap
		if !m.bit(slot) {
			m.setBit(slot)
			m.used++
			m.cursor = (slot + 1) % cap
			return slot, nil
		}
	}
	// Every bit test above failed despite used < cap: the accounting is
	// internally inconsistent (a bug in Free), not recoverable by growth.
	return 0, hal.ErrHeapExhausted
}

// AllocateRange reserves count consecutive free slots, growing the heap
// (possibly more than once) until a run of that length exists. Binding
// tables need this: every item in a descriptor table must land in a
// contiguous block so the backend can bind it with a single base handle.
func (m *HeapManager) AllocateRange(count uint32) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if count == 0 {
		return 0, nil
	}

	for attempt := 0; attempt < 32; attempt++ {
		if base, ok := m.findRun(count); ok {
			for i := uint32(0); i < count; i++ {
				m.setBit(base + i)
			}
			m.used += count
			m.cursor = (base + count) % m.capacity()
			return base, nil
		}
		if err := m.grow(); err != nil {
			return 0, err
		}
	}
	return 0, hal.ErrHeapExhausted
}

// findRun locates count consecutive clear bits. Callers must hold m.mu.
func (m *HeapManager) findRun(count uint32) (uint32, bool) {
	cap := m.capacity()
	if count > cap {
		return 0, false
	}
	run := uint32(0)
	start := uint32(0)
	for i := uint32(0); i < cap; i++ {
		if !m.bit(i) {
			if run == 0 {
				start = i
			}
			run++
			if run == count {
				return start, true
			}
		} else {
			run = 0
		}
	}
	return 0, false
}

// FreeRange releases count consecutive slots starting at base.
func (m *HeapManager) FreeRange(base, count uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := uint32(0); i < count; i++ {
		if m.bit(base + i) {
			m.clearBit(base + i)
			m.used--
		}
	}
}

// Free releases slot back to the pool. Freeing an already-free slot is a
// no-op so that double-release bugs upstream don't corrupt the bitset.
func (m *HeapManager) Free(slot uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.bit(slot) {
		return
	}
	m.clearBit(slot)
	m.used--
}

// CopyRangeToSelf copies count descriptors from srcStart to dstStart
// within this same heap, used when a bindless table outgrows its
// current block and moves to a freshly allocated, larger one.
func (m *HeapManager) CopyRangeToSelf(dstStart, srcStart, count uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.CopyRange(m.heap, dstStart, srcStart, count)
}

// WriteTextureView authors a texture-derived view directly at slot,
// bypassing the view cache. Used by internal/binding to populate a
// descriptor table's slots, which must hold exactly what the table
// declares regardless of whether that view is cached elsewhere.
func (m *HeapManager) WriteTextureView(slot uint32, texture hal.Texture, kind types.ViewKind, format types.Format, subresource hal.SubresourceRange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.WriteTextureView(slot, texture, kind, format, subresource)
}

// WriteBufferView is the buffer analogue of WriteTextureView.
func (m *HeapManager) WriteBufferView(slot uint32, buffer hal.Buffer, kind types.ViewKind, format types.Format, offset, size uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.WriteBufferView(slot, buffer, kind, format, offset, size)
}

// WriteSampler is the sampler analogue of WriteTextureView.
func (m *HeapManager) WriteSampler(slot uint32, desc types.SamplerDesc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.WriteSampler(slot, desc)
}

// grow doubles the heap's capacity, copying every currently-used slot's
// descriptor into the new heap at the same index. Callers must hold m.mu.
func (m *HeapManager) grow() error {
	oldCap := m.capacity()
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = 256
	}
	newHeap, err := m.device.CreateDescriptorHeap(m.kind, newCap, m.visible)
	if err != nil {
		return err
	}
	if oldCap > 0 {
		if err := m.heap.CopyRange(newHeap, 0, 0, oldCap); err != nil {
			return err
		}
	}
	newBits := make([]uint64, (newCap+bitsPerWord-1)/bitsPerWord)
	copy(newBits, m.bits)
	m.heap = newHeap
	m.bits = newBits
	return nil
}

// Heap returns the current native heap backing this manager. Callers
// must not cache the result across an Allocate call that might trigger a
// grow; re-fetch via Heap() instead.
func (m *HeapManager) Heap() hal.DescriptorHeap {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap
}

// CPUHandle returns the CPU-visible handle for slot on the current heap.
func (m *HeapManager) CPUHandle(slot uint32) hal.CPUDescriptorHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.CPUHandleAt(slot)
}

// GPUHandle returns the shader-visible handle for slot; only meaningful
// when this manager was created with shaderVisible=true.
func (m *HeapManager) GPUHandle(slot uint32) hal.GPUDescriptorHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.GPUHandleAt(slot)
}

// CopyToShaderVisible copies the descriptor at srcSlot on a CPU-only
// manager onto dst's shader-visible heap at dstSlot, the step that
// promotes a freshly-authored view onto the heap the GPU can actually
// read from (spec.md §4.1).
func (m *HeapManager) CopyToShaderVisible(dst *HeapManager, dstSlot, srcSlot uint32) error {
	m.mu.Lock()
	srcHeap := m.heap
	m.mu.Unlock()

	dst.mu.Lock()
	defer dst.mu.Unlock()
	return srcHeap.CopyRange(dst.heap, dstSlot, srcSlot, 1)
}
