package descriptor

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/hal/null"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

func testDevice(t *testing.T) hal.Device {
	t.Helper()
	dev, err := null.New().OpenDevice()
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	return dev
}

func TestHeapManagerAllocateFreeRoundTrip(t *testing.T) {
	m, err := NewHeapManager(testDevice(t), types.DescriptorHeapCBVSRVUAV, 8, true)
	if err != nil {
		t.Fatalf("NewHeapManager: %v", err)
	}

	var slots []uint32
	for i := 0; i < 7; i++ { // slot 0 is pre-reserved on this heap kind
		slot, err := m.Allocate()
		if err != nil {
			t.Fatalf("Allocate %d: %v", i, err)
		}
		slots = append(slots, slot)
	}

	seen := make(map[uint32]bool)
	for _, s := range slots {
		if seen[s] {
			t.Fatalf("slot %d allocated twice", s)
		}
		seen[s] = true
	}

	m.Free(slots[0])
	reused, err := m.Allocate()
	if err != nil {
		t.Fatalf("Allocate after free: %v", err)
	}
	if reused != slots[0] {
		t.Fatalf("expected freed slot %d to be reused, got %d", slots[0], reused)
	}
}

func TestHeapManagerGrowsOnExhaustion(t *testing.T) {
	m, err := NewHeapManager(testDevice(t), types.DescriptorHeapRTV, 2, false)
	if err != nil {
		t.Fatalf("NewHeapManager: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := m.Allocate(); err != nil {
			t.Fatalf("Allocate %d: %v", i, err)
		}
	}
	// Heap is now full; the next Allocate must grow rather than error.
	slot, err := m.Allocate()
	if err != nil {
		t.Fatalf("Allocate after exhaustion should grow, got error: %v", err)
	}
	if slot < 2 {
		t.Fatalf("expected a freshly grown slot >= 2, got %d", slot)
	}
}

func TestHeapManagerAllocateRangeIsContiguous(t *testing.T) {
	m, err := NewHeapManager(testDevice(t), types.DescriptorHeapCBVSRVUAV, 16, true)
	if err != nil {
		t.Fatalf("NewHeapManager: %v", err)
	}

	base, err := m.AllocateRange(4)
	if err != nil {
		t.Fatalf("AllocateRange: %v", err)
	}
	for i := uint32(0); i < 4; i++ {
		if !m.bit(base + i) {
			t.Fatalf("expected slot %d to be marked used", base+i)
		}
	}

	m.FreeRange(base, 4)
	base2, err := m.AllocateRange(4)
	if err != nil {
		t.Fatalf("AllocateRange after free: %v", err)
	}
	if base2 != base {
		t.Fatalf("expected the freed range %d to be reused, got %d", base, base2)
	}
}
