package upload

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/hal/null"
)

func testDevice(t *testing.T) hal.Device {
	t.Helper()
	dev, err := null.New().OpenDevice()
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	return dev
}

func TestSuballocateReusesActiveChunk(t *testing.T) {
	m := NewManager(testDevice(t), 1024)

	buf1, off1, region1, err := m.Suballocate(64, 16)
	if err != nil {
		t.Fatalf("Suballocate: %v", err)
	}
	buf2, off2, region2, err := m.Suballocate(64, 16)
	if err != nil {
		t.Fatalf("Suballocate: %v", err)
	}
	if buf1 != buf2 {
		t.Fatalf("expected both suballocations to share the active chunk")
	}
	if off2 <= off1 {
		t.Fatalf("expected the second suballocation to land after the first, got off1=%d off2=%d", off1, off2)
	}
	if len(region1) != 64 || len(region2) != 64 {
		t.Fatalf("expected 64-byte regions, got %d and %d", len(region1), len(region2))
	}
}

func TestSuballocateOverflowsToNewChunk(t *testing.T) {
	m := NewManager(testDevice(t), 128)

	if _, _, _, err := m.Suballocate(100, 4); err != nil {
		t.Fatalf("Suballocate: %v", err)
	}
	buf1 := m.active[0].buffer
	if _, _, _, err := m.Suballocate(100, 4); err != nil {
		t.Fatalf("Suballocate: %v", err)
	}
	if len(m.active) != 2 {
		t.Fatalf("expected a second chunk once the first was too full, got %d active chunks", len(m.active))
	}
	if m.active[1].buffer == buf1 {
		t.Fatalf("expected the overflow allocation to land in a fresh chunk")
	}
}

func TestReclaimOnlyAfterSubmissionCompletes(t *testing.T) {
	m := NewManager(testDevice(t), 1024)
	if _, _, _, err := m.Suballocate(64, 16); err != nil {
		t.Fatalf("Suballocate: %v", err)
	}

	m.SubmitChunks(5, hal.QueueTypeCopy)
	if len(m.free) != 0 {
		t.Fatalf("chunk must not be reclaimable before its fence completes")
	}

	// A different queue type (or an earlier fence value) completing must
	// not reclaim a chunk submitted on another queue/fence.
	m.Reclaim(map[hal.QueueType]uint64{hal.QueueTypeGraphics: 100, hal.QueueTypeCopy: 4})
	if len(m.free) != 0 {
		t.Fatalf("chunk reclaimed before its own queue's fence reached its submitted value")
	}

	m.Reclaim(map[hal.QueueType]uint64{hal.QueueTypeCopy: 5})
	if len(m.free) != 1 || len(m.active) != 0 {
		t.Fatalf("expected the chunk to move to free once its fence completed, free=%d active=%d", len(m.free), len(m.active))
	}
}

func TestSuballocateDoesNotReuseASubmittedChunk(t *testing.T) {
	m := NewManager(testDevice(t), 1024)
	if _, _, _, err := m.Suballocate(64, 16); err != nil {
		t.Fatalf("Suballocate: %v", err)
	}
	firstBuf := m.active[0].buffer

	m.SubmitChunks(1, hal.QueueTypeGraphics)

	buf2, _, _, err := m.Suballocate(64, 16)
	if err != nil {
		t.Fatalf("Suballocate: %v", err)
	}
	if buf2 == firstBuf {
		t.Fatalf("a submitted chunk must not be written to again before it is reclaimed")
	}
}
