package command

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/hal/null"
	"github.com/CellarCordial/FTS-Render-sub002/internal/binding"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/internal/upload"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

func TestBindingSetMaskFlagsOnlyChangedSlots(t *testing.T) {
	a := &binding.Set{}
	b := &binding.Set{}

	prev := []BoundSet{{Set: a}, {Set: b}}
	next := []BoundSet{{Set: a}, {Set: a}} // slot 1 changed from b to a

	mask := bindingSetMask(prev, next)
	if mask != 0b10 {
		t.Fatalf("expected only bit 1 set for the changed slot, got %b", mask)
	}
}

func TestBindingSetMaskFlagsNewSlotsBeyondPrevLength(t *testing.T) {
	a := &binding.Set{}
	prev := []BoundSet{{Set: a}}
	next := []BoundSet{{Set: a}, {Set: a}}

	mask := bindingSetMask(prev, next)
	if mask != 0b10 {
		t.Fatalf("expected bit 1 set for the newly appended slot, got %b", mask)
	}
}

func TestVolatileCBNeedsRebindFirstBindAlwaysTrue(t *testing.T) {
	bound := map[uint32]uint64{}
	if !volatileCBNeedsRebind(bound, 0, 0x1000) {
		t.Fatalf("expected an unbound root parameter to need a rebind")
	}
}

func TestVolatileCBNeedsRebindOnlyWhenAddressChanges(t *testing.T) {
	bound := map[uint32]uint64{0: 0x1000}
	if volatileCBNeedsRebind(bound, 0, 0x1000) {
		t.Fatalf("expected an unchanged address not to need a rebind")
	}
	if !volatileCBNeedsRebind(bound, 0, 0x2000) {
		t.Fatalf("expected a changed address to need a rebind")
	}
}

func newStateTestRecorder(t *testing.T) (*Recorder, *resource.Factory, hal.Device) {
	t.Helper()
	device, err := null.New().OpenDevice()
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	factory, err := resource.NewFactory(device)
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	uploads := upload.NewManager(device, upload.DefaultChunkSize)
	r, err := New(device, factory, hal.QueueTypeGraphics, uploads)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r, factory, device
}

func testComputePipeline(t *testing.T, device hal.Device) hal.ComputePipeline {
	t.Helper()
	rootLayout, err := device.CreateRootLayout(binding.Lower(nil, nil))
	if err != nil {
		t.Fatalf("CreateRootLayout: %v", err)
	}
	pso, err := device.CreateComputePipeline(rootLayout, types.ComputePipelineDesc{Name: "cs"})
	if err != nil {
		t.Fatalf("CreateComputePipeline: %v", err)
	}
	return pso
}

// TestSetComputeStateRepatchesVolatileCBOnlyAfterAWrite exercises spec.md
// §9's resolved Open Question: the compute path mirrors the graphics
// path's polarity, re-walking bound volatile constant buffers only when a
// write landed since the last patch, not its inverse.
func TestSetComputeStateRepatchesVolatileCBOnlyAfterAWrite(t *testing.T) {
	r, factory, _ := newStateTestRecorder(t)

	buf, err := factory.CreateBuffer(bufferDescForTest())
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if err := r.WriteBuffer(buf, []byte{1, 2, 3, 4}, 0); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	if !r.anyVolatileCBWrites {
		t.Fatalf("expected anyVolatileCBWrites after WriteBuffer")
	}

	pso := testComputePipeline(t, r.device)
	state := ComputeState{
		Pipeline:    pso,
		BindingSets: []BoundSet{{Volatile: []VolatileCBBinding{{RootParamIndex: 0, Buffer: buf}}}},
	}
	if err := r.SetComputeState(state); err != nil {
		t.Fatalf("SetComputeState: %v", err)
	}

	if r.anyVolatileCBWrites {
		t.Fatalf("expected SetComputeState to clear anyVolatileCBWrites once it re-walks")
	}
	if addr, ok := r.bound.volatileCBAddr[0]; !ok || addr == 0 {
		t.Fatalf("expected root param 0 to carry the written buffer's address, got %v ok=%v", addr, ok)
	}

	// Calling SetComputeState again without a new write skips the
	// volatile-CB walk, since anyVolatileCBWrites is false.
	if err := r.SetComputeState(state); err != nil {
		t.Fatalf("SetComputeState (no new write): %v", err)
	}
}

func TestSetComputeStateRecordsPipelineAsPreviousState(t *testing.T) {
	r, _, _ := newStateTestRecorder(t)
	pso := testComputePipeline(t, r.device)

	if err := r.SetComputeState(ComputeState{Pipeline: pso}); err != nil {
		t.Fatalf("SetComputeState: %v", err)
	}
	if r.computeState == nil || r.computeState.Pipeline != pso {
		t.Fatalf("expected computeState to record the applied pipeline")
	}
}
