package command

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/hal/null"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/internal/upload"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

func bufferDescForTest() types.BufferDesc {
	return types.BufferDesc{
		Name:        "volatile-cb",
		ByteSize:    256,
		Usage:       types.BufferUsageConstant,
		IsVolatile:  true,
		CPUAccess:   types.CPUAccessWrite,
		MaxVersions: 2,
	}
}

func newTestRecorder(t *testing.T) (*Recorder, *resource.Factory) {
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
	return r, factory
}

func TestNewRecorderStartsOpen(t *testing.T) {
	r, _ := newTestRecorder(t)
	if r.State() != hal.CommandListOpen {
		t.Fatalf("expected a freshly created recorder to be Open, got %s", r.State())
	}
}

func TestRecorderLifecycleHappyPath(t *testing.T) {
	r, _ := newTestRecorder(t)

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if r.State() != hal.CommandListClosed {
		t.Fatalf("expected Closed after Close, got %s", r.State())
	}

	if err := r.MarkSubmitted(); err != nil {
		t.Fatalf("MarkSubmitted: %v", err)
	}
	if r.State() != hal.CommandListSubmitted {
		t.Fatalf("expected Submitted after MarkSubmitted, got %s", r.State())
	}

	if err := r.MarkRetired(); err != nil {
		t.Fatalf("MarkRetired: %v", err)
	}
	if r.State() != hal.CommandListRetired {
		t.Fatalf("expected Retired after MarkRetired, got %s", r.State())
	}

	if err := r.Reopen(); err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	if r.State() != hal.CommandListOpen {
		t.Fatalf("expected Open after Reopen, got %s", r.State())
	}
}

func TestRecorderRejectsOutOfOrderTransitions(t *testing.T) {
	r, _ := newTestRecorder(t)

	if err := r.MarkSubmitted(); err == nil {
		t.Fatalf("expected MarkSubmitted to fail before Close")
	}
	if err := r.MarkRetired(); err == nil {
		t.Fatalf("expected MarkRetired to fail before Submitted")
	}
	if err := r.Reopen(); err == nil {
		t.Fatalf("expected Reopen to fail before Retired")
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err == nil {
		t.Fatalf("expected a second Close to fail: the recorder is already Closed")
	}
	if err := r.Draw(3, 1, 0, 0); err == nil {
		t.Fatalf("expected Draw to fail once the recorder is Closed")
	}
}

func TestRecorderReopenResetsBoundAndVolatileState(t *testing.T) {
	r, factory := newTestRecorder(t)

	buf, err := factory.CreateBuffer(bufferDescForTest())
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if err := r.WriteBuffer(buf, []byte{1, 2, 3, 4}, 0); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	if !r.anyVolatileCBWrites {
		t.Fatalf("expected anyVolatileCBWrites to be set after a volatile write")
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.MarkSubmitted(); err != nil {
		t.Fatalf("MarkSubmitted: %v", err)
	}
	if err := r.MarkRetired(); err != nil {
		t.Fatalf("MarkRetired: %v", err)
	}
	if err := r.Reopen(); err != nil {
		t.Fatalf("Reopen: %v", err)
	}

	if r.anyVolatileCBWrites {
		t.Fatalf("expected Reopen to clear anyVolatileCBWrites")
	}
	if len(r.volatileWrites) != 0 {
		t.Fatalf("expected Reopen to clear volatileWrites, got %d entries", len(r.volatileWrites))
	}
	if err := r.BindVolatileConstantBuffer(0, buf, true); err == nil {
		t.Fatalf("expected binding the buffer to fail again after Reopen forgot its last write")
	}
}
