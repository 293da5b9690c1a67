package command

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// TestWriteBufferVolatilePathRecordsAddressWithoutBarrier exercises
// spec.md §4.4's writeBuffer contract for volatile constant buffers: the
// GPU address is recorded for the next patch and no transition barrier is
// queued, since there is no persistent backing to transition.
func TestWriteBufferVolatilePathRecordsAddressWithoutBarrier(t *testing.T) {
	r, factory, _ := newStateTestRecorder(t)

	buf, err := factory.CreateBuffer(bufferDescForTest())
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	if err := r.WriteBuffer(buf, []byte{1, 2, 3, 4}, 0); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}

	if _, ok := r.volatileWrites[buf]; !ok {
		t.Fatalf("expected the volatile write to record buf's GPU address")
	}
	if n := len(factory.Tracker().Barriers()); n != 0 {
		t.Fatalf("expected no pending barriers from a volatile buffer write, got %d", n)
	}
}

// TestWriteBufferPersistentPathTransitionsToCopyDest covers the
// non-volatile half of writeBuffer: a buffer with real GPU backing is
// transitioned to CopyDest and its write goes through a real copy.
func TestWriteBufferPersistentPathTransitionsToCopyDest(t *testing.T) {
	r, factory, _ := newStateTestRecorder(t)

	buf, err := factory.CreateBuffer(types.BufferDesc{
		Name:         "storage",
		ByteSize:     256,
		Usage:        types.BufferUsageStructured,
		StructStride: 16,
		InitialState: types.ResourceStatePixelShaderResource,
	})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	if err := r.WriteBuffer(buf, make([]byte, 16), 0); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}

	state, ok := factory.Tracker().GetBufferState(buf.Native())
	if !ok || state != types.ResourceStateCopyDest {
		t.Fatalf("expected buffer state CopyDest after writeBuffer, got %v (ok=%v)", state, ok)
	}
	if _, wroteVolatile := r.volatileWrites[buf]; wroteVolatile {
		t.Fatalf("expected a persistent buffer's write not to populate volatileWrites")
	}
}

func TestWriteTextureNarrowRowPitchTransitionsToCopyDest(t *testing.T) {
	r, factory, _ := newStateTestRecorder(t)

	tex, err := factory.CreateTexture(types.TextureDesc{
		Name: "dst", Width: 4, Height: 4, Depth: 1, ArraySize: 1, MipLevels: 1, SampleCount: 1,
		Format: types.FormatR8Unorm, Dimension: types.TextureDimension2D, Usage: types.TextureUsageShaderResource,
		InitialState: types.ResourceStatePixelShaderResource,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if err := r.WriteTexture(tex, 0, 0, data, 4); err != nil {
		t.Fatalf("WriteTexture: %v", err)
	}

	state, ok := factory.Tracker().GetTextureState(tex.Native(), 0, 0, 1)
	if !ok || state != types.ResourceStateCopyDest {
		t.Fatalf("expected texture subresource state CopyDest after writeTexture, got %v (ok=%v)", state, ok)
	}
}
