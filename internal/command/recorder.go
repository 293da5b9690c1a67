package command

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/internal/upload"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

func stateViolation(format string, args ...any) error {
	return &types.RHIError{Kind: types.ErrorKindStatePolicyViolation, Message: fmt.Sprintf(format, args...)}
}

// boundState is the low-level per-call dedup state the standalone
// SetGraphicsPipeline/SetIndexBuffer/SetRenderTargets helpers in
// encode.go check before reissuing a native call; GraphicsState/
// ComputeState (state.go) diff at a coarser, per-draw granularity on top
// of these.
type boundState struct {
	graphicsPipeline hal.GraphicsPipeline
	computePipeline  hal.ComputePipeline

	volatileCBAddr map[uint32]uint64 // root param index -> last-bound GPU address

	framebuffer *resource.FrameBuffer
	indexBuffer *hal.IndexBufferBinding
}

func newBoundState() *boundState {
	return &boundState{volatileCBAddr: make(map[uint32]uint64)}
}

// Recorder wraps one native command list through its lifecycle,
// batching barriers from a shared track.Tracker and diffing bound state
// between draws.
type Recorder struct {
	device    hal.Device
	factory   *resource.Factory
	queueType hal.QueueType
	uploads   *upload.Manager

	allocator hal.CommandAllocator
	list      hal.CommandList
	state     hal.CommandListState

	bound *boundState

	// volatileCBAddressMap in spec.md §4.3/§4.4: the GPU address each
	// volatile constant buffer was most recently written at during this
	// recording. writeBuffer populates it; BindVolatileConstantBuffer
	// reads it and fails if a buffer is bound before its first write.
	volatileWrites map[*resource.Buffer]uint64

	// graphicsState/computeState are the last GraphicsState/ComputeState
	// SetGraphicsState/SetComputeState applied, nil until the first call
	// after Open/Reopen (spec.md §4.4's per-component diff bitmask).
	graphicsState *GraphicsState
	computeState  *ComputeState

	// anyVolatileCBWrites gates the volatile-CB re-patch walk in
	// SetGraphicsState/SetComputeState: writeBuffer sets it, and both
	// paths only re-walk and clear it when true (spec.md §9's resolved
	// Open Question: mirror the graphics polarity on the compute path).
	anyVolatileCBWrites bool
}

// New opens a fresh allocator and command list for queueType and begins
// recording, transitioning Idle -> Open. uploads is the upload ring this
// recorder suballocates transient writes from; callers typically share
// one Manager per queue across every Recorder the queue's Pool hands out.
func New(device hal.Device, factory *resource.Factory, queueType hal.QueueType, uploads *upload.Manager) (*Recorder, error) {
	allocator, err := device.CreateCommandAllocator(queueType)
	if err != nil {
		return nil, fmt.Errorf("command: create allocator: %w", err)
	}
	list, err := device.CreateCommandList(queueType)
	if err != nil {
		return nil, fmt.Errorf("command: create list: %w", err)
	}
	r := &Recorder{
		device:         device,
		factory:        factory,
		queueType:      queueType,
		uploads:        uploads,
		allocator:      allocator,
		list:           list,
		state:          hal.CommandListIdle,
		bound:          newBoundState(),
		volatileWrites: make(map[*resource.Buffer]uint64),
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recorder) open() error {
	if r.state != hal.CommandListIdle {
		return stateViolation("command list: Begin called from state %s, want idle", r.state)
	}
	if err := r.list.Begin(r.allocator); err != nil {
		return err
	}
	r.state = hal.CommandListOpen
	return nil
}

func (r *Recorder) requireOpen(op string) error {
	if r.state != hal.CommandListOpen {
		return stateViolation("command list: %s called from state %s, want open", op, r.state)
	}
	return nil
}

// FlushBarriers drains every barrier accumulated on the shared tracker
// since the last flush and records one ResourceBarrier call for them.
// Called automatically before every draw, dispatch, and copy.
func (r *Recorder) FlushBarriers() {
	barriers := r.factory.Tracker().Barriers()
	if len(barriers) == 0 {
		return
	}
	r.list.ResourceBarrier(barriers)
	r.factory.Tracker().Clear()
}

// Close ends recording, transitioning Open -> Closed. The list is not
// eligible for submission until this succeeds.
func (r *Recorder) Close() error {
	if err := r.requireOpen("Close"); err != nil {
		return err
	}
	r.FlushBarriers()
	if err := r.list.Close(); err != nil {
		return err
	}
	r.state = hal.CommandListClosed
	return nil
}

// NativeList returns the underlying list for submission via
// internal/queue. Only valid once Close has succeeded.
func (r *Recorder) NativeList() hal.CommandList { return r.list }

// MarkSubmitted transitions Closed -> Submitted; Pool.Submit calls this
// just before handing the list to the queue.
func (r *Recorder) MarkSubmitted() error {
	if r.state != hal.CommandListClosed {
		return stateViolation("command list: MarkSubmitted called from state %s, want closed", r.state)
	}
	r.state = hal.CommandListSubmitted
	return nil
}

// MarkRetired transitions Submitted -> Retired once the fence value this
// list was submitted under has completed.
func (r *Recorder) MarkRetired() error {
	if r.state != hal.CommandListSubmitted {
		return stateViolation("command list: MarkRetired called from state %s, want submitted", r.state)
	}
	r.state = hal.CommandListRetired
	return nil
}

// State returns the list's current lifecycle state.
func (r *Recorder) State() hal.CommandListState { return r.state }

// Reopen recycles a Retired list's allocator for a new recording,
// transitioning Retired -> Idle -> Open. internal/command's pool calls
// this instead of creating a fresh allocator every frame.
func (r *Recorder) Reopen() error {
	if r.state != hal.CommandListRetired {
		return stateViolation("command list: Reopen called from state %s, want retired", r.state)
	}
	if err := r.allocator.Reset(); err != nil {
		return err
	}
	r.state = hal.CommandListIdle
	r.bound = newBoundState()
	r.graphicsState = nil
	r.computeState = nil
	r.anyVolatileCBWrites = false
	r.volatileWrites = make(map[*resource.Buffer]uint64)
	return r.open()
}
