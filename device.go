package rhi

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/command"
	"github.com/CellarCordial/FTS-Render-sub002/internal/pipeline"
	"github.com/CellarCordial/FTS-Render-sub002/internal/queue"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/internal/upload"
)

// queueKinds enumerates every queue a Device keeps alive, in the fixed
// order package hal assigns hal.QueueType values.
var queueKinds = [...]hal.QueueType{hal.QueueTypeGraphics, hal.QueueTypeCompute, hal.QueueTypeCopy}

// Device is the logical GPU device: the sole entry point for creating
// every other first-class object and for submitting recorded command
// lists. It is the root package's analogue of the teacher's Device,
// generalized from one queue to the three this system tracks state and
// uploads against independently.
type Device struct {
	native hal.Device

	factory   *resource.Factory
	pipelines *pipeline.Factory

	queues  map[hal.QueueType]*queue.State
	uploads map[hal.QueueType]*upload.Manager
	pools   map[hal.QueueType]*command.Pool

	released bool
}

// NewDevice opens backend's logical device and builds the descriptor
// heaps, resource tracker, upload rings, and command-list pools every
// other constructor in this package depends on.
func NewDevice(backend hal.Backend) (*Device, error) {
	native, err := backend.OpenDevice()
	if err != nil {
		return nil, fmt.Errorf("rhi: open device: %w", err)
	}

	factory, err := resource.NewFactory(native)
	if err != nil {
		return nil, fmt.Errorf("rhi: create resource factory: %w", err)
	}

	d := &Device{
		native:    native,
		factory:   factory,
		pipelines: pipeline.NewFactory(native),
		queues:    make(map[hal.QueueType]*queue.State),
		uploads:   make(map[hal.QueueType]*upload.Manager),
		pools:     make(map[hal.QueueType]*command.Pool),
	}

	for _, qt := range queueKinds {
		fence, err := native.CreateFence(0)
		if err != nil {
			return nil, fmt.Errorf("rhi: create %s queue fence: %w", qt, err)
		}
		qs := queue.New(native.Queue(qt), fence)
		mgr := upload.NewManager(native, 0)
		d.queues[qt] = qs
		d.uploads[qt] = mgr
		d.pools[qt] = command.NewPool(native, factory, qt, mgr)
	}

	return d, nil
}

func (d *Device) checkReleased() error {
	if d.released {
		return ErrReleased
	}
	return nil
}

// Native exposes the underlying backend device for code that needs to
// reach past this package (a window-system swapchain integration, for
// instance).
func (d *Device) Native() hal.Device { return d.native }

// Name returns the backend's human-readable identifier.
func (d *Device) Name() string { return d.native.Name() }

// Removed reports whether the backend has entered the fatal
// device-removed state.
func (d *Device) Removed() bool { return d.native.Removed() }

// CreateCommandList acquires a Recorder for queueType from its pool,
// reusing a retired one if available, and returns it ready to record.
func (d *Device) CreateCommandList(queueType hal.QueueType) (*CommandList, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	pool, ok := d.pools[queueType]
	if !ok {
		return nil, fmt.Errorf("rhi: unknown queue type %s", queueType)
	}
	recorder, err := pool.Acquire()
	if err != nil {
		return nil, err
	}
	return &CommandList{device: d, queueType: queueType, recorder: recorder}, nil
}

// Submission identifies a closed, submitted CommandList by its queue type
// and the fence value its recorded work completes under.
type Submission struct {
	queueType  hal.QueueType
	fenceValue uint64
}

// FenceValue returns the queue fence value this submission completes
// under.
func (s *Submission) FenceValue() uint64 { return s.fenceValue }

// QueueType returns the queue this submission was recorded for.
func (s *Submission) QueueType() hal.QueueType { return s.queueType }

// Submit closes list, submits it on its queue under a fresh fence value,
// and keeps refs alive until that value completes. list must not be used
// again afterward.
func (d *Device) Submit(list *CommandList, refs ...any) (*Submission, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	pool := d.pools[list.queueType]
	qs := d.queues[list.queueType]
	inst, err := pool.Submit(qs, list.recorder, refs...)
	if err != nil {
		return nil, err
	}
	return &Submission{queueType: list.queueType, fenceValue: inst.FenceValue()}, nil
}

// QueueWaitForCommandList makes the waiter queue's GPU timeline wait on
// sub's queue reaching sub's fence value before executing any further
// submitted work (spec.md §4.3's cross-queue dependency — e.g. a graphics
// queue waiting on a copy queue's upload-complete fence).
func (d *Device) QueueWaitForCommandList(waiter hal.QueueType, sub *Submission) error {
	if err := d.checkReleased(); err != nil {
		return err
	}
	return d.queues[sub.queueType].WaitOnQueue(d.queues[waiter], sub.fenceValue)
}

// WaitForSubmission blocks the calling goroutine until sub's fence value
// has completed.
func (d *Device) WaitForSubmission(sub *Submission) error {
	if err := d.checkReleased(); err != nil {
		return err
	}
	return d.queues[sub.queueType].Wait(sub.fenceValue)
}

// WaitForIdle blocks until every queue has drained its currently
// submitted work.
func (d *Device) WaitForIdle() error {
	if err := d.checkReleased(); err != nil {
		return err
	}
	for _, qt := range queueKinds {
		qs := d.queues[qt]
		if err := qs.Wait(qs.LastSubmittedValue()); err != nil {
			return err
		}
	}
	return nil
}

// CollectGarbage polls every queue's fence and releases any submission
// (and its strongly-held resources, allocators, and upload chunks) whose
// fence value has completed, then reclaims upload-ring chunks that are no
// longer referenced by in-flight work. Call this once per frame.
func (d *Device) CollectGarbage() {
	completed := make(map[hal.QueueType]uint64, len(d.queues))
	for _, qt := range queueKinds {
		completed[qt] = d.queues[qt].Poll()
	}
	for _, qt := range queueKinds {
		d.uploads[qt].Reclaim(completed)
	}
}

// Release marks the device released; no further calls against objects it
// created are valid afterward. The underlying native device is left to
// the backend's own process-exit teardown, mirroring the teacher's
// Device.Release shape without a native Destroy call this abstraction
// layer does not own.
func (d *Device) Release() {
	d.released = true
}
