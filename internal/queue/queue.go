package queue

import (
	"sync"
	"sync/atomic"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
)

// Releasable is anything a State keeps alive until its submission's
// fence value completes. internal/command's Instance implements this to
// drop its strong references to command allocators, upload chunks, and
// bound resources once the GPU is done with them.
type Releasable interface {
	// FenceValue reports the submission value this instance must survive
	// until; Release is only called once CompletedValue() >= FenceValue().
	FenceValue() uint64
	Release()
}

// State bundles one native queue with its fence and in-flight bookkeeping
// (spec.md §4.3). lastCompleted is refreshed lock-free via atomic load
// of the native fence; everything that mutates the in-flight list takes
// mu.
type State struct {
	native hal.Queue
	fence  hal.Fence

	lastSubmitted    atomic.Uint64
	lastCompleted    atomic.Uint64
	recordingCounter atomic.Uint64

	mu       sync.Mutex
	inFlight []Releasable
}

// New wraps native with a fresh fence starting at value 0.
func New(native hal.Queue, fence hal.Fence) *State {
	return &State{native: native, fence: fence}
}

// QueueType returns the native queue's type.
func (s *State) QueueType() hal.QueueType { return s.native.Type() }

// NextRecordingValue reserves the next monotonic value a command list
// recorded for this queue will be signaled under once submitted.
func (s *State) NextRecordingValue() uint64 {
	return s.recordingCounter.Add(1)
}

// Submit submits lists, signals the queue fence to value, and registers
// instance (if non-nil) to be released once that value completes.
func (s *State) Submit(lists []hal.CommandList, value uint64, instance Releasable) error {
	if err := s.native.Submit(lists); err != nil {
		return err
	}
	if err := s.native.Signal(s.fence, value); err != nil {
		return err
	}
	if value > s.lastSubmitted.Load() {
		s.lastSubmitted.Store(value)
	}
	if instance != nil {
		s.mu.Lock()
		s.inFlight = append(s.inFlight, instance)
		s.mu.Unlock()
	}
	return nil
}

// Poll refreshes lastCompleted from the native fence and releases every
// instance whose fence value has now completed. Safe to call from any
// goroutine; typically called once per frame and again before a blocking
// Wait.
func (s *State) Poll() uint64 {
	completed := s.fence.CompletedValue()
	s.lastCompleted.Store(completed)

	s.mu.Lock()
	kept := s.inFlight[:0]
	var toRelease []Releasable
	for _, inst := range s.inFlight {
		if inst.FenceValue() <= completed {
			toRelease = append(toRelease, inst)
		} else {
			kept = append(kept, inst)
		}
	}
	s.inFlight = kept
	s.mu.Unlock()

	for _, inst := range toRelease {
		inst.Release()
	}
	return completed
}

// CompletedValue returns the last value Poll observed as completed,
// without touching the native fence.
func (s *State) CompletedValue() uint64 { return s.lastCompleted.Load() }

// LastSubmittedValue returns the highest fence value any Submit call has
// signaled so far, used by a wait-for-idle call that needs to drain
// everything outstanding rather than just what has already completed.
func (s *State) LastSubmittedValue() uint64 { return s.lastSubmitted.Load() }

// Wait blocks the calling goroutine until value has completed.
func (s *State) Wait(value uint64) error {
	if s.CompletedValue() >= value {
		return nil
	}
	if err := s.native.Wait(s.fence, value); err != nil {
		return err
	}
	s.Poll()
	return nil
}

// WaitOnQueue makes other's GPU timeline wait on this queue reaching
// value before other executes any further submitted work, the
// cross-queue dependency a graphics queue needs on a copy queue's
// upload-complete fence (spec.md §4.3).
func (s *State) WaitOnQueue(other *State, value uint64) error {
	return other.native.WaitOnQueue(s.fence, value)
}

// Fence exposes the native fence for backends that need it directly
// (e.g. internal/command attaching a wait before present).
func (s *State) Fence() hal.Fence { return s.fence }
