package command

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/queue"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/internal/upload"
)

// Instance bundles a closed Recorder with the fence value its submission
// will complete under and every strong reference that must outlive the
// GPU work it recorded (bound descriptor sets, staged upload chunks, the
// resources barriers named). internal/queue.State holds onto an Instance
// until CompletedValue() reaches FenceValue, then calls Release, which
// returns the recorder's allocator to its Pool instead of recreating one
// every frame.
type Instance struct {
	recorder   *Recorder
	pool       *Pool
	fenceValue uint64
	refs       []any

	released atomic.Bool
}

var _ queue.Releasable = (*Instance)(nil)

// KeepAlive pins ref so it is not released until this instance's fence
// value completes. Call it once per descriptor set, upload chunk, or
// resource a recording touched.
func (inst *Instance) KeepAlive(ref any) {
	inst.refs = append(inst.refs, ref)
}

// FenceValue implements queue.Releasable.
func (inst *Instance) FenceValue() uint64 { return inst.fenceValue }

// Release implements queue.Releasable. It is safe to call more than
// once; only the first call does anything.
func (inst *Instance) Release() {
	if !inst.released.CompareAndSwap(false, true) {
		return
	}
	inst.refs = nil
	if inst.pool != nil {
		inst.pool.put(inst.recorder)
	}
}

// Pool recycles Recorders for one queue type so a submitted, retired
// list's allocator is reset and reopened rather than rebuilt.
type Pool struct {
	device    hal.Device
	factory   *resource.Factory
	queueType hal.QueueType
	uploads   *upload.Manager

	mu   sync.Mutex
	free []*Recorder
}

// NewPool creates an empty pool for queueType backed by uploads, the
// per-queue upload ring every Recorder it hands out suballocates from.
func NewPool(device hal.Device, factory *resource.Factory, queueType hal.QueueType, uploads *upload.Manager) *Pool {
	return &Pool{device: device, factory: factory, queueType: queueType, uploads: uploads}
}

// Acquire returns a Recorder ready to record: either a freshly reopened
// one from the free list, or a brand new one if the pool is empty.
func (p *Pool) Acquire() (*Recorder, error) {
	p.mu.Lock()
	n := len(p.free)
	var r *Recorder
	if n > 0 {
		r = p.free[n-1]
		p.free = p.free[:n-1]
	}
	p.mu.Unlock()

	if r == nil {
		return New(p.device, p.factory, p.queueType, p.uploads)
	}
	if err := r.Reopen(); err != nil {
		return nil, fmt.Errorf("command: reopen pooled recorder: %w", err)
	}
	return r, nil
}

// Submit closes r, submits it on q under a fresh fence value, and wraps
// it in an Instance carrying refs that q will release once the
// submission completes. r must not be used again after this call.
func (p *Pool) Submit(q *queue.State, r *Recorder, refs ...any) (*Instance, error) {
	if err := r.Close(); err != nil {
		return nil, err
	}
	value := q.NextRecordingValue()
	inst := &Instance{recorder: r, pool: p, fenceValue: value, refs: refs}
	if p.uploads != nil {
		p.uploads.SubmitChunks(value, p.queueType)
	}
	if err := r.MarkSubmitted(); err != nil {
		return nil, err
	}
	if err := q.Submit([]hal.CommandList{r.NativeList()}, value, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (p *Pool) put(r *Recorder) {
	if err := r.MarkRetired(); err != nil {
		return
	}
	p.mu.Lock()
	p.free = append(p.free, r)
	p.mu.Unlock()
}
