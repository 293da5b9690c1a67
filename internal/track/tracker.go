package track

import (
	"sync"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// bufferState is the single tracked state of one buffer, plus the index
// into Tracker.pending of its not-yet-emitted barrier, if any. Keeping
// that index lets a second RequireBufferState call in the same batch
// widen the existing barrier's After state instead of appending a
// duplicate transition for the same resource.
type bufferState struct {
	current    types.ResourceState
	pendingIdx int
	hasPending bool

	// enableUAV/uavPlaced are the {enableUAVBarriers, uavBarrierPlaced}
	// pair from spec.md §3 "Resource state". The guard opens at creation,
	// closes the first time a UAV barrier is placed for a repeated UAV
	// request, and only reopens when SetEnableUAVBarriers is called.
	enableUAV bool
	uavPlaced bool
}

// textureState tracks one texture. If subStates is nil, every
// subresource shares wholeState; the moment a request addresses fewer
// than all subresources, the tracker expands to subStates so each
// subresource can diverge. enableUAV/uavPlaced live once per texture
// (not per subresource) so a single RequireTextureState call touching
// many subresources still places at most one UAV barrier.
type textureState struct {
	wholeState types.ResourceState
	subStates  []types.ResourceState
	pendingIdx []int // per-subresource pending barrier index, -1 if none; nil when whole
	wholePendingIdx int
	wholeHasPending bool

	enableUAV bool
	uavPlaced bool
}

// Tracker accumulates barriers for the resources command lists touch.
// internal/resource.Factory owns one Tracker that every recorder of a
// device shares; each method holds t.mu for its whole duration.
type Tracker struct {
	mu       sync.Mutex
	buffers  map[hal.Buffer]*bufferState
	textures map[hal.Texture]*textureState
	pending  []hal.Barrier
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{
		buffers:  make(map[hal.Buffer]*bufferState),
		textures: make(map[hal.Texture]*textureState),
	}
}

// Adopt registers buf's initial state (its creation-time InitialState),
// as the very first tracked state so the first RequireBufferState call
// against it can compute a real Before value instead of guessing Common.
func (t *Tracker) Adopt(buf hal.Buffer, initial types.ResourceState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.buffers[buf]; !ok {
		t.buffers[buf] = &bufferState{current: initial, enableUAV: true}
	}
}

// AdoptTexture is the texture analogue of Adopt.
func (t *Tracker) AdoptTexture(tex hal.Texture, initial types.ResourceState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.textures[tex]; !ok {
		t.textures[tex] = &textureState{wholeState: initial, wholePendingIdx: -1, enableUAV: true}
	}
}

// RequireBufferState ensures buf is (or will be, once the emitted
// barriers run) in desired state, returning the barriers newly added.
// Requesting the state the buffer is already in is a no-op unless
// desired is UAV, in which case exactly one UAV barrier is produced to
// order the new access after whatever last wrote through the UAV.
func (t *Tracker) RequireBufferState(buf hal.Buffer, desired types.ResourceState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.buffers[buf]
	if !ok {
		st = &bufferState{current: types.ResourceStateCommon, enableUAV: true}
		t.buffers[buf] = st
	}

	if desired.IsUAV() && st.current.Contains(types.ResourceStateUnorderedAccess) {
		if st.enableUAV && !st.uavPlaced {
			t.pending = append(t.pending, hal.Barrier{Buffer: buf, IsUAVBarrier: true})
			st.uavPlaced = true
		}
		st.current = desired
		return
	}

	if st.current == desired {
		return
	}

	if st.hasPending {
		b := &t.pending[st.pendingIdx]
		b.After |= desired
		st.current = b.After
		return
	}

	idx := len(t.pending)
	t.pending = append(t.pending, hal.Barrier{Buffer: buf, Before: st.current, After: desired})
	st.pendingIdx = idx
	st.hasPending = true
	st.current = desired
}

// RequireTextureState is the texture analogue. subresource ==
// hal.AllSubresources-tagged range (IsWholeResource) requests the whole
// texture; otherwise only the named mips/slices are affected and the
// rest of the texture keeps whatever state it already had (spec.md §4.2
// partial-subresource transitions). mipLevels is the texture's total mip
// count, the stride used to turn (mip, slice) into the linear index that
// GetTextureState and every other subresource-addressing call site use;
// total is the texture's full subresource count (mipLevels * arraySize).
func (t *Tracker) RequireTextureState(tex hal.Texture, subresource hal.SubresourceRange, mipLevels, total uint32, desired types.ResourceState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.textures[tex]
	if !ok {
		st = &textureState{wholeState: types.ResourceStateCommon, wholePendingIdx: -1}
		t.textures[tex] = st
	}

	if subresource.IsWholeResource() {
		if st.subStates == nil {
			t.requireWhole(tex, st, desired)
			return
		}
		// Already expanded to per-subresource granularity by an earlier
		// partial request: walk every index instead of reusing the
		// range's own (sentinel) MipCount/ArrayCount, which are
		// ^uint32(0) here and would overflow if multiplied.
		for i := uint32(0); i < total; i++ {
			t.requireOne(tex, st, i, desired)
		}
		return
	}

	t.expandToPerSubresource(st, total)
	forEachSubresource(subresource, mipLevels, total, func(index uint32) {
		t.requireOne(tex, st, index, desired)
	})
}

func (t *Tracker) requireWhole(tex hal.Texture, st *textureState, desired types.ResourceState) {
	if desired.IsUAV() && st.wholeState.Contains(types.ResourceStateUnorderedAccess) {
		if st.enableUAV && !st.uavPlaced {
			t.pending = append(t.pending, hal.Barrier{Texture: tex, Subresource: hal.AllSubresources, IsUAVBarrier: true})
			st.uavPlaced = true
		}
		st.wholeState = desired
		return
	}
	if st.wholeState == desired {
		return
	}
	if st.wholeHasPending {
		b := &t.pending[st.wholePendingIdx]
		b.After |= desired
		st.wholeState = b.After
		return
	}
	idx := len(t.pending)
	t.pending = append(t.pending, hal.Barrier{Texture: tex, Subresource: hal.AllSubresources, Before: st.wholeState, After: desired})
	st.wholePendingIdx = idx
	st.wholeHasPending = true
	st.wholeState = desired
}

func (t *Tracker) requireOne(tex hal.Texture, st *textureState, index uint32, desired types.ResourceState) {
	current := st.subStates[index]

	if desired.IsUAV() && current.Contains(types.ResourceStateUnorderedAccess) {
		if st.enableUAV && !st.uavPlaced {
			t.pending = append(t.pending, hal.Barrier{Texture: tex, Subresource: index, IsUAVBarrier: true})
			st.uavPlaced = true
		}
		st.subStates[index] = desired
		return
	}
	if current == desired {
		return
	}
	if st.pendingIdx[index] >= 0 {
		b := &t.pending[st.pendingIdx[index]]
		b.After |= desired
		st.subStates[index] = b.After
		return
	}
	idx := len(t.pending)
	t.pending = append(t.pending, hal.Barrier{Texture: tex, Subresource: index, Before: current, After: desired})
	st.pendingIdx[index] = idx
	st.subStates[index] = desired
}

// expandToPerSubresource lazily materializes the per-subresource vector
// the first time a request addresses less than the whole texture,
// seeding every slot with the prior whole-resource state.
func (t *Tracker) expandToPerSubresource(st *textureState, count uint32) {
	if st.subStates != nil {
		return
	}
	st.subStates = make([]types.ResourceState, count)
	st.pendingIdx = make([]int, count)
	for i := range st.subStates {
		st.subStates[i] = st.wholeState
		st.pendingIdx[i] = -1
	}
}

// forEachSubresource calls fn once for every linear subresource index
// addressed by r, using mipLevels (the texture's real mip count) as the
// per-array-slice stride — never r's own MipCount, which names how many
// mips the range spans, not how many the texture has. A mip range
// narrower than the full chain is not contiguous in linear-index space
// once more than one array slice is involved, so this walks slice by
// slice rather than assuming a single span.
func forEachSubresource(r hal.SubresourceRange, mipLevels, total uint32, fn func(index uint32)) {
	mipCount := r.MipCount
	if mipCount == 0 {
		mipCount = 1
	}
	sliceCount := r.ArrayCount
	if sliceCount == 0 {
		sliceCount = 1
	}
	for s := uint32(0); s < sliceCount; s++ {
		base := (r.BaseArraySlice+s)*mipLevels + r.BaseMipLevel
		for m := uint32(0); m < mipCount; m++ {
			index := base + m
			if index >= total {
				continue
			}
			fn(index)
		}
	}
}

// Barriers returns every barrier accumulated since the last call to
// Clear, without clearing them.
func (t *Tracker) Barriers() []hal.Barrier {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]hal.Barrier(nil), t.pending...)
}

// Clear drops the pending barrier list and the per-resource "has a
// pending barrier" bookkeeping once internal/command has emitted a
// ResourceBarrier call for them. It deliberately leaves every resource's
// UAV guard (enableUAV/uavPlaced) untouched: that guard only reopens
// through an explicit SetEnableUAVBarriers call, not on every flush.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = t.pending[:0]
	for _, st := range t.buffers {
		st.hasPending = false
	}
	for _, st := range t.textures {
		st.wholeHasPending = false
		for i := range st.pendingIdx {
			st.pendingIdx[i] = -1
		}
	}
}

// SetEnableUAVBarriersBuffer sets buf's UAV-barrier guard and reopens it
// (spec.md §4.2 "setEnableUAVBarriers ... resets the placement guard").
func (t *Tracker) SetEnableUAVBarriersBuffer(buf hal.Buffer, enable bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.buffers[buf]
	if !ok {
		st = &bufferState{current: types.ResourceStateCommon}
		t.buffers[buf] = st
	}
	st.enableUAV = enable
	st.uavPlaced = false
}

// SetEnableUAVBarriersTexture is the texture analogue of
// SetEnableUAVBarriersBuffer.
func (t *Tracker) SetEnableUAVBarriersTexture(tex hal.Texture, enable bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.textures[tex]
	if !ok {
		st = &textureState{wholeState: types.ResourceStateCommon, wholePendingIdx: -1}
		t.textures[tex] = st
	}
	st.enableUAV = enable
	st.uavPlaced = false
}

// GetBufferState returns buf's currently tracked state (spec.md §4.2
// "getBufferState").
func (t *Tracker) GetBufferState(buf hal.Buffer) (types.ResourceState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.buffers[buf]
	if !ok {
		return types.ResourceStateCommon, false
	}
	return st.current, true
}

// GetTextureState returns the currently tracked state of one (mip, slice)
// subresource of tex, resolving to the whole-resource state if the
// tracker has not yet had to expand this texture to per-subresource
// granularity (spec.md §4.2 "getTextureState").
func (t *Tracker) GetTextureState(tex hal.Texture, mip, slice, mipLevels uint32) (types.ResourceState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.textures[tex]
	if !ok {
		return types.ResourceStateCommon, false
	}
	if st.subStates == nil {
		return st.wholeState, true
	}
	index := slice*mipLevels + mip
	if int(index) >= len(st.subStates) {
		return types.ResourceStateCommon, false
	}
	return st.subStates[index], true
}

// Forget stops tracking a resource, used when it is destroyed.
func (t *Tracker) Forget(buf hal.Buffer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.buffers, buf)
}

// ForgetTexture is the texture analogue of Forget.
func (t *Tracker) ForgetTexture(tex hal.Texture) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.textures, tex)
}
