package upload

import (
	"fmt"
	"sync"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// DefaultChunkSize is the chunk size a Manager creates when the caller
// does not override it; large enough to absorb a handful of texture
// mip uploads without spilling into a second chunk.
const DefaultChunkSize = 64 * 1024

// chunkAlignment is the granularity chunk sizes round up to once a
// suballocation is larger than DefaultChunkSize.
const chunkAlignment = 4 * 1024

// version packs (fenceID, queueType, submitted) into one word so a
// chunk's retire condition is a single comparison against the queue's
// last-completed fence value instead of three separate fields.
type version uint64

func encodeVersion(fenceID uint64, queueType hal.QueueType, submitted bool) version {
	v := (fenceID << 8) | uint64(queueType)<<1
	if submitted {
		v |= 1
	}
	return version(v)
}

func (v version) fenceID() uint64       { return uint64(v) >> 8 }
func (v version) queueType() hal.QueueType { return hal.QueueType((uint64(v) >> 1) & 0x7f) }
func (v version) submitted() bool       { return v&1 != 0 }

// chunk is one host-visible buffer chunks are bump-allocated from.
type chunk struct {
	buffer  hal.Buffer
	mapped  []byte
	size    uint64
	cursor  uint64
	version version
}

// Manager owns the active (in-use or in-flight) and free chunk lists.
// Mirrors the active/free-list plus periodic-maintain shape a fence pool
// uses, adapted here to reclaim host-visible buffer chunks instead of
// native fence handles.
type Manager struct {
	mu        sync.Mutex
	device    hal.Device
	chunkSize uint64

	active []*chunk
	free   []*chunk
}

// NewManager creates a Manager whose chunks default to DefaultChunkSize
// bytes; pass 0 to accept the default.
func NewManager(device hal.Device, chunkSize uint64) *Manager {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	return &Manager{device: device, chunkSize: chunkSize}
}

// Suballocate reserves size bytes aligned to alignment from the current
// (or a freshly allocated) chunk, returning the backing buffer, the byte
// offset within it to write at, and a slice over that region.
func (m *Manager) Suballocate(size, alignment uint64) (hal.Buffer, uint64, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.active) > 0 {
		c := m.active[len(m.active)-1]
		if !c.version.submitted() {
			offset := alignUp(c.cursor, alignment)
			if offset+size <= c.size {
				c.cursor = offset + size
				return c.buffer, offset, c.mapped[offset : offset+size], nil
			}
		}
	}

	c, err := m.newChunk(size)
	if err != nil {
		return nil, 0, nil, err
	}
	m.active = append(m.active, c)
	c.cursor = size
	return c.buffer, 0, c.mapped[:size], nil
}

func (m *Manager) newChunk(minSize uint64) (*chunk, error) {
	for i, c := range m.free {
		if c.size >= minSize {
			m.free = append(m.free[:i], m.free[i+1:]...)
			c.cursor = 0
			c.version = 0
			return c, nil
		}
	}

	size := m.chunkSize
	if minSize > size {
		size = alignUp(minSize, chunkAlignment)
	}
	desc := types.BufferDesc{
		Name:      "upload-chunk",
		ByteSize:  size,
		Usage:     types.BufferUsageRaw,
		CPUAccess: types.CPUAccessWrite,
	}
	buf, err := m.device.CreateBuffer(desc)
	if err != nil {
		return nil, fmt.Errorf("upload: create chunk: %w", err)
	}
	mapped, err := m.device.MapBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("upload: map chunk: %w", err)
	}
	return &chunk{buffer: buf, mapped: mapped, size: size}, nil
}

// SubmitChunks marks every active, not-yet-submitted chunk as submitted
// under fenceID on queueType, the point at which Reclaim is allowed to
// start watching its completion.
func (m *Manager) SubmitChunks(fenceID uint64, queueType hal.QueueType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.active {
		if !c.version.submitted() {
			c.version = encodeVersion(fenceID, queueType, true)
		}
	}
}

// Reclaim moves every submitted chunk whose fence has completed (per
// completed, the queue's current highest-completed fence value) back
// onto the free list.
func (m *Manager) Reclaim(completed map[hal.QueueType]uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Chunks stay persistently mapped for their whole lifetime; only
	// their ownership moves between active and free.
	kept := m.active[:0]
	for _, c := range m.active {
		if c.version.submitted() && completed[c.version.queueType()] >= c.version.fenceID() {
			m.free = append(m.free, c)
			continue
		}
		kept = append(kept, c)
	}
	m.active = kept
}

func alignUp(v, alignment uint64) uint64 {
	if alignment == 0 {
		return v
	}
	return (v + alignment - 1) &^ (alignment - 1)
}
