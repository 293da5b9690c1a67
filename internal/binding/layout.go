package binding

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// Lower flattens a set of declared (bound) binding layouts plus any
// bindless layouts into one hal.RootLayoutDesc, pulling push-constants
// and volatile-constant-buffer items out of their declaring layout into
// the two dedicated root-parameter slots every backend binds directly
// rather than through a descriptor table (spec.md §4.5 rules 1-2), and
// leaving everything else as table content (rules 3-4).
func Lower(layouts []types.BindingLayoutDesc, bindless []types.BindlessLayoutDesc) hal.RootLayoutDesc {
	var out hal.RootLayoutDesc
	var tableLayouts []types.BindingLayoutDesc

	for _, l := range layouts {
		var tableItems []types.BindingLayoutItem
		for _, it := range l.Items {
			switch it.Kind {
			case types.ViewKindPushConstants:
				item := it
				out.PushConstants = &item
			case types.ViewKindVolatileConstantBuffer:
				out.VolatileConstants = append(out.VolatileConstants, it)
			default:
				tableItems = append(tableItems, it)
			}
		}
		if len(tableItems) > 0 {
			tableLayouts = append(tableLayouts, types.BindingLayoutDesc{
				Visibility:    l.Visibility,
				RegisterSpace: l.RegisterSpace,
				Items:         tableItems,
			})
		}
	}

	out.BoundLayouts = tableLayouts
	out.BindlessLayouts = bindless
	return out
}

// VolatileOwners reports, for each volatile constant buffer item Lower
// pulls out of layouts (in the same order it appends them to
// RootLayoutDesc.VolatileConstants), the index into layouts it came from.
// The root rhi package uses this to know which binding-set slot owns
// which volatile-CB root parameter, since Lower itself discards that
// association once it flattens everything into one slice.
func VolatileOwners(layouts []types.BindingLayoutDesc) []int {
	var owners []int
	for i, l := range layouts {
		for _, it := range l.Items {
			if it.Kind == types.ViewKindVolatileConstantBuffer {
				owners = append(owners, i)
			}
		}
	}
	return owners
}

// ContentHash computes a shape-only hash of a flattened root layout,
// independent of any backend, so RootLayoutCache can recognize two
// equivalent layouts built from distinct descriptor slices without
// asking a backend to create a native object for the second one.
func ContentHash(desc hal.RootLayoutDesc) uint64 {
	h := fnv.New64a()
	var buf [12]byte
	write := func(it types.BindingLayoutItem) {
		binary.LittleEndian.PutUint32(buf[0:4], it.Slot)
		binary.LittleEndian.PutUint16(buf[4:6], uint16(it.Kind))
		binary.LittleEndian.PutUint32(buf[8:12], it.Size)
		h.Write(buf[:])
	}
	if desc.PushConstants != nil {
		write(*desc.PushConstants)
	}
	h.Write([]byte{0xff})
	for _, it := range desc.VolatileConstants {
		write(it)
	}
	h.Write([]byte{0xff})
	for _, l := range desc.BoundLayouts {
		var lbuf [8]byte
		binary.LittleEndian.PutUint16(lbuf[0:2], uint16(l.Visibility))
		binary.LittleEndian.PutUint32(lbuf[2:6], l.RegisterSpace)
		h.Write(lbuf[:])
		for _, it := range l.Items {
			write(it)
		}
		h.Write([]byte{0xfe})
	}
	h.Write([]byte{0xff})
	for _, l := range desc.BindlessLayouts {
		var lbuf [8]byte
		binary.LittleEndian.PutUint16(lbuf[0:2], uint16(l.Visibility))
		binary.LittleEndian.PutUint32(lbuf[2:6], l.FirstSlot)
		h.Write(lbuf[:])
		for _, it := range l.Items {
			write(it)
		}
		h.Write([]byte{0xfe})
	}
	return h.Sum64()
}

// BoundLayoutParams is the root-parameter slice one BindingLayoutDesc (or
// BindlessLayoutDesc) occupies after lowering: at most one resource
// (CBV/SRV/UAV) table parameter and at most one sampler table parameter,
// per spec.md §4.5 rule 3.
type BoundLayoutParams struct {
	ResourceParam uint32
	HasResource   bool
	SamplerParam  uint32
	HasSampler    bool
}

// RootParamLayout is the deterministic root-parameter index assignment
// for one lowered root layout, in the exact order spec.md §4.5 lowers
// components: push constants, then volatile CBs, then bound tables, then
// bindless tables. internal/command's GraphicsState/ComputeState and the
// root-level binding-set constructors both need this assignment so they
// agree on which root parameter a given table or volatile CB patches.
type RootParamLayout struct {
	PushConstantsParam uint32
	HasPushConstants   bool

	// VolatileParams[i] is the root parameter for desc.VolatileConstants[i].
	VolatileParams []uint32

	// BoundLayouts[i] is the parameter assignment for desc.BoundLayouts[i].
	BoundLayouts []BoundLayoutParams
	// BindlessLayouts[i] is the parameter assignment for
	// desc.BindlessLayouts[i].
	BindlessLayouts []BoundLayoutParams
}

// AssignRootParams walks a lowered root layout and assigns each component
// the next free root-parameter index, in lowering order.
func AssignRootParams(desc hal.RootLayoutDesc) RootParamLayout {
	var out RootParamLayout
	next := uint32(0)

	if desc.PushConstants != nil {
		out.HasPushConstants = true
		out.PushConstantsParam = next
		next++
	}

	for range desc.VolatileConstants {
		out.VolatileParams = append(out.VolatileParams, next)
		next++
	}

	assign := func(items []types.BindingLayoutItem) BoundLayoutParams {
		var bp BoundLayoutParams
		for _, it := range items {
			if it.Kind == types.ViewKindSampler {
				bp.HasSampler = true
			} else {
				bp.HasResource = true
			}
		}
		if bp.HasResource {
			bp.ResourceParam = next
			next++
		}
		if bp.HasSampler {
			bp.SamplerParam = next
			next++
		}
		return bp
	}

	for _, l := range desc.BoundLayouts {
		out.BoundLayouts = append(out.BoundLayouts, assign(l.Items))
	}
	for _, l := range desc.BindlessLayouts {
		out.BindlessLayouts = append(out.BindlessLayouts, assign(l.Items))
	}

	return out
}

// RootLayoutCache memoizes native root layouts by content hash so two
// pipelines declaring the same binding shape share one native object.
type RootLayoutCache struct {
	device  hal.Device
	entries map[uint64]hal.RootLayout
}

// NewRootLayoutCache wraps device.
func NewRootLayoutCache(device hal.Device) *RootLayoutCache {
	return &RootLayoutCache{device: device, entries: make(map[uint64]hal.RootLayout)}
}

// GetOrCreate returns the cached root layout for desc's content hash,
// creating one via the backend on a cache miss.
func (c *RootLayoutCache) GetOrCreate(desc hal.RootLayoutDesc) (hal.RootLayout, error) {
	hash := ContentHash(desc)
	if rl, ok := c.entries[hash]; ok {
		return rl, nil
	}
	rl, err := c.device.CreateRootLayout(desc)
	if err != nil {
		return nil, err
	}
	c.entries[hash] = rl
	return rl, nil
}
