package rhi

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/binding"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// BindValue is what one binding-layout slot or bindless handle is
// authored to hold: exactly one of Texture/Buffer/Sampler, plus the view
// metadata a texture or buffer view needs.
type BindValue struct {
	Texture     *Texture
	Buffer      *Buffer
	Sampler     *Sampler
	Format      types.Format
	Subresource hal.SubresourceRange
	Offset, Size uint64
}

func (v BindValue) toInternal() binding.SetBinding {
	sb := binding.SetBinding{Format: v.Format, Subresource: v.Subresource, Offset: v.Offset, Size: v.Size}
	if v.Texture != nil {
		sb.Texture = v.Texture.inner
	}
	if v.Buffer != nil {
		sb.Buffer = v.Buffer.inner
	}
	if v.Sampler != nil {
		sb.Sampler = v.Sampler.inner
	}
	return sb
}

// BindingSet is one authored instance of a BindingLayoutDesc: a
// descriptor table for every SRV/UAV/CBV/sampler item it declares, plus
// the buffer currently backing each volatile-constant-buffer slot (which
// is bound as a root CBV rather than a table entry and so never occupies
// descriptor-heap space).
type BindingSet struct {
	device *Device
	layout types.BindingLayoutDesc

	table    *binding.Set // nil if layout has no table (non-volatile, non-push-constant) items
	volatile map[uint32]*resource.Buffer
}

// CreateBindingSet validates layout and reserves its descriptor-table
// slots. Push-constant and volatile-constant-buffer items never occupy a
// table slot; bind a volatile CB's backing buffer with
// BindingSet.BindVolatileConstantBuffer instead of Bind.
func (d *Device) CreateBindingSet(layout types.BindingLayoutDesc) (*BindingSet, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	hasTable := false
	for _, it := range layout.Items {
		if it.Kind != types.ViewKindPushConstants && it.Kind != types.ViewKindVolatileConstantBuffer {
			hasTable = true
			break
		}
	}

	var table *binding.Set
	if hasTable {
		var err error
		table, err = binding.NewSet(d.factory, layout)
		if err != nil {
			return nil, err
		}
	}

	return &BindingSet{device: d, layout: layout, table: table, volatile: make(map[uint32]*resource.Buffer)}, nil
}

// Bind authors a table slot: a texture/buffer SRV or UAV, a static
// constant buffer view, or a sampler.
func (bs *BindingSet) Bind(slot uint32, value BindValue) error {
	if bs.table == nil {
		return fmt.Errorf("rhi: binding set has no descriptor table slots")
	}
	return bs.table.Bind(slot, value.toInternal())
}

// BindVolatileConstantBuffer records buf as the current backing for
// slot's root CBV. The caller must still write to buf (CommandList.
// WriteBuffer) before any draw or dispatch that reads this binding set,
// or that call fails with ErrorKindUsageBug.
func (bs *BindingSet) BindVolatileConstantBuffer(slot uint32, buf *Buffer) error {
	for _, it := range bs.layout.Items {
		if it.Slot == slot && it.Kind == types.ViewKindVolatileConstantBuffer {
			bs.volatile[slot] = buf.inner
			return nil
		}
	}
	return fmt.Errorf("rhi: slot %d is not declared as a volatile constant buffer in this layout", slot)
}

// Destroy releases this set's descriptor-table slots.
func (bs *BindingSet) Destroy() {
	if bs.table != nil {
		bs.table.Destroy()
	}
}
