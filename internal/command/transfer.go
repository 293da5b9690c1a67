package command

import (
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// WriteBuffer suballocates upload space, copies data into it, and records
// the write into buf. Volatile constant buffers never get a barrier or a
// copy command: the GPU reads straight out of the upload chunk, so
// writeBuffer only has to remember the chunk's address for the next
// BindVolatileConstantBuffer / SetGraphicsState call to patch in (spec.md
// §4.4 "writeBuffer").
func (r *Recorder) WriteBuffer(buf *resource.Buffer, data []byte, offset uint64) error {
	if err := r.requireOpen("WriteBuffer"); err != nil {
		return err
	}

	region, err := resource.StageBufferUpload(r.uploads, uint64(len(data)))
	if err != nil {
		return err
	}
	copy(region.Data, data)

	if buf.Desc().IsVolatile {
		addr := r.device.GPUAddress(region.Buffer, region.Offset)
		r.volatileWrites[buf] = addr
		r.anyVolatileCBWrites = true
		r.factory.InvalidateVolatileView(buf)
		return nil
	}

	r.factory.Tracker().RequireBufferState(buf.Native(), types.ResourceStateCopyDest)
	r.FlushBarriers()
	r.list.CopyBufferRegion(buf.Native(), offset, region.Buffer, region.Offset, uint64(len(data)))
	return nil
}

// WriteTexture suballocates enough upload space for one subresource's
// row-major pixel data, row-copies data in respecting the staging
// region's row pitch, and issues a placed-footprint copy into dst
// (spec.md §4.4 "writeTexture").
func (r *Recorder) WriteTexture(dst *resource.Texture, mipLevel, arraySlice uint32, data []byte, srcRowPitch uint32) error {
	if err := r.requireOpen("WriteTexture"); err != nil {
		return err
	}

	region, err := resource.StageTextureUpload(r.uploads, dst, mipLevel)
	if err != nil {
		return err
	}

	if srcRowPitch == region.RowPitch {
		copy(region.Data, data)
	} else {
		// region.RowPitch is rounded up to the placement-footprint
		// alignment and is almost always wider than srcRowPitch, so each
		// row only ever has srcRowPitch real bytes to copy; the rest of
		// the destination row is padding the backend's placed-footprint
		// copy ignores.
		for row := uint32(0); row < region.RowCount; row++ {
			srcStart := row * srcRowPitch
			dstStart := row * region.RowPitch
			n := srcRowPitch
			if srcStart+n > uint32(len(data)) {
				n = uint32(len(data)) - srcStart
			}
			copy(region.Data[dstStart:dstStart+n], data[srcStart:srcStart+n])
		}
	}

	subresource := arraySlice*dst.Desc().MipLevels + mipLevel
	return r.CopyBufferToTexture(dst, subresource, region)
}
