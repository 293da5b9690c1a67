package resource

import (
	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/upload"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// StagingRegion is a CPU-writable region suballocated from the upload
// ring, ready to be the source of a CopyBufferToTexture or
// CopyBufferRegion command. internal/command pairs this with a
// ResourceBarrier to CopyDest on the destination before recording the
// copy.
type StagingRegion struct {
	Buffer   hal.Buffer
	Offset   uint64
	Data     []byte
	RowPitch uint32
	RowCount uint32
}

// StageTextureUpload suballocates a region sized for one subresource's
// worth of row-major pixel data and returns it for the caller to fill in
// before recording a CopyBufferToTexture.
func StageTextureUpload(mgr *upload.Manager, tex *Texture, mipLevel uint32) (StagingRegion, error) {
	desc := tex.Desc()
	info := types.GetFormatInfo(desc.Format)

	width := maxU32(desc.Width>>mipLevel, 1)
	height := maxU32(desc.Height>>mipLevel, 1)
	rowPitch := types.AlignRowPitch(width * info.BytesPerPixel)
	size := uint64(rowPitch) * uint64(height)

	buf, offset, data, err := mgr.Suballocate(size, 512)
	if err != nil {
		return StagingRegion{}, err
	}
	return StagingRegion{Buffer: buf, Offset: offset, Data: data, RowPitch: rowPitch, RowCount: height}, nil
}

// StageBufferUpload suballocates a region for a plain buffer write.
func StageBufferUpload(mgr *upload.Manager, size uint64) (StagingRegion, error) {
	buf, offset, data, err := mgr.Suballocate(size, 16)
	if err != nil {
		return StagingRegion{}, err
	}
	return StagingRegion{Buffer: buf, Offset: offset, Data: data}, nil
}
