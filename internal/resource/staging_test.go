package resource

import (
	"testing"

	"github.com/CellarCordial/FTS-Render-sub002/hal/null"
	"github.com/CellarCordial/FTS-Render-sub002/internal/upload"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// StageTextureUpload must round the row pitch up to the placement
// alignment (spec.md §4.4 "writeTexture ... rounded up to the row-pitch
// alignment"; Scenario B expects the suballocated region to be at least
// 256 bytes for a tightly-packed 4x4 R8 upload whose raw row pitch is 4).
func TestStageTextureUploadRoundsRowPitchToAlignment(t *testing.T) {
	device, err := null.New().OpenDevice()
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	factory, err := NewFactory(device)
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	uploads := upload.NewManager(device, upload.DefaultChunkSize)

	tex, err := factory.CreateTexture(types.TextureDesc{
		Name: "src", Width: 4, Height: 4, Depth: 1, ArraySize: 1, MipLevels: 1, SampleCount: 1,
		Format: types.FormatR8Unorm, Dimension: types.TextureDimension2D, Usage: types.TextureUsageShaderResource,
		InitialState: types.ResourceStatePixelShaderResource,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	region, err := StageTextureUpload(uploads, tex, 0)
	if err != nil {
		t.Fatalf("StageTextureUpload: %v", err)
	}
	if region.RowPitch != types.TextureRowPitchAlignment {
		t.Fatalf("expected row pitch rounded up to %d, got %d", types.TextureRowPitchAlignment, region.RowPitch)
	}
	if got := uint64(len(region.Data)); got < 256 {
		t.Fatalf("expected a suballocated region of at least 256 bytes, got %d", got)
	}
}
