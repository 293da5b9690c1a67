package types

// Format is the closed enumeration of pixel/vertex formats the RHI
// understands. The ordering matches the table in formatInfos and must
// never be reordered — GetFormatInfo indexes it directly.
type Format uint32

const (
	FormatUnknown Format = iota

	FormatR8Uint
	FormatR8Sint
	FormatR8Unorm
	FormatR8Snorm
	FormatRG8Uint
	FormatRG8Sint
	FormatRG8Unorm
	FormatRG8Snorm
	FormatR16Uint
	FormatR16Sint
	FormatR16Unorm
	FormatR16Snorm
	FormatR16Float
	FormatBGRA4Unorm
	FormatB5G6R5Unorm
	FormatB5G5R5A1Unorm
	FormatRGBA8Uint
	FormatRGBA8Sint
	FormatRGBA8Unorm
	FormatRGBA8Snorm
	FormatBGRA8Unorm
	FormatSRGBA8Unorm
	FormatSBGRA8Unorm
	FormatR10G10B10A2Unorm
	FormatR11G11B10Float
	FormatRG16Uint
	FormatRG16Sint
	FormatRG16Unorm
	FormatRG16Snorm
	FormatRG16Float
	FormatR32Uint
	FormatR32Sint
	FormatR32Float
	FormatRGBA16Uint
	FormatRGBA16Sint
	FormatRGBA16Float
	FormatRGBA16Unorm
	FormatRGBA16Snorm
	FormatRG32Uint
	FormatRG32Sint
	FormatRG32Float
	FormatRGB32Uint
	FormatRGB32Sint
	FormatRGB32Float
	FormatRGBA32Uint
	FormatRGBA32Sint
	FormatRGBA32Float

	FormatD16
	FormatD24S8
	FormatX24G8Uint
	FormatD32
	FormatD32S8
	FormatX32G8Uint

	formatCount
)

// FormatKind classifies how a format's bits should be interpreted by
// shaders and fixed-function blend/depth units.
type FormatKind uint8

const (
	FormatKindInteger FormatKind = iota
	FormatKindFloat
	FormatKindNormalized
	FormatKindDepthStencil
)

// FormatInfo carries the per-format metadata spec.md §3 requires:
// byte size, kind, channel presence, signedness and sRGB-ness.
type FormatInfo struct {
	Format      Format
	Name        string
	BytesPerPixel uint32
	Kind        FormatKind
	HasRed      bool
	HasGreen    bool
	HasBlue     bool
	HasAlpha    bool
	HasDepth    bool
	HasStencil  bool
	IsSigned    bool
	IsSRGB      bool
}

// formatInfos must stay in Format-enum order: GetFormatInfo indexes it
// directly rather than searching, mirroring format.cpp's format_infos table.
var formatInfos = [...]FormatInfo{
	{FormatUnknown, "UNKNOWN", 0, FormatKindInteger, false, false, false, false, false, false, false, false},

	{FormatR8Uint, "R8_UINT", 1, FormatKindInteger, true, false, false, false, false, false, false, false},
	{FormatR8Sint, "R8_SINT", 1, FormatKindInteger, true, false, false, false, false, false, true, false},
	{FormatR8Unorm, "R8_UNORM", 1, FormatKindNormalized, true, false, false, false, false, false, false, false},
	{FormatR8Snorm, "R8_SNORM", 1, FormatKindNormalized, true, false, false, false, false, false, true, false},
	{FormatRG8Uint, "RG8_UINT", 2, FormatKindInteger, true, true, false, false, false, false, false, false},
	{FormatRG8Sint, "RG8_SINT", 2, FormatKindInteger, true, true, false, false, false, false, true, false},
	{FormatRG8Unorm, "RG8_UNORM", 2, FormatKindNormalized, true, true, false, false, false, false, false, false},
	{FormatRG8Snorm, "RG8_SNORM", 2, FormatKindNormalized, true, true, false, false, false, false, true, false},
	{FormatR16Uint, "R16_UINT", 2, FormatKindInteger, true, false, false, false, false, false, false, false},
	{FormatR16Sint, "R16_SINT", 2, FormatKindInteger, true, false, false, false, false, false, true, false},
	{FormatR16Unorm, "R16_UNORM", 2, FormatKindNormalized, true, false, false, false, false, false, false, false},
	{FormatR16Snorm, "R16_SNORM", 2, FormatKindNormalized, true, false, false, false, false, false, true, false},
	{FormatR16Float, "R16_FLOAT", 2, FormatKindFloat, true, false, false, false, false, false, true, false},
	{FormatBGRA4Unorm, "BGRA4_UNORM", 2, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatB5G6R5Unorm, "B5G6R5_UNORM", 2, FormatKindNormalized, true, true, true, false, false, false, false, false},
	{FormatB5G5R5A1Unorm, "B5G5R5A1_UNORM", 2, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatRGBA8Uint, "RGBA8_UINT", 4, FormatKindInteger, true, true, true, true, false, false, false, false},
	{FormatRGBA8Sint, "RGBA8_SINT", 4, FormatKindInteger, true, true, true, true, false, false, true, false},
	{FormatRGBA8Unorm, "RGBA8_UNORM", 4, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatRGBA8Snorm, "RGBA8_SNORM", 4, FormatKindNormalized, true, true, true, true, false, false, true, false},
	{FormatBGRA8Unorm, "BGRA8_UNORM", 4, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatSRGBA8Unorm, "SRGBA8_UNORM", 4, FormatKindNormalized, true, true, true, true, false, false, false, true},
	{FormatSBGRA8Unorm, "SBGRA8_UNORM", 4, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatR10G10B10A2Unorm, "R10G10B10A2_UNORM", 4, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatR11G11B10Float, "R11G11B10_FLOAT", 4, FormatKindFloat, true, true, true, false, false, false, false, false},
	{FormatRG16Uint, "RG16_UINT", 4, FormatKindInteger, true, true, false, false, false, false, false, false},
	{FormatRG16Sint, "RG16_SINT", 4, FormatKindInteger, true, true, false, false, false, false, true, false},
	{FormatRG16Unorm, "RG16_UNORM", 4, FormatKindNormalized, true, true, false, false, false, false, false, false},
	{FormatRG16Snorm, "RG16_SNORM", 4, FormatKindNormalized, true, true, false, false, false, false, true, false},
	{FormatRG16Float, "RG16_FLOAT", 4, FormatKindFloat, true, true, false, false, false, false, true, false},
	{FormatR32Uint, "R32_UINT", 4, FormatKindInteger, true, false, false, false, false, false, false, false},
	{FormatR32Sint, "R32_SINT", 4, FormatKindInteger, true, false, false, false, false, false, true, false},
	{FormatR32Float, "R32_FLOAT", 4, FormatKindFloat, true, false, false, false, false, false, true, false},
	{FormatRGBA16Uint, "RGBA16_UINT", 8, FormatKindInteger, true, true, true, true, false, false, false, false},
	{FormatRGBA16Sint, "RGBA16_SINT", 8, FormatKindInteger, true, true, true, true, false, false, true, false},
	{FormatRGBA16Float, "RGBA16_FLOAT", 8, FormatKindFloat, true, true, true, true, false, false, true, false},
	{FormatRGBA16Unorm, "RGBA16_UNORM", 8, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatRGBA16Snorm, "RGBA16_SNORM", 8, FormatKindNormalized, true, true, true, true, false, false, true, false},
	{FormatRG32Uint, "RG32_UINT", 8, FormatKindInteger, true, true, false, false, false, false, false, false},
	{FormatRG32Sint, "RG32_SINT", 8, FormatKindInteger, true, true, false, false, false, false, true, false},
	{FormatRG32Float, "RG32_FLOAT", 8, FormatKindFloat, true, true, false, false, false, false, true, false},
	{FormatRGB32Uint, "RGB32_UINT", 12, FormatKindInteger, true, true, true, false, false, false, false, false},
	{FormatRGB32Sint, "RGB32_SINT", 12, FormatKindInteger, true, true, true, false, false, false, true, false},
	{FormatRGB32Float, "RGB32_FLOAT", 12, FormatKindFloat, true, true, true, false, false, false, true, false},
	{FormatRGBA32Uint, "RGBA32_UINT", 16, FormatKindInteger, true, true, true, true, false, false, false, false},
	{FormatRGBA32Sint, "RGBA32_SINT", 16, FormatKindInteger, true, true, true, true, false, false, true, false},
	{FormatRGBA32Float, "RGBA32_FLOAT", 16, FormatKindFloat, true, true, true, true, false, false, true, false},

	{FormatD16, "D16", 2, FormatKindDepthStencil, false, false, false, false, true, false, false, false},
	{FormatD24S8, "D24S8", 4, FormatKindDepthStencil, false, false, false, false, true, true, false, false},
	{FormatX24G8Uint, "X24G8_UINT", 4, FormatKindInteger, false, false, false, false, false, true, false, false},
	{FormatD32, "D32", 4, FormatKindDepthStencil, false, false, false, false, true, false, false, false},
	{FormatD32S8, "D32S8", 8, FormatKindDepthStencil, false, false, false, false, true, true, false, false},
	{FormatX32G8Uint, "X32G8_UINT", 8, FormatKindInteger, false, false, false, false, false, true, false, false},
}

func init() {
	if len(formatInfos) != int(formatCount) {
		panic("types: formatInfos table out of sync with Format enum")
	}
	for i, info := range formatInfos {
		if info.Format != Format(i) {
			panic("types: formatInfos row out of order at index " + info.Name)
		}
	}
}

// GetFormatInfo returns the metadata row for format. Unknown/out-of-range
// values fall back to FormatUnknown, mirroring get_format_info's bounds
// check in the original implementation.
func GetFormatInfo(format Format) FormatInfo {
	if format >= formatCount {
		return formatInfos[FormatUnknown]
	}
	return formatInfos[format]
}

// IsDepthStencil reports whether format carries a depth and/or stencil
// aspect.
func (f Format) IsDepthStencil() bool {
	info := GetFormatInfo(f)
	return info.HasDepth || info.HasStencil
}

// BlockSize is an alias for the per-pixel byte size; the RHI does not
// model block-compressed formats, so this equals BytesPerPixel.
func (f Format) BlockSize() uint32 {
	return GetFormatInfo(f).BytesPerPixel
}
