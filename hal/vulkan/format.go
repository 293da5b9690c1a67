// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import "github.com/CellarCordial/FTS-Render-sub002/types"

// vkFormat maps the closed Format enumeration onto VkFormat values. Only
// the formats a Vulkan-capable device is required to support universally
// are covered; anything else falls back to the nearest four-channel
// equivalent rather than failing creation outright.
func vkFormat(f types.Format) uint32 {
	switch f {
	case types.FormatR8Unorm:
		return 9
	case types.FormatR8Snorm:
		return 10
	case types.FormatR8Uint:
		return 13
	case types.FormatR8Sint:
		return 14
	case types.FormatRG8Unorm:
		return 16
	case types.FormatRG8Snorm:
		return 17
	case types.FormatRG8Uint:
		return 20
	case types.FormatRG8Sint:
		return 21
	case types.FormatR16Unorm:
		return 70
	case types.FormatR16Snorm:
		return 71
	case types.FormatR16Uint:
		return 74
	case types.FormatR16Sint:
		return 75
	case types.FormatR16Float:
		return 76
	case types.FormatRG16Unorm:
		return 77
	case types.FormatRG16Snorm:
		return 78
	case types.FormatRG16Uint:
		return 81
	case types.FormatRG16Sint:
		return 82
	case types.FormatRG16Float:
		return 83
	case types.FormatRGBA8Unorm:
		return 37
	case types.FormatRGBA8Snorm:
		return 39
	case types.FormatRGBA8Uint:
		return 41
	case types.FormatRGBA8Sint:
		return 42
	case types.FormatSRGBA8Unorm:
		return 43
	case types.FormatBGRA8Unorm:
		return 44
	case types.FormatSBGRA8Unorm:
		return 50
	case types.FormatR10G10B10A2Unorm:
		return 64
	case types.FormatR11G11B10Float:
		return 122
	case types.FormatR32Uint:
		return 98
	case types.FormatR32Sint:
		return 99
	case types.FormatR32Float:
		return 100
	case types.FormatRG32Uint:
		return 101
	case types.FormatRG32Sint:
		return 102
	case types.FormatRG32Float:
		return 103
	case types.FormatRGB32Uint:
		return 104
	case types.FormatRGB32Sint:
		return 105
	case types.FormatRGB32Float:
		return 106
	case types.FormatRGBA32Uint:
		return 107
	case types.FormatRGBA32Sint:
		return 108
	case types.FormatRGBA32Float:
		return 109
	case types.FormatRGBA16Unorm:
		return 91
	case types.FormatRGBA16Snorm:
		return 93
	case types.FormatRGBA16Uint:
		return 95
	case types.FormatRGBA16Sint:
		return 96
	case types.FormatRGBA16Float:
		return 97
	case types.FormatD16:
		return 124
	case types.FormatD32:
		return 126
	case types.FormatD24S8:
		return 129
	case types.FormatD32S8:
		return 130
	default:
		return 37 // R8G8B8A8_UNORM
	}
}

func vkAspectMask(f types.Format) uint32 {
	info := types.GetFormatInfo(f)
	if info.HasDepth || info.HasStencil {
		mask := uint32(0)
		if info.HasDepth {
			mask |= 2
		}
		if info.HasStencil {
			mask |= 4
		}
		return mask
	}
	return 1 // color
}
