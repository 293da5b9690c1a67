// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vulkan implements hal.Backend against the Vulkan 1.x loader
// through the goffi-backed bindings in hal/vulkan/vk. It covers the
// structural surface of hal.Device/hal.Queue/hal.CommandList —
// instance/device/queue setup, buffer and image lifetime, fences,
// command-buffer recording and submission. CreateGraphicsPipeline,
// CreateComputePipeline and Queue.WaitOnQueue return hal.ErrUnsupported,
// and several commands (texture copies, depth/stencil clears, queries)
// record nothing (see DESIGN.md).
package vulkan
