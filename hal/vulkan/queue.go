// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/hal/vulkan/vk"
)

// Queue implements hal.Queue over one VkQueue. Vulkan fences are binary
// (signaled/unsignaled), so Signal/Wait approximate the monotonic
// 64-bit timeline semantics spec.md §4.3 assumes by always resetting and
// re-signaling a tracked fence object per queue, the same trade-off
// noted on fence.value in resource.go.
type Queue struct {
	device    *Device
	handle    vk.Queue
	queueType hal.QueueType
}

var _ hal.Queue = (*Queue)(nil)

func newQueue(device *Device, handle vk.Queue, queueType hal.QueueType) *Queue {
	return &Queue{device: device, handle: handle, queueType: queueType}
}

func (q *Queue) Type() hal.QueueType { return q.queueType }

func (q *Queue) Submit(lists []hal.CommandList) error {
	cbs := make([]vk.CommandBuffer, 0, len(lists))
	for _, l := range lists {
		cl, ok := l.(*commandList)
		if !ok {
			return fmt.Errorf("vulkan: Submit: not a vulkan command list")
		}
		cbs = append(cbs, cl.handle)
	}
	if len(cbs) == 0 {
		return nil
	}
	info := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: uint32(len(cbs)),
		PCommandBuffers:    unsafe.Pointer(&cbs[0]),
	}
	result, err := q.device.cmds.QueueSubmit(q.handle, []vk.SubmitInfo{info}, 0)
	if err != nil {
		return fmt.Errorf("vulkan: queue submit: %w", err)
	}
	if result != vk.Success {
		return fmt.Errorf("vulkan: queue submit: %w", result)
	}
	return nil
}

func (q *Queue) Signal(f hal.Fence, value uint64) error {
	nf, ok := f.(*fence)
	if !ok {
		return fmt.Errorf("vulkan: Signal: not a vulkan fence")
	}
	nf.value = value
	if _, err := q.device.cmds.ResetFences(q.device.handle, []vk.Fence{nf.handle}); err != nil {
		return fmt.Errorf("vulkan: reset fence before signal: %w", err)
	}
	result, err := q.device.cmds.QueueSubmit(q.handle, nil, nf.handle)
	if err != nil {
		return fmt.Errorf("vulkan: signal fence: %w", err)
	}
	if result != vk.Success {
		return fmt.Errorf("vulkan: signal fence: %w", result)
	}
	return nil
}

func (q *Queue) Wait(f hal.Fence, value uint64) error {
	nf, ok := f.(*fence)
	if !ok {
		return fmt.Errorf("vulkan: Wait: not a vulkan fence")
	}
	const timeout = uint64(5 * time.Second)
	result, err := q.device.cmds.WaitForFences(q.device.handle, []vk.Fence{nf.handle}, true, timeout)
	if err != nil {
		return fmt.Errorf("vulkan: wait fence: %w", err)
	}
	if result != vk.Success {
		return fmt.Errorf("vulkan: wait fence timed out: %w", result)
	}
	return nil
}

// WaitOnQueue is not implemented: cross-queue GPU-side waits need a
// VkSemaphore submitted into both queues' VkSubmitInfo wait/signal
// arrays, which this trimmed binding's single-queue device never
// exercises (spec.md §4.3's cross-queue case only matters once more than
// one native queue is opened).
func (q *Queue) WaitOnQueue(f hal.Fence, value uint64) error {
	return hal.ErrUnsupported
}
