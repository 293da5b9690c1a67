// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/hal/vulkan/vk"
)

// Backend opens a Vulkan-backed hal.Device. It loads the platform Vulkan
// loader library on construction, mirroring the teacher's api_linux.go
// lazy-init-on-first-use shape but doing the load eagerly since this RHI
// opens exactly one device per process.
type Backend struct {
	log *slog.Logger
}

var _ hal.Backend = (*Backend)(nil)

// New loads the Vulkan loader and returns a Backend ready to open a
// device. log defaults to slog.Default() when nil.
func New(log *slog.Logger) (*Backend, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan: %w", err)
	}
	return &Backend{log: log}, nil
}

func (b *Backend) Name() string { return "vulkan" }

func (b *Backend) OpenDevice() (hal.Device, error) {
	cmds := &vk.Commands{}
	cmds.LoadGlobal()

	appInfo := vk.ApplicationInfo{
		SType:      vk.StructureTypeApplicationInfo,
		APIVersion: (1 << 22) | (2 << 12), // VK_API_VERSION_1_2 packed form
	}
	instanceInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}
	instance, result, err := cmds.CreateInstance(&instanceInfo)
	if err != nil {
		return nil, fmt.Errorf("vulkan: create instance: %w", err)
	}
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: create instance: %w", result)
	}
	cmds.LoadInstance(instance)

	physicalDevices, err := cmds.EnumeratePhysicalDevices(instance)
	if err != nil {
		return nil, fmt.Errorf("vulkan: enumerate physical devices: %w", err)
	}
	if len(physicalDevices) == 0 {
		return nil, fmt.Errorf("vulkan: no physical devices available")
	}
	physicalDevice, familyIndex, err := selectDeviceAndQueueFamily(cmds, physicalDevices)
	if err != nil {
		return nil, err
	}

	priority := float32(1.0)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: familyIndex,
		QueueCount:       1,
		PQueuePriorities: &priority,
	}
	deviceInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    &queueInfo,
	}
	device, result, err := cmds.CreateDevice(physicalDevice, &deviceInfo)
	if err != nil {
		return nil, fmt.Errorf("vulkan: create device: %w", err)
	}
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: create device: %w", result)
	}
	cmds.LoadDevice(device)

	memProps := cmds.GetPhysicalDeviceMemoryProperties(physicalDevice)
	nativeQueue := cmds.GetDeviceQueue(device, familyIndex, 0)

	d := &Device{
		log:             b.log,
		cmds:            cmds,
		physicalDevice:  physicalDevice,
		handle:          device,
		memProps:        memProps,
		queueFamily:     familyIndex,
		mappedPointers:  map[vk.DeviceMemory]unsafe.Pointer{},
	}
	d.queue = newQueue(d, nativeQueue, hal.QueueTypeGraphics)
	return d, nil
}

// selectDeviceAndQueueFamily picks the first physical device exposing a
// queue family with both graphics and compute bits set, the same
// single-universal-queue assumption internal/queue.State's three
// QueueType values are layered over (spec.md §4.3 treats queue identity
// as the backend's concern).
func selectDeviceAndQueueFamily(cmds *vk.Commands, devices []vk.PhysicalDevice) (vk.PhysicalDevice, uint32, error) {
	const graphicsBit = 1
	const computeBit = 2
	for _, pd := range devices {
		families := cmds.GetPhysicalDeviceQueueFamilyProperties(pd)
		for i, f := range families {
			if f.QueueFlags&graphicsBit != 0 && f.QueueFlags&computeBit != 0 {
				return pd, uint32(i), nil
			}
		}
	}
	return 0, 0, fmt.Errorf("vulkan: no queue family supports graphics and compute")
}
