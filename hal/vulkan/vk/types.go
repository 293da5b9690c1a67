// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk is a trimmed, goffi-backed Vulkan binding covering only the
// entry points hal/vulkan needs: instance/device/queue setup, buffer and
// image objects, fences, command pools/buffers, and the handful of
// vkCmd* recording calls the RHI command list drives. It follows the
// calling convention and handle/struct shapes of a generated Vulkan
// binding without attempting to cover the full API surface.
package vk

import "unsafe"

type (
	Instance            uint64
	PhysicalDevice      uint64
	Device              uint64
	Queue               uint64
	CommandPool         uint64
	CommandBuffer       uint64
	Buffer              uint64
	Image               uint64
	ImageView           uint64
	DeviceMemory        uint64
	Fence               uint64
	Semaphore           uint64
	ShaderModule        uint64
	PipelineLayout      uint64
	Pipeline            uint64
	DescriptorSetLayout uint64
	DescriptorPool      uint64
	DescriptorSet       uint64
	Sampler             uint64
)

type Result int32

const Success Result = 0

func (r Result) Error() string {
	return "vulkan: result " + itoa(int32(r))
}

func itoa(v int32) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Structure types for the subset of CreateInfo structs below.
const (
	StructureTypeApplicationInfo              uint32 = 0
	StructureTypeInstanceCreateInfo            uint32 = 1
	StructureTypeDeviceQueueCreateInfo         uint32 = 2
	StructureTypeDeviceCreateInfo              uint32 = 3
	StructureTypeSubmitInfo                    uint32 = 4
	StructureTypeMemoryAllocateInfo            uint32 = 5
	StructureTypeFenceCreateInfo                uint32 = 8
	StructureTypeSemaphoreCreateInfo            uint32 = 9
	StructureTypeBufferCreateInfo               uint32 = 12
	StructureTypeImageCreateInfo                uint32 = 14
	StructureTypeImageViewCreateInfo            uint32 = 15
	StructureTypeCommandPoolCreateInfo           uint32 = 39
	StructureTypeCommandBufferAllocateInfo       uint32 = 40
	StructureTypeCommandBufferBeginInfo          uint32 = 42
	StructureTypeMemoryBarrier                   uint32 = 46
	StructureTypeBufferMemoryBarrier             uint32 = 44
	StructureTypeImageMemoryBarrier              uint32 = 45
	StructureTypeShaderModuleCreateInfo          uint32 = 16
	StructureTypePipelineLayoutCreateInfo        uint32 = 30
	StructureTypeDescriptorPoolCreateInfo        uint32 = 33
	StructureTypeDescriptorSetAllocateInfo       uint32 = 34
	StructureTypeDescriptorSetLayoutCreateInfo   uint32 = 32
)

const (
	SharingModeExclusive  uint32 = 0
	SharingModeConcurrent uint32 = 1

	CommandBufferLevelPrimary uint32 = 0

	PipelineBindPointGraphics uint32 = 0
	PipelineBindPointCompute  uint32 = 1

	ImageLayoutUndefined     uint32 = 0
	ImageLayoutGeneral       uint32 = 1
	ImageLayoutColorAttachmentOptimal uint32 = 2
	ImageLayoutTransferSrcOptimal     uint32 = 6
	ImageLayoutTransferDstOptimal     uint32 = 7
)

type ApplicationInfo struct {
	SType              uint32
	_                  uint32
	PNext              unsafe.Pointer
	PApplicationName   unsafe.Pointer
	ApplicationVersion uint32
	PEngineName        unsafe.Pointer
	EngineVersion      uint32
	APIVersion         uint32
}

type InstanceCreateInfo struct {
	SType                   uint32
	_                       uint32
	PNext                   unsafe.Pointer
	Flags                   uint32
	_                       uint32
	PApplicationInfo        *ApplicationInfo
	EnabledLayerCount       uint32
	_                       uint32
	PpEnabledLayerNames     unsafe.Pointer
	EnabledExtensionCount   uint32
	_                       uint32
	PpEnabledExtensionNames unsafe.Pointer
}

type DeviceQueueCreateInfo struct {
	SType            uint32
	_                uint32
	PNext            unsafe.Pointer
	Flags            uint32
	QueueFamilyIndex uint32
	QueueCount       uint32
	_                uint32
	PQueuePriorities *float32
}

type DeviceCreateInfo struct {
	SType                   uint32
	_                       uint32
	PNext                   unsafe.Pointer
	Flags                   uint32
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       *DeviceQueueCreateInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     unsafe.Pointer
	EnabledExtensionCount   uint32
	_                       uint32
	PpEnabledExtensionNames unsafe.Pointer
	PEnabledFeatures        unsafe.Pointer
}

type QueueFamilyProperties struct {
	QueueFlags                  uint32
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity [3]uint32
}

type MemoryType struct {
	PropertyFlags uint32
	HeapIndex     uint32
}

type MemoryHeap struct {
	Size  uint64
	Flags uint32
	_     uint32
}

const maxMemoryTypes = 32
const maxMemoryHeaps = 16

type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	_               uint32
	MemoryTypes     [maxMemoryTypes]MemoryType
	MemoryHeapCount uint32
	_               uint32
	MemoryHeaps     [maxMemoryHeaps]MemoryHeap
}

const (
	MemoryPropertyDeviceLocal  uint32 = 1 << 0
	MemoryPropertyHostVisible  uint32 = 1 << 1
	MemoryPropertyHostCoherent uint32 = 1 << 2
)

type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
	_              uint32
}

type MemoryAllocateInfo struct {
	SType           uint32
	_               uint32
	PNext           unsafe.Pointer
	AllocationSize  uint64
	MemoryTypeIndex uint32
	_               uint32
}

const (
	BufferUsageTransferSrc        uint32 = 1 << 0
	BufferUsageTransferDst        uint32 = 1 << 1
	BufferUsageUniformBuffer      uint32 = 1 << 4
	BufferUsageStorageBuffer      uint32 = 1 << 5
	BufferUsageIndexBuffer        uint32 = 1 << 6
	BufferUsageVertexBuffer       uint32 = 1 << 7
	BufferUsageIndirectBuffer     uint32 = 1 << 8
	BufferUsageShaderDeviceAddress uint32 = 1 << 17
)

type BufferCreateInfo struct {
	SType                 uint32
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 uint32
	_                     uint32
	Size                  uint64
	Usage                 uint32
	SharingMode           uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   unsafe.Pointer
}

type Extent3D struct{ Width, Height, Depth uint32 }

const (
	ImageTypeDim1D uint32 = 0
	ImageTypeDim2D uint32 = 1
	ImageTypeDim3D uint32 = 2

	ImageUsageTransferSrc          uint32 = 1 << 0
	ImageUsageTransferDst          uint32 = 1 << 1
	ImageUsageSampled              uint32 = 1 << 2
	ImageUsageStorage              uint32 = 1 << 3
	ImageUsageColorAttachment      uint32 = 1 << 4
	ImageUsageDepthStencilAttachment uint32 = 1 << 5
)

type ImageCreateInfo struct {
	SType                 uint32
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 uint32
	ImageType             uint32
	Format                uint32
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               uint32
	Tiling                uint32
	Usage                 uint32
	SharingMode           uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   unsafe.Pointer
	InitialLayout         uint32
}

type FenceCreateInfo struct {
	SType uint32
	_     uint32
	PNext unsafe.Pointer
	Flags uint32
	_     uint32
}

const FenceCreateSignaled uint32 = 1

type SemaphoreCreateInfo struct {
	SType uint32
	_     uint32
	PNext unsafe.Pointer
	Flags uint32
	_     uint32
}

type CommandPoolCreateInfo struct {
	SType            uint32
	_                uint32
	PNext            unsafe.Pointer
	Flags            uint32
	QueueFamilyIndex uint32
}

const CommandPoolCreateResetCommandBuffer uint32 = 1 << 1

type CommandBufferAllocateInfo struct {
	SType              uint32
	_                  uint32
	PNext              unsafe.Pointer
	CommandPool        CommandPool
	Level              uint32
	CommandBufferCount uint32
}

type CommandBufferBeginInfo struct {
	SType           uint32
	_               uint32
	PNext           unsafe.Pointer
	Flags           uint32
	_               uint32
	PInheritanceInfo unsafe.Pointer
}

type SubmitInfo struct {
	SType                uint32
	_                    uint32
	PNext                unsafe.Pointer
	WaitSemaphoreCount   uint32
	_                    uint32
	PWaitSemaphores      unsafe.Pointer
	PWaitDstStageMask    unsafe.Pointer
	CommandBufferCount   uint32
	_                    uint32
	PCommandBuffers      unsafe.Pointer
	SignalSemaphoreCount uint32
	_                    uint32
	PSignalSemaphores    unsafe.Pointer
}

type BufferCopy struct {
	SrcOffset, DstOffset, Size uint64
}

type MemoryBarrier struct {
	SType         uint32
	_             uint32
	PNext         unsafe.Pointer
	SrcAccessMask uint32
	DstAccessMask uint32
}

type ImageSubresourceRange struct {
	AspectMask     uint32
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

const ImageAspectColor uint32 = 1

type ImageMemoryBarrier struct {
	SType               uint32
	_                   uint32
	PNext               unsafe.Pointer
	SrcAccessMask       uint32
	DstAccessMask       uint32
	OldLayout           uint32
	NewLayout           uint32
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
}

type ClearColorValue [4]float32

type Offset2D struct{ X, Y int32 }
type Extent2D struct{ Width, Height uint32 }
type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

type Viewport struct {
	X, Y, Width, Height       float32
	MinDepth, MaxDepth        float32
}

type ShaderModuleCreateInfo struct {
	SType    uint32
	_        uint32
	PNext    unsafe.Pointer
	Flags    uint32
	CodeSize uintptr
	PCode    unsafe.Pointer
}

type PushConstantRange struct {
	StageFlags uint32
	Offset     uint32
	Size       uint32
}

type PipelineLayoutCreateInfo struct {
	SType                  uint32
	_                      uint32
	PNext                  unsafe.Pointer
	Flags                  uint32
	SetLayoutCount         uint32
	PSetLayouts            unsafe.Pointer
	PushConstantRangeCount uint32
	PPushConstantRanges    *PushConstantRange
}
