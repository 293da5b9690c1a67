// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	tU64 = types.UInt64TypeDescriptor
	tPtr = types.PointerTypeDescriptor
	tU32 = types.UInt32TypeDescriptor
)

// Commands holds every instance/device-level function pointer this
// backend resolves, loaded once in Instance/Device setup the same way
// the teacher's vk.Commands.LoadInstance/LoadDevice do, just over a
// much smaller entry-point set.
type Commands struct {
	getDeviceProcAddr unsafe.Pointer

	createInstance        unsafe.Pointer
	destroyInstance        unsafe.Pointer
	enumeratePhysicalDevices unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties unsafe.Pointer
	getPhysicalDeviceMemoryProperties      unsafe.Pointer
	createDevice          unsafe.Pointer
	destroyDevice          unsafe.Pointer
	getDeviceQueue        unsafe.Pointer

	createBuffer              unsafe.Pointer
	destroyBuffer             unsafe.Pointer
	getBufferMemoryRequirements unsafe.Pointer
	allocateMemory            unsafe.Pointer
	freeMemory                unsafe.Pointer
	bindBufferMemory          unsafe.Pointer
	mapMemory                 unsafe.Pointer
	unmapMemory                unsafe.Pointer

	createImage unsafe.Pointer
	destroyImage unsafe.Pointer
	getImageMemoryRequirements unsafe.Pointer
	bindImageMemory unsafe.Pointer

	createFence unsafe.Pointer
	destroyFence unsafe.Pointer
	waitForFences unsafe.Pointer
	resetFences unsafe.Pointer
	getFenceStatus unsafe.Pointer

	createCommandPool unsafe.Pointer
	destroyCommandPool unsafe.Pointer
	resetCommandPool unsafe.Pointer
	allocateCommandBuffers unsafe.Pointer

	beginCommandBuffer unsafe.Pointer
	endCommandBuffer   unsafe.Pointer

	cmdCopyBuffer       unsafe.Pointer
	cmdPipelineBarrier  unsafe.Pointer
	cmdBindPipeline     unsafe.Pointer
	cmdBindVertexBuffers unsafe.Pointer
	cmdBindIndexBuffer  unsafe.Pointer
	cmdSetViewport      unsafe.Pointer
	cmdSetScissor       unsafe.Pointer
	cmdDraw             unsafe.Pointer
	cmdDrawIndexed      unsafe.Pointer
	cmdDispatch         unsafe.Pointer
	cmdPushConstants    unsafe.Pointer
	cmdClearColorImage  unsafe.Pointer

	queueSubmit unsafe.Pointer

	createShaderModule  unsafe.Pointer
	destroyShaderModule unsafe.Pointer
	createPipelineLayout unsafe.Pointer
	destroyPipelineLayout unsafe.Pointer
}

// LoadGlobal resolves entry points callable with a null instance
// (vkCreateInstance itself).
func (c *Commands) LoadGlobal() {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
}

// LoadInstance resolves every instance-level entry point, including
// vkGetDeviceProcAddr which subsequent device-level resolution uses.
func (c *Commands) LoadInstance(instance Instance) {
	get := func(name string) unsafe.Pointer { return GetInstanceProcAddr(instance, name) }
	c.destroyInstance = get("vkDestroyInstance")
	c.enumeratePhysicalDevices = get("vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceQueueFamilyProperties = get("vkGetPhysicalDeviceQueueFamilyProperties")
	c.getPhysicalDeviceMemoryProperties = get("vkGetPhysicalDeviceMemoryProperties")
	c.createDevice = get("vkCreateDevice")
	c.getDeviceProcAddr = get("vkGetDeviceProcAddr")
}

// LoadDevice resolves every device-level entry point through
// vkGetDeviceProcAddr, following each driver's preference for
// device-level dispatch over the instance-level trampoline.
func (c *Commands) LoadDevice(device Device) {
	get := func(name string) unsafe.Pointer {
		cname := append([]byte(name), 0)
		namePtr := unsafe.Pointer(&cname[0])
		var result unsafe.Pointer
		cif, err := sigFor("vkGetDeviceProcAddr", tPtr, []*types.TypeDescriptor{tU64, tPtr})
		if err != nil {
			return nil
		}
		args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&namePtr)}
		_ = ffi.CallFunction(cif, c.getDeviceProcAddr, unsafe.Pointer(&result), args[:])
		return result
	}

	c.destroyDevice = get("vkDestroyDevice")
	c.getDeviceQueue = get("vkGetDeviceQueue")

	c.createBuffer = get("vkCreateBuffer")
	c.destroyBuffer = get("vkDestroyBuffer")
	c.getBufferMemoryRequirements = get("vkGetBufferMemoryRequirements")
	c.allocateMemory = get("vkAllocateMemory")
	c.freeMemory = get("vkFreeMemory")
	c.bindBufferMemory = get("vkBindBufferMemory")
	c.mapMemory = get("vkMapMemory")
	c.unmapMemory = get("vkUnmapMemory")

	c.createImage = get("vkCreateImage")
	c.destroyImage = get("vkDestroyImage")
	c.getImageMemoryRequirements = get("vkGetImageMemoryRequirements")
	c.bindImageMemory = get("vkBindImageMemory")

	c.createFence = get("vkCreateFence")
	c.destroyFence = get("vkDestroyFence")
	c.waitForFences = get("vkWaitForFences")
	c.resetFences = get("vkResetFences")
	c.getFenceStatus = get("vkGetFenceStatus")

	c.createCommandPool = get("vkCreateCommandPool")
	c.destroyCommandPool = get("vkDestroyCommandPool")
	c.resetCommandPool = get("vkResetCommandPool")
	c.allocateCommandBuffers = get("vkAllocateCommandBuffers")

	c.beginCommandBuffer = get("vkBeginCommandBuffer")
	c.endCommandBuffer = get("vkEndCommandBuffer")

	c.cmdCopyBuffer = get("vkCmdCopyBuffer")
	c.cmdPipelineBarrier = get("vkCmdPipelineBarrier")
	c.cmdBindPipeline = get("vkCmdBindPipeline")
	c.cmdBindVertexBuffers = get("vkCmdBindVertexBuffers")
	c.cmdBindIndexBuffer = get("vkCmdBindIndexBuffer")
	c.cmdSetViewport = get("vkCmdSetViewport")
	c.cmdSetScissor = get("vkCmdSetScissor")
	c.cmdDraw = get("vkCmdDraw")
	c.cmdDrawIndexed = get("vkCmdDrawIndexed")
	c.cmdDispatch = get("vkCmdDispatch")
	c.cmdPushConstants = get("vkCmdPushConstants")
	c.cmdClearColorImage = get("vkCmdClearColorImage")

	c.queueSubmit = get("vkQueueSubmit")

	c.createShaderModule = get("vkCreateShaderModule")
	c.destroyShaderModule = get("vkDestroyShaderModule")
	c.createPipelineLayout = get("vkCreatePipelineLayout")
	c.destroyPipelineLayout = get("vkDestroyPipelineLayout")
}

func (c *Commands) CreateInstance(info *InstanceCreateInfo) (Instance, Result, error) {
	var instance Instance
	r, err := callResult("vkCreateInstance", c.createInstance,
		[]*types.TypeDescriptor{tPtr, tPtr, tPtr},
		[]unsafe.Pointer{ptrArg(unsafe.Pointer(info)), ptrArg(nil), unsafe.Pointer(&instance)})
	return instance, r, err
}

func (c *Commands) DestroyInstance(instance Instance) {
	_ = callVoid("vkDestroyInstance", c.destroyInstance,
		[]*types.TypeDescriptor{tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&instance), ptrArg(nil)})
}

func (c *Commands) EnumeratePhysicalDevices(instance Instance) ([]PhysicalDevice, error) {
	var count uint32
	if _, err := callResult("vkEnumeratePhysicalDevices", c.enumeratePhysicalDevices,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&count), ptrArg(nil)}); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	devices := make([]PhysicalDevice, count)
	if _, err := callResult("vkEnumeratePhysicalDevices", c.enumeratePhysicalDevices,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&count), unsafe.Pointer(&devices[0])}); err != nil {
		return nil, err
	}
	return devices, nil
}

func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice) []QueueFamilyProperties {
	var count uint32
	_ = callVoid("vkGetPhysicalDeviceQueueFamilyProperties", c.getPhysicalDeviceQueueFamilyProperties,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&count), ptrArg(nil)})
	if count == 0 {
		return nil
	}
	props := make([]QueueFamilyProperties, count)
	_ = callVoid("vkGetPhysicalDeviceQueueFamilyProperties", c.getPhysicalDeviceQueueFamilyProperties,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&count), unsafe.Pointer(&props[0])})
	return props
}

func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice) PhysicalDeviceMemoryProperties {
	var props PhysicalDeviceMemoryProperties
	_ = callVoid("vkGetPhysicalDeviceMemoryProperties", c.getPhysicalDeviceMemoryProperties,
		[]*types.TypeDescriptor{tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&props)})
	return props
}

func (c *Commands) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo) (Device, Result, error) {
	var device Device
	r, err := callResult("vkCreateDevice", c.createDevice,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&pd), ptrArg(unsafe.Pointer(info)), ptrArg(nil), unsafe.Pointer(&device)})
	return device, r, err
}

func (c *Commands) DestroyDevice(device Device) {
	_ = callVoid("vkDestroyDevice", c.destroyDevice,
		[]*types.TypeDescriptor{tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(nil)})
}

func (c *Commands) GetDeviceQueue(device Device, familyIndex, queueIndex uint32) Queue {
	var queue Queue
	_ = callVoid("vkGetDeviceQueue", c.getDeviceQueue,
		[]*types.TypeDescriptor{tU64, tU32, tU32, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&familyIndex), unsafe.Pointer(&queueIndex), unsafe.Pointer(&queue)})
	return queue
}

func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo) (Buffer, Result, error) {
	var buf Buffer
	r, err := callResult("vkCreateBuffer", c.createBuffer,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(unsafe.Pointer(info)), ptrArg(nil), unsafe.Pointer(&buf)})
	return buf, r, err
}

func (c *Commands) DestroyBuffer(device Device, buf Buffer) {
	_ = callVoid("vkDestroyBuffer", c.destroyBuffer,
		[]*types.TypeDescriptor{tU64, tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), ptrArg(nil)})
}

func (c *Commands) GetBufferMemoryRequirements(device Device, buf Buffer) MemoryRequirements {
	var req MemoryRequirements
	_ = callVoid("vkGetBufferMemoryRequirements", c.getBufferMemoryRequirements,
		[]*types.TypeDescriptor{tU64, tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&req)})
	return req
}

func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo) (DeviceMemory, Result, error) {
	var mem DeviceMemory
	r, err := callResult("vkAllocateMemory", c.allocateMemory,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(unsafe.Pointer(info)), ptrArg(nil), unsafe.Pointer(&mem)})
	return mem, r, err
}

func (c *Commands) FreeMemory(device Device, mem DeviceMemory) {
	_ = callVoid("vkFreeMemory", c.freeMemory,
		[]*types.TypeDescriptor{tU64, tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem), ptrArg(nil)})
}

func (c *Commands) BindBufferMemory(device Device, buf Buffer, mem DeviceMemory, offset uint64) (Result, error) {
	return callResult("vkBindBufferMemory", c.bindBufferMemory,
		[]*types.TypeDescriptor{tU64, tU64, tU64, tU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&mem), unsafe.Pointer(&offset)})
}

func (c *Commands) MapMemory(device Device, mem DeviceMemory, offset, size uint64) (unsafe.Pointer, error) {
	var data unsafe.Pointer
	flags := uint32(0)
	_, err := callResult("vkMapMemory", c.mapMemory,
		[]*types.TypeDescriptor{tU64, tU64, tU64, tU64, tU32, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem), unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&flags), unsafe.Pointer(&data)})
	return data, err
}

func (c *Commands) UnmapMemory(device Device, mem DeviceMemory) {
	_ = callVoid("vkUnmapMemory", c.unmapMemory,
		[]*types.TypeDescriptor{tU64, tU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem)})
}

func (c *Commands) CreateImage(device Device, info *ImageCreateInfo) (Image, Result, error) {
	var img Image
	r, err := callResult("vkCreateImage", c.createImage,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(unsafe.Pointer(info)), ptrArg(nil), unsafe.Pointer(&img)})
	return img, r, err
}

func (c *Commands) DestroyImage(device Device, img Image) {
	_ = callVoid("vkDestroyImage", c.destroyImage,
		[]*types.TypeDescriptor{tU64, tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), ptrArg(nil)})
}

func (c *Commands) GetImageMemoryRequirements(device Device, img Image) MemoryRequirements {
	var req MemoryRequirements
	_ = callVoid("vkGetImageMemoryRequirements", c.getImageMemoryRequirements,
		[]*types.TypeDescriptor{tU64, tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(&req)})
	return req
}

func (c *Commands) BindImageMemory(device Device, img Image, mem DeviceMemory, offset uint64) (Result, error) {
	return callResult("vkBindImageMemory", c.bindImageMemory,
		[]*types.TypeDescriptor{tU64, tU64, tU64, tU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(&mem), unsafe.Pointer(&offset)})
}

func (c *Commands) CreateFence(device Device, info *FenceCreateInfo) (Fence, Result, error) {
	var fence Fence
	r, err := callResult("vkCreateFence", c.createFence,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(unsafe.Pointer(info)), ptrArg(nil), unsafe.Pointer(&fence)})
	return fence, r, err
}

func (c *Commands) DestroyFence(device Device, fence Fence) {
	_ = callVoid("vkDestroyFence", c.destroyFence,
		[]*types.TypeDescriptor{tU64, tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence), ptrArg(nil)})
}

func (c *Commands) WaitForFences(device Device, fences []Fence, waitAll bool, timeout uint64) (Result, error) {
	count := uint32(len(fences))
	all := uint32(0)
	if waitAll {
		all = 1
	}
	return callResult("vkWaitForFences", c.waitForFences,
		[]*types.TypeDescriptor{tU64, tU32, tPtr, tU32, tU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences[0]), unsafe.Pointer(&all), unsafe.Pointer(&timeout)})
}

func (c *Commands) GetFenceStatus(device Device, fence Fence) (Result, error) {
	return callResult("vkGetFenceStatus", c.getFenceStatus,
		[]*types.TypeDescriptor{tU64, tU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence)})
}

func (c *Commands) ResetFences(device Device, fences []Fence) (Result, error) {
	count := uint32(len(fences))
	return callResult("vkResetFences", c.resetFences,
		[]*types.TypeDescriptor{tU64, tU32, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences[0])})
}

func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo) (CommandPool, Result, error) {
	var pool CommandPool
	r, err := callResult("vkCreateCommandPool", c.createCommandPool,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(unsafe.Pointer(info)), ptrArg(nil), unsafe.Pointer(&pool)})
	return pool, r, err
}

func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	_ = callVoid("vkDestroyCommandPool", c.destroyCommandPool,
		[]*types.TypeDescriptor{tU64, tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), ptrArg(nil)})
}

func (c *Commands) ResetCommandPool(device Device, pool CommandPool) (Result, error) {
	flags := uint32(0)
	return callResult("vkResetCommandPool", c.resetCommandPool,
		[]*types.TypeDescriptor{tU64, tU64, tU32},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&flags)})
}

func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo) (CommandBuffer, Result, error) {
	var cb CommandBuffer
	r, err := callResult("vkAllocateCommandBuffers", c.allocateCommandBuffers,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(unsafe.Pointer(info)), unsafe.Pointer(&cb)})
	return cb, r, err
}

func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) (Result, error) {
	return callResult("vkBeginCommandBuffer", c.beginCommandBuffer,
		[]*types.TypeDescriptor{tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), ptrArg(unsafe.Pointer(info))})
}

func (c *Commands) EndCommandBuffer(cb CommandBuffer) (Result, error) {
	return callResult("vkEndCommandBuffer", c.endCommandBuffer,
		[]*types.TypeDescriptor{tU64},
		[]unsafe.Pointer{unsafe.Pointer(&cb)})
}

func (c *Commands) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, regions []BufferCopy) {
	count := uint32(len(regions))
	var regionPtr unsafe.Pointer
	if count > 0 {
		regionPtr = unsafe.Pointer(&regions[0])
	}
	_ = callVoid("vkCmdCopyBuffer", c.cmdCopyBuffer,
		[]*types.TypeDescriptor{tU64, tU64, tU64, tU32, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&dst), unsafe.Pointer(&count), ptrArg(regionPtr)})
}

func (c *Commands) CmdPipelineBarrier(cb CommandBuffer, srcStage, dstStage uint32, imageBarriers []ImageMemoryBarrier) {
	zero := uint32(0)
	count := uint32(len(imageBarriers))
	var barrierPtr unsafe.Pointer
	if count > 0 {
		barrierPtr = unsafe.Pointer(&imageBarriers[0])
	}
	_ = callVoid("vkCmdPipelineBarrier", c.cmdPipelineBarrier,
		[]*types.TypeDescriptor{tU64, tU32, tU32, tU32, tU32, tPtr, tU32, tPtr, tU32, tPtr},
		[]unsafe.Pointer{
			unsafe.Pointer(&cb), unsafe.Pointer(&srcStage), unsafe.Pointer(&dstStage), unsafe.Pointer(&zero),
			unsafe.Pointer(&zero), ptrArg(nil), unsafe.Pointer(&zero), ptrArg(nil),
			unsafe.Pointer(&count), ptrArg(barrierPtr),
		})
}

func (c *Commands) CmdBindPipeline(cb CommandBuffer, bindPoint uint32, pipeline Pipeline) {
	_ = callVoid("vkCmdBindPipeline", c.cmdBindPipeline,
		[]*types.TypeDescriptor{tU64, tU32, tU64},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&pipeline)})
}

func (c *Commands) CmdBindVertexBuffers(cb CommandBuffer, firstBinding uint32, buffers []Buffer, offsets []uint64) {
	count := uint32(len(buffers))
	if count == 0 {
		return
	}
	_ = callVoid("vkCmdBindVertexBuffers", c.cmdBindVertexBuffers,
		[]*types.TypeDescriptor{tU64, tU32, tU32, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&firstBinding), unsafe.Pointer(&count), ptrArg(unsafe.Pointer(&buffers[0])), ptrArg(unsafe.Pointer(&offsets[0]))})
}

func (c *Commands) CmdBindIndexBuffer(cb CommandBuffer, buf Buffer, offset uint64, indexType uint32) {
	_ = callVoid("vkCmdBindIndexBuffer", c.cmdBindIndexBuffer,
		[]*types.TypeDescriptor{tU64, tU64, tU64, tU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset), unsafe.Pointer(&indexType)})
}

func (c *Commands) CmdSetViewport(cb CommandBuffer, viewports []Viewport) {
	count := uint32(len(viewports))
	if count == 0 {
		return
	}
	first := uint32(0)
	_ = callVoid("vkCmdSetViewport", c.cmdSetViewport,
		[]*types.TypeDescriptor{tU64, tU32, tU32, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&first), unsafe.Pointer(&count), unsafe.Pointer(&viewports[0])})
}

func (c *Commands) CmdSetScissor(cb CommandBuffer, rects []Rect2D) {
	count := uint32(len(rects))
	if count == 0 {
		return
	}
	first := uint32(0)
	_ = callVoid("vkCmdSetScissor", c.cmdSetScissor,
		[]*types.TypeDescriptor{tU64, tU32, tU32, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&first), unsafe.Pointer(&count), unsafe.Pointer(&rects[0])})
}

func (c *Commands) CmdDraw(cb CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	_ = callVoid("vkCmdDraw", c.cmdDraw,
		[]*types.TypeDescriptor{tU64, tU32, tU32, tU32, tU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&vertexCount), unsafe.Pointer(&instanceCount), unsafe.Pointer(&firstVertex), unsafe.Pointer(&firstInstance)})
}

func (c *Commands) CmdDrawIndexed(cb CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	_ = callVoid("vkCmdDrawIndexed", c.cmdDrawIndexed,
		[]*types.TypeDescriptor{tU64, tU32, tU32, tU32, types.SInt32TypeDescriptor, tU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&indexCount), unsafe.Pointer(&instanceCount), unsafe.Pointer(&firstIndex), unsafe.Pointer(&vertexOffset), unsafe.Pointer(&firstInstance)})
}

func (c *Commands) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	_ = callVoid("vkCmdDispatch", c.cmdDispatch,
		[]*types.TypeDescriptor{tU64, tU32, tU32, tU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&x), unsafe.Pointer(&y), unsafe.Pointer(&z)})
}

func (c *Commands) CmdPushConstants(cb CommandBuffer, layout PipelineLayout, stageFlags, offset, size uint32, data unsafe.Pointer) {
	_ = callVoid("vkCmdPushConstants", c.cmdPushConstants,
		[]*types.TypeDescriptor{tU64, tU64, tU32, tU32, tU32, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&layout), unsafe.Pointer(&stageFlags), unsafe.Pointer(&offset), unsafe.Pointer(&size), ptrArg(data)})
}

func (c *Commands) CmdClearColorImage(cb CommandBuffer, img Image, layout uint32, color *ClearColorValue, ranges []ImageSubresourceRange) {
	count := uint32(len(ranges))
	if count == 0 {
		return
	}
	_ = callVoid("vkCmdClearColorImage", c.cmdClearColorImage,
		[]*types.TypeDescriptor{tU64, tU64, tU32, tPtr, tU32, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&img), unsafe.Pointer(&layout), unsafe.Pointer(color), unsafe.Pointer(&count), unsafe.Pointer(&ranges[0])})
}

func (c *Commands) QueueSubmit(queue Queue, submits []SubmitInfo, fence Fence) (Result, error) {
	count := uint32(len(submits))
	var submitPtr unsafe.Pointer
	if count > 0 {
		submitPtr = unsafe.Pointer(&submits[0])
	}
	return callResult("vkQueueSubmit", c.queueSubmit,
		[]*types.TypeDescriptor{tU64, tU32, tPtr, tU64},
		[]unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&count), ptrArg(submitPtr), unsafe.Pointer(&fence)})
}

func (c *Commands) CreateShaderModule(device Device, info *ShaderModuleCreateInfo) (ShaderModule, Result, error) {
	var mod ShaderModule
	r, err := callResult("vkCreateShaderModule", c.createShaderModule,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(unsafe.Pointer(info)), ptrArg(nil), unsafe.Pointer(&mod)})
	return mod, r, err
}

func (c *Commands) DestroyShaderModule(device Device, mod ShaderModule) {
	_ = callVoid("vkDestroyShaderModule", c.destroyShaderModule,
		[]*types.TypeDescriptor{tU64, tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mod), ptrArg(nil)})
}

func (c *Commands) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo) (PipelineLayout, Result, error) {
	var layout PipelineLayout
	r, err := callResult("vkCreatePipelineLayout", c.createPipelineLayout,
		[]*types.TypeDescriptor{tU64, tPtr, tPtr, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(unsafe.Pointer(info)), ptrArg(nil), unsafe.Pointer(&layout)})
	return layout, r, err
}

func (c *Commands) DestroyPipelineLayout(device Device, layout PipelineLayout) {
	_ = callVoid("vkDestroyPipelineLayout", c.destroyPipelineLayout,
		[]*types.TypeDescriptor{tU64, tU64, tPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&layout), ptrArg(nil)})
}
