// Package hal is the backend-agnostic boundary every native graphics API
// implements. It defines the device/queue/resource interfaces the core
// packages (descriptor, track, upload, queue, resource, binding, pipeline,
// command) program against, plus the native barrier and descriptor-table
// primitives a D3D12- or Vulkan-shaped backend must expose.
//
// hal itself never touches a driver. Concrete backends live in
// hal/null (in-memory reference backend used by tests), hal/dx12
// (Windows-only) and hal/vulkan.
package hal
