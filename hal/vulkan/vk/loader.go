// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	lib                   unsafe.Pointer
	getInstanceProcAddr   unsafe.Pointer
	cifGetInstanceProcAddr types.CallInterface

	initOnce sync.Once
	initErr  error
)

func libraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "vulkan-1.dll"
	case "darwin":
		return "libvulkan.dylib"
	default:
		return "libvulkan.so.1"
	}
}

// Init loads the Vulkan loader library and resolves vkGetInstanceProcAddr.
// Safe to call more than once.
func Init() error {
	initOnce.Do(func() { initErr = doInit() })
	return initErr
}

func doInit() error {
	var err error
	lib, err = ffi.LoadLibrary(libraryName())
	if err != nil {
		return fmt.Errorf("vk: load %s: %w", libraryName(), err)
	}
	getInstanceProcAddr, err = ffi.GetSymbol(lib, "vkGetInstanceProcAddr")
	if err != nil {
		return fmt.Errorf("vk: resolve vkGetInstanceProcAddr: %w", err)
	}
	return ffi.PrepareCallInterface(&cifGetInstanceProcAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{types.UInt64TypeDescriptor, types.PointerTypeDescriptor})
}

// GetInstanceProcAddr resolves name against instance (0 for global
// entry points such as vkCreateInstance).
func GetInstanceProcAddr(instance Instance, name string) unsafe.Pointer {
	cname := append([]byte(name), 0)
	namePtr := unsafe.Pointer(&cname[0])
	var result unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&namePtr)}
	_ = ffi.CallFunction(&cifGetInstanceProcAddr, getInstanceProcAddr, unsafe.Pointer(&result), args[:])
	return result
}

// sigCache memoizes CallInterfaces by a signature key so repeated proc
// calls of the same shape (e.g. every vkCreateBuffer-shaped call) reuse
// one prepared interface instead of re-preparing per call.
var (
	sigCacheMu sync.Mutex
	sigCache   = map[string]*types.CallInterface{}
)

func sigFor(key string, ret *types.TypeDescriptor, args []*types.TypeDescriptor) (*types.CallInterface, error) {
	sigCacheMu.Lock()
	defer sigCacheMu.Unlock()
	if cif, ok := sigCache[key]; ok {
		return cif, nil
	}
	cif := &types.CallInterface{}
	if err := ffi.PrepareCallInterface(cif, types.DefaultCall, ret, args); err != nil {
		return nil, err
	}
	sigCache[key] = cif
	return cif, nil
}

// callResult invokes proc (a VkResult-returning function) with args
// already packed as goffi pointer-to-storage values.
func callResult(sigKey string, proc unsafe.Pointer, argTypes []*types.TypeDescriptor, args []unsafe.Pointer) (Result, error) {
	if proc == nil {
		return 0, fmt.Errorf("vk: %s not loaded", sigKey)
	}
	cif, err := sigFor(sigKey, types.SInt32TypeDescriptor, argTypes)
	if err != nil {
		return 0, err
	}
	var result Result
	if err := ffi.CallFunction(cif, proc, unsafe.Pointer(&result), args); err != nil {
		return 0, err
	}
	return result, nil
}

// callVoid invokes proc (a void-returning function).
func callVoid(sigKey string, proc unsafe.Pointer, argTypes []*types.TypeDescriptor, args []unsafe.Pointer) error {
	if proc == nil {
		return fmt.Errorf("vk: %s not loaded", sigKey)
	}
	cif, err := sigFor(sigKey, types.VoidTypeDescriptor, argTypes)
	if err != nil {
		return err
	}
	return ffi.CallFunction(cif, proc, nil, args)
}

func ptrArg(p unsafe.Pointer) unsafe.Pointer { return unsafe.Pointer(&p) }
