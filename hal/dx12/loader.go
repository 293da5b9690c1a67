// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

// Package dx12 holds the Direct3D 12 backend's native-library loading
// shim. A full D3D12 hal.Backend implementation (root signatures,
// command lists, heaps) is left as an extension point alongside the
// vulkan backend; this file wires up the one piece that is platform-
// specific rather than API-specific: resolving d3d12.dll's entry points
// through golang.org/x/sys/windows instead of syscall.LazyDLL.
package dx12

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
)

// Lib holds the lazily-resolved D3D12 and DXGI entry points a backend
// needs to create a device and enumerate adapters.
type Lib struct {
	d3d12                       *windows.LazyDLL
	dxgi                        *windows.LazyDLL
	d3d12CreateDevice           *windows.LazyProc
	d3d12GetDebugInterface      *windows.LazyProc
	d3d12SerializeRootSignature *windows.LazyProc
	createDXGIFactory2          *windows.LazyProc
}

var (
	lib     *Lib
	libOnce sync.Once
	libErr  error
)

// Load resolves d3d12.dll and dxgi.dll. Safe to call more than once.
func Load() (*Lib, error) {
	libOnce.Do(func() {
		lib, libErr = load()
	})
	return lib, libErr
}

func load() (*Lib, error) {
	d3d12 := windows.NewLazySystemDLL("d3d12.dll")
	if err := d3d12.Load(); err != nil {
		return nil, fmt.Errorf("dx12: load d3d12.dll: %w", err)
	}
	dxgi := windows.NewLazySystemDLL("dxgi.dll")
	if err := dxgi.Load(); err != nil {
		return nil, fmt.Errorf("dx12: load dxgi.dll: %w", err)
	}
	return &Lib{
		d3d12:                       d3d12,
		dxgi:                        dxgi,
		d3d12CreateDevice:           d3d12.NewProc("D3D12CreateDevice"),
		d3d12GetDebugInterface:      d3d12.NewProc("D3D12GetDebugInterface"),
		d3d12SerializeRootSignature: d3d12.NewProc("D3D12SerializeRootSignature"),
		createDXGIFactory2:          dxgi.NewProc("CreateDXGIFactory2"),
	}, nil
}

// Available reports whether every entry point this backend needs was
// found, without calling any of them.
func (l *Lib) Available() bool {
	return l.d3d12CreateDevice.Find() == nil && l.createDXGIFactory2.Find() == nil
}
