package hal

import "errors"

// Sentinel errors a backend returns for the device-level failure modes
// spec.md §7 calls out. Core packages wrap these in a types.RHIError so
// callers can classify without string-matching.
var (
	// ErrDeviceRemoved indicates the native device was removed by the
	// driver (DXGI_ERROR_DEVICE_REMOVED / VK_ERROR_DEVICE_LOST). This is
	// fatal: the backend and everything built on it must be torn down.
	ErrDeviceRemoved = errors.New("hal: device removed")

	// ErrOutOfDeviceMemory indicates a native allocation failed because
	// the GPU heap is exhausted.
	ErrOutOfDeviceMemory = errors.New("hal: out of device memory")

	// ErrHeapExhausted indicates a descriptor heap could not grow any
	// further (fixed-capacity backend, e.g. a shader-visible heap pinned
	// at its driver-imposed maximum).
	ErrHeapExhausted = errors.New("hal: descriptor heap exhausted")

	// ErrUnsupported indicates the backend does not implement the
	// requested operation. The Vulkan backend returns it from
	// CreateGraphicsPipeline, CreateComputePipeline and Queue.WaitOnQueue.
	// It is returned bare: nothing wraps it in a types.RHIError, so it
	// carries no types.ErrorKindStatePolicyViolation classification.
	ErrUnsupported = errors.New("hal: operation not supported by backend")

	// ErrSurfaceLost mirrors the swap-chain loss a presentation surface
	// can report after a mode change or window close.
	ErrSurfaceLost = errors.New("hal: surface lost")
)
