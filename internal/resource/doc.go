// Package resource creates native textures, buffers, samplers, and
// memory heaps and keeps them registered with the device's tracker and
// the four descriptor-heap view caches (RTV, DSV, CBV/SRV/UAV, Sampler),
// so the rest of the RHI asks for "the SRV of this texture" rather than
// managing descriptor slots directly.
package resource
