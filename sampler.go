package rhi

import (
	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/internal/resource"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// Sampler is a native sampler state object.
type Sampler struct {
	device *Device
	inner  *resource.Sampler
}

// CreateSampler creates a sampler.
func (d *Device) CreateSampler(desc types.SamplerDesc) (*Sampler, error) {
	if err := d.checkReleased(); err != nil {
		return nil, err
	}
	inner, err := d.factory.CreateSampler(desc)
	if err != nil {
		return nil, err
	}
	return &Sampler{device: d, inner: inner}, nil
}

// Desc returns the descriptor the sampler was created from.
func (s *Sampler) Desc() types.SamplerDesc { return s.inner.Desc() }

// Native exposes the backend-native handle.
func (s *Sampler) Native() hal.Sampler { return s.inner.Native() }
