package null

import (
	"encoding/binary"
	"errors"
	"hash/fnv"

	"github.com/CellarCordial/FTS-Render-sub002/hal"
	"github.com/CellarCordial/FTS-Render-sub002/types"
)

var errMismatchedQueueType = errors.New("null: command list queue type does not match submission queue")

// Backend is the hal.Backend implementation tests and tools reach for
// when no native driver is available.
type Backend struct{}

// New returns a ready-to-use null backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "null" }

func (b *Backend) OpenDevice() (hal.Device, error) {
	d := &Device{}
	d.queues[hal.QueueTypeGraphics] = &Queue{queueType: hal.QueueTypeGraphics}
	d.queues[hal.QueueTypeCompute] = &Queue{queueType: hal.QueueTypeCompute}
	d.queues[hal.QueueTypeCopy] = &Queue{queueType: hal.QueueTypeCopy}
	return d, nil
}

// Device is an in-memory hal.Device. It never fails allocation (no real
// memory ceiling) and is never "removed".
type Device struct {
	queues [3]*Queue
}

func (d *Device) Name() string { return "null" }

func (d *Device) CreateTexture(desc types.TextureDesc) (hal.Texture, error) {
	return newTexture(desc), nil
}

func (d *Device) CreateBuffer(desc types.BufferDesc) (hal.Buffer, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return newBuffer(desc), nil
}

func (d *Device) CreateSampler(desc types.SamplerDesc) (hal.Sampler, error) {
	return &Sampler{desc: desc}, nil
}

func (d *Device) CreateHeap(desc types.HeapDesc) (hal.Heap, error) {
	return &Heap{desc: desc}, nil
}

func (d *Device) CreateDescriptorHeap(kind types.DescriptorHeapKind, capacity uint32, shaderVisible bool) (hal.DescriptorHeap, error) {
	return newDescriptorHeap(kind, capacity, shaderVisible), nil
}

func (d *Device) CreateShaderModule(code types.ShaderByteCode) (hal.ShaderModule, error) {
	return &ShaderModule{code: code}, nil
}

func (d *Device) CreateRootLayout(desc hal.RootLayoutDesc) (hal.RootLayout, error) {
	return &RootLayout{desc: desc, hash: hashRootLayout(desc)}, nil
}

func (d *Device) CreateGraphicsPipeline(layout hal.RootLayout, desc types.GraphicsPipelineDesc) (hal.GraphicsPipeline, error) {
	rl, ok := layout.(*RootLayout)
	if !ok {
		return nil, errors.New("null: foreign root layout handle")
	}
	return &GraphicsPipeline{desc: desc, layout: rl}, nil
}

func (d *Device) CreateComputePipeline(layout hal.RootLayout, desc types.ComputePipelineDesc) (hal.ComputePipeline, error) {
	rl, ok := layout.(*RootLayout)
	if !ok {
		return nil, errors.New("null: foreign root layout handle")
	}
	return &ComputePipeline{desc: desc, layout: rl}, nil
}

func (d *Device) CreateCommandAllocator(queueType hal.QueueType) (hal.CommandAllocator, error) {
	return &CommandAllocator{queueType: queueType}, nil
}

func (d *Device) CreateCommandList(queueType hal.QueueType) (hal.CommandList, error) {
	return newCommandList(queueType), nil
}

func (d *Device) CreateFence(initialValue uint64) (hal.Fence, error) {
	return &Fence{value: initialValue}, nil
}

func (d *Device) CreateQueryHeap(count uint32) (hal.QueryHeap, error) {
	return &QueryHeap{count: count}, nil
}

func (d *Device) Queue(queueType hal.QueueType) hal.Queue { return d.queues[queueType] }

func (d *Device) MapBuffer(buffer hal.Buffer) ([]byte, error) {
	b := buffer.(*Buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data, nil
}

func (d *Device) UnmapBuffer(buffer hal.Buffer) {}

// GPUAddress synthesizes an address from the buffer's id (unique per
// CreateBuffer call) and offset, so two volatile-CB writes staged at
// different offsets of the same upload chunk never collide.
func (d *Device) GPUAddress(buffer hal.Buffer, offset uint64) uint64 {
	b := buffer.(*Buffer)
	return (b.id << 32) ^ offset
}

func (d *Device) Removed() bool { return false }

func hashRootLayout(desc hal.RootLayoutDesc) uint64 {
	h := fnv.New64a()
	write := func(items []types.BindingLayoutItem) {
		for _, it := range items {
			var buf [12]byte
			binary.LittleEndian.PutUint32(buf[0:4], it.Slot)
			binary.LittleEndian.PutUint16(buf[4:6], uint16(it.Kind))
			binary.LittleEndian.PutUint32(buf[8:12], it.Size)
			h.Write(buf[:])
		}
	}
	if desc.PushConstants != nil {
		write([]types.BindingLayoutItem{*desc.PushConstants})
	}
	write(desc.VolatileConstants)
	for _, l := range desc.BoundLayouts {
		write(l.Items)
	}
	for _, l := range desc.BindlessLayouts {
		write(l.Items)
	}
	return h.Sum64()
}
