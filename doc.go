// Package rhi is the assembly root: it wires together the descriptor,
// tracking, upload, queue, resource, pipeline, and binding layers under
// internal/ into the first-class objects an application actually creates
// (Device, Texture, Buffer, Sampler, Heap, FrameBuffer, GraphicsPipeline,
// ComputePipeline, BindingSet, CommandList) and owns none of the
// interesting algorithms itself.
package rhi
