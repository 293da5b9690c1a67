// Package pipeline assembles native graphics and compute pipeline state
// objects from a flattened root layout (memoized by internal/binding's
// RootLayoutCache) and a GraphicsPipelineDesc / ComputePipelineDesc,
// expanding input-layout attributes whose ArraySize is greater than one
// into consecutive HLSL-style semantic indices. For ray tracing it only
// lays out and packs shader-binding-table records; it builds no
// ray-tracing pipeline state object.
package pipeline
