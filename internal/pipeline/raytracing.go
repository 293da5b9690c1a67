package pipeline

import (
	"fmt"

	"github.com/CellarCordial/FTS-Render-sub002/types"
)

// GeometryFlags are per-geometry ray-tracing hints (opaque, no duplicate
// any-hit invocation).
type GeometryFlags uint8

const (
	GeometryFlagNone                        GeometryFlags = 0
	GeometryFlagOpaque                      GeometryFlags = 1 << 0
	GeometryFlagNoDuplicateAnyHitInvocation GeometryFlags = 1 << 1
)

type GeometryType uint8

const (
	GeometryTypeTriangles GeometryType = iota
	GeometryTypeBoundingBoxes
)

// GeometryDesc is one piece of bottom-level acceleration-structure
// geometry: either an indexed triangle mesh or a set of AABBs.
type GeometryDesc struct {
	Flags GeometryFlags
	Type  GeometryType

	IndexBuffer, VertexBuffer     any // *resource.Buffer; kept generic to avoid an import cycle
	IndexFormat, VertexFormat     types.Format
	IndexCount, VertexCount       uint64
	IndexOffset, VertexOffset     uint64
	VertexStride                  uint32

	AABBBuffer any
	AABBCount  uint32
	AABBStride uint32
}

// AccelStructBuildFlags tune a build for speed, memory, or update
// support.
type AccelStructBuildFlags uint8

const (
	AccelStructBuildFlagNone           AccelStructBuildFlags = 0
	AccelStructBuildFlagAllowUpdate    AccelStructBuildFlags = 1 << 0
	AccelStructBuildFlagAllowCompaction AccelStructBuildFlags = 1 << 1
	AccelStructBuildFlagPreferFastTrace AccelStructBuildFlags = 1 << 2
	AccelStructBuildFlagPreferFastBuild AccelStructBuildFlags = 1 << 3
	AccelStructBuildFlagMinimizeMemory  AccelStructBuildFlags = 1 << 4
	AccelStructBuildFlagPerformUpdate   AccelStructBuildFlags = 1 << 5
)

// AccelStructDesc describes either a bottom-level (geometry-backed) or
// top-level (instance-backed) acceleration structure.
type AccelStructDesc struct {
	Name string

	IsVirtual           bool
	IsTopLevel          bool
	TopLevelMaxInstances uint64
	Geometry            []GeometryDesc

	Flags AccelStructBuildFlags
}

// HitGroupDesc names one hit group's closest-hit/any-hit/intersection
// shader triple for the shader binding table.
type HitGroupDesc struct {
	ExportName       string
	ClosestHit       *types.ShaderByteCode
	AnyHit           *types.ShaderByteCode
	Intersection     *types.ShaderByteCode
	BindingLayout    *types.BindingLayoutDesc
	IsProcedural     bool
}

// RayTracingPipelineDesc describes a full ray-tracing pipeline: its
// raygen/miss/callable shaders, its hit groups, and the recursion and
// payload/attribute size limits every shader in it must fit within.
type RayTracingPipelineDesc struct {
	Name string

	Shaders   []types.ShaderByteCode
	HitGroups []HitGroupDesc

	GlobalBindingLayouts []types.BindingLayoutDesc

	MaxPayloadSize   uint32
	MaxAttributeSize uint32
	MaxRecursionDepth uint32
}

// shaderRecordStride is the fixed per-record size: a 32-byte shader
// identifier rounded up to the 64-byte shader-record alignment D3D12
// and Vulkan both require. Local root arguments beyond the identifier
// are out of scope for this implementation, mirroring the spec's
// ray-tracing supplement not committing to per-record local roots.
const shaderRecordStride = 64

// ShaderTable packs raygen/miss/hit-group/callable records into one
// flat byte buffer a backend can bind directly as a D3D12
// D3D12_DISPATCH_RAYS_DESC / VkStridedDeviceAddressRegionKHR set.
type ShaderTable struct {
	pipeline *RayTracingPipelineDesc

	raygenName string

	missNames     []string
	hitGroupNames []string
	callableNames []string
}

// NewShaderTable starts an empty table for pipeline.
func NewShaderTable(pipeline *RayTracingPipelineDesc) *ShaderTable {
	return &ShaderTable{pipeline: pipeline}
}

func (t *ShaderTable) SetRaygenShader(name string) { t.raygenName = name }

func (t *ShaderTable) AddMissShader(name string) int {
	t.missNames = append(t.missNames, name)
	return len(t.missNames) - 1
}

func (t *ShaderTable) AddHitGroup(name string) int {
	t.hitGroupNames = append(t.hitGroupNames, name)
	return len(t.hitGroupNames) - 1
}

func (t *ShaderTable) AddCallableShader(name string) int {
	t.callableNames = append(t.callableNames, name)
	return len(t.callableNames) - 1
}

func (t *ShaderTable) ClearMissShaders()     { t.missNames = nil }
func (t *ShaderTable) ClearHitGroups()       { t.hitGroupNames = nil }
func (t *ShaderTable) ClearCallableShaders() { t.callableNames = nil }

// Layout is the byte layout CommandList.Dispatch-equivalent ray-tracing
// calls need: each region's base offset and stride within one packed
// buffer, plus the whole table's size.
type Layout struct {
	RaygenOffset                     uint64
	MissOffset, MissStride           uint64
	HitGroupOffset, HitGroupStride   uint64
	CallableOffset, CallableStride   uint64
	TotalSize                        uint64
}

// Pack computes the record layout. Record contents (shader identifiers)
// are written by the backend, which alone knows their native byte
// representation; Pack only fixes the offsets every region starts at.
func (t *ShaderTable) Pack() (Layout, error) {
	if t.raygenName == "" {
		return Layout{}, fmt.Errorf("pipeline: shader table has no raygen shader set")
	}

	var l Layout
	l.RaygenOffset = 0
	offset := uint64(shaderRecordStride)

	l.MissOffset = offset
	l.MissStride = shaderRecordStride
	offset += uint64(len(t.missNames)) * shaderRecordStride

	l.HitGroupOffset = offset
	l.HitGroupStride = shaderRecordStride
	offset += uint64(len(t.hitGroupNames)) * shaderRecordStride

	l.CallableOffset = offset
	l.CallableStride = shaderRecordStride
	offset += uint64(len(t.callableNames)) * shaderRecordStride

	l.TotalSize = offset
	return l, nil
}
