package types

// ShaderStage identifies which stage of the pipeline a shader binary
// targets. The RHI never compiles shaders itself — it only carries the
// opaque byte-code the out-of-scope shader compiler produced.
type ShaderStage uint8

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageHull
	ShaderStageDomain
	ShaderStageGeometry
	ShaderStagePixel
	ShaderStageCompute
	ShaderStageRayGen
	ShaderStageAnyHit
	ShaderStageClosestHit
	ShaderStageMiss
	ShaderStageIntersection
	ShaderStageCallable
)

// ShaderByteCode is the opaque compiled-shader input boundary (spec.md §6).
// The RHI never inspects Bytes beyond handing it to the backend; it does
// not perform reflection.
type ShaderByteCode struct {
	Stage     ShaderStage
	EntryName string
	DebugName string
	Bytes     []byte
}

// ShaderLibrary is a multi-entry-point byte-code blob; GetShader returns
// a sub-view sharing the same backing bytes instead of a copy.
type ShaderLibrary struct {
	DebugName string
	Bytes     []byte
	entries   map[string]ShaderStage
}

// NewShaderLibrary builds a library from a byte-code blob and its entry
// point table.
func NewShaderLibrary(debugName string, bytes []byte, entries map[string]ShaderStage) *ShaderLibrary {
	copied := make(map[string]ShaderStage, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &ShaderLibrary{DebugName: debugName, Bytes: bytes, entries: copied}
}

// GetShader returns the named entry point as a ShaderByteCode sharing
// the library's backing array, or false if the entry or stage does not
// match.
func (l *ShaderLibrary) GetShader(entryName string, stage ShaderStage) (ShaderByteCode, bool) {
	declared, ok := l.entries[entryName]
	if !ok || declared != stage {
		return ShaderByteCode{}, false
	}
	return ShaderByteCode{Stage: stage, EntryName: entryName, DebugName: l.DebugName, Bytes: l.Bytes}, true
}
