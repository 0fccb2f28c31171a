package tri

import "github.com/gogpu/gputypes"

// VertexIn is the input to a vertex stage: the built-in vertex index plus
// the application-supplied attributes, if the program declares any.
//
// For indexed draws, Index carries the value fetched from the index
// buffer; for non-indexed draws it is the ordinal within the draw call.
// Bufferless programs read only Index and leave the attributes at their
// zero values.
type VertexIn struct {
	Index    uint32 // @builtin(vertex_index)
	Position Vec3   // @location(0)
	Color    Vec3   // @location(1)
}

// VertexOut is the result of one vertex stage invocation: the clip-space
// position consumed by the rasterizer plus the varyings it interpolates
// across covered fragments.
type VertexOut struct {
	Position Vec4 // @builtin(position), clip space, W must be nonzero
	Color    Vec3 // @location(0)
}

// FragmentIn is the input to a fragment stage, produced by the rasterizer
// from interpolated vertex outputs.
//
// Position holds framebuffer coordinates: x and y at the sample point in
// pixels, z the interpolated depth in [0, 1], and w the reciprocal of the
// interpolated clip-space w (1.0 here, since both programs fix w to 1.0).
// Neither program reads Position; it is carried for contract completeness.
type FragmentIn struct {
	Position Vec4 // @builtin(position), framebuffer coordinates
	Color    Vec3 // @location(0), interpolated
}

// VertexFunc is a vertex stage: a pure function invoked once per vertex.
type VertexFunc func(VertexIn) VertexOut

// FragmentFunc is a fragment stage: a pure function invoked once per
// covered fragment, returning the RGBA color written to the first color
// attachment.
type FragmentFunc func(FragmentIn) Vec4

// Program is one shader module: a vertex stage and a fragment stage that
// share a WGSL source, plus the vertex buffer layout the vertex stage
// fetches from.
//
// The Go stage functions and the WGSL entry points implement identical
// semantics; which form runs depends on the pipeline driving the program
// (render for CPU, gpu for wgpu).
//
// A Program value is immutable after construction and safe to share
// between goroutines and pipelines.
type Program struct {
	// Name identifies the program in logs and GPU object labels.
	Name string

	// Vertex and Fragment are the CPU reference stages.
	Vertex   VertexFunc
	Fragment FragmentFunc

	// WGSL is the module source compiled for GPU execution. It declares
	// exactly one @vertex and one @fragment entry point.
	WGSL string

	// Layout describes the vertex buffers the program fetches from.
	// A nil Layout means the program is bufferless: draws supply no
	// vertex data and the vertex stage sees only the built-in index.
	Layout []gputypes.VertexBufferLayout
}

// Bufferless reports whether the program draws without vertex buffers.
func (p Program) Bufferless() bool {
	return len(p.Layout) == 0
}
