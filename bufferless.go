package tri

import _ "embed"

//go:embed shaders/bufferless.wgsl
var bufferlessWGSL string

// BufferlessTriangle returns the bufferless triangle program: the vertex
// stage derives a fixed triangle's clip-space position from the built-in
// vertex index alone, and the fragment stage emits a constant opaque
// brown, ignoring every input.
//
// Drawing three vertices (indices 0, 1, 2) yields a triangle with clip
// positions (0.5, -0.5), (0, 0.5), (-0.5, -0.5), all at z = 0. The
// position formula is well defined for any index, but indices beyond 2
// land outside the intended triangle; that is accepted, not guarded.
func BufferlessTriangle() Program {
	return Program{
		Name:     "bufferless",
		Vertex:   bufferlessVertex,
		Fragment: bufferlessFragment,
		WGSL:     bufferlessWGSL,
	}
}

func bufferlessVertex(in VertexIn) VertexOut {
	i := int32(in.Index)
	x := float32(1-i) * 0.5
	y := float32(int32(in.Index&1)*2-1) * 0.5
	return VertexOut{Position: V4(x, y, 0.0, 1.0)}
}

func bufferlessFragment(FragmentIn) Vec4 {
	return V4(0.3, 0.2, 0.1, 1.0)
}
