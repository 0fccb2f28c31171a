package tri

import _ "embed"

//go:embed shaders/passthrough.wgsl
var passthroughWGSL string

// Passthrough returns the attribute pass-through program: the vertex stage
// forwards the supplied position as the clip-space position with w fixed
// to 1.0 and hands the color through untouched; the fragment stage emits
// the interpolated color, fully opaque.
//
// The program fetches Vertex records through VertexLayout (position at
// location 0, color at location 1). Attribute values are not range-checked:
// out-of-range positions clip, out-of-range colors clamp at the render
// target, neither is an error.
func Passthrough() Program {
	return Program{
		Name:     "passthrough",
		Vertex:   passthroughVertex,
		Fragment: passthroughFragment,
		WGSL:     passthroughWGSL,
		Layout:   VertexLayout(),
	}
}

func passthroughVertex(in VertexIn) VertexOut {
	return VertexOut{
		Position: in.Position.Vec4(1.0),
		Color:    in.Color,
	}
}

func passthroughFragment(in FragmentIn) Vec4 {
	return V4(in.Color.X, in.Color.Y, in.Color.Z, 1.0)
}
