// Package raster implements the fixed-function stages that sit between a
// vertex stage and a fragment stage: viewport transform, triangle setup,
// coverage testing, and barycentric interpolation of varyings.
//
// The rasterizer is a plain bounding-box scanner. It favors correctness
// over speed: fragments are visited sequentially, one triangle at a time.
// Shared edges between adjacent triangles are shaded exactly once thanks
// to the top-left fill rule.
package raster

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tri"
)

// ErrZeroW is returned when a clip-space position has a zero homogeneous
// component. Perspective division would be undefined; the triangle is
// rejected instead. Both shipped programs fix w to 1.0, so this only
// trips on custom vertex stages.
var ErrZeroW = errors.New("raster: clip position has zero w component")

// Viewport maps normalized device coordinates to framebuffer pixels.
//
// NDC x and y span [-1, 1] with +y up; the framebuffer has its origin at
// the top-left corner with +y down, so y is flipped. Pixel centers sit at
// half-integer coordinates: the center of pixel (0, 0) is (0.5, 0.5).
type Viewport struct {
	Width  int
	Height int
}

// ToFramebuffer converts an NDC position to framebuffer coordinates.
func (vp Viewport) ToFramebuffer(ndc tri.Vec3) tri.Vec2 {
	return tri.V2(
		(ndc.X+1)*0.5*float32(vp.Width),
		(1-ndc.Y)*0.5*float32(vp.Height),
	)
}

// Config holds the primitive state the rasterizer honors: which winding
// order counts as front-facing and which facing, if any, is culled.
// Winding is judged in NDC, where the default front face is
// counter-clockwise, matching the usual render pipeline state.
type Config struct {
	FrontFace gputypes.FrontFace
	CullMode  gputypes.CullMode
}

// Fragment is one covered sample handed to a fragment stage.
type Fragment struct {
	// X, Y are the integer pixel coordinates of the fragment.
	X, Y int

	// In is the interpolated fragment input: position in framebuffer
	// coordinates (sample center, interpolated NDC depth, w = 1) and the
	// color varying blended with barycentric weights.
	In tri.FragmentIn
}
