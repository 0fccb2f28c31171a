package raster

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/tri"
)

// Triangle rasterizes one triangle from three vertex-stage outputs,
// invoking emit once per covered pixel. Coverage is decided at pixel
// centers with the top-left fill rule, so a pixel on an edge shared by
// two adjacent triangles is emitted by exactly one of them.
//
// Varyings are interpolated with barycentric weights over the screen
// positions. Both shipped programs fix clip w to 1.0, which makes this
// linear interpolation identical to the perspective-correct result.
//
// Degenerate (zero-area) and culled triangles produce no fragments and
// no error. A vertex with clip w == 0 returns ErrZeroW.
func Triangle(vp Viewport, cfg Config, v0, v1, v2 tri.VertexOut, emit func(Fragment)) error {
	if v0.Position.W == 0 || v1.Position.W == 0 || v2.Position.W == 0 {
		return ErrZeroW
	}

	// Perspective division, then viewport transform. w is 1.0 for the
	// shipped programs, making the division the identity.
	n0 := v0.Position.XYZ().Mul(1 / v0.Position.W)
	n1 := v1.Position.XYZ().Mul(1 / v1.Position.W)
	n2 := v2.Position.XYZ().Mul(1 / v2.Position.W)
	p0 := vp.ToFramebuffer(n0)
	p1 := vp.ToFramebuffer(n1)
	p2 := vp.ToFramebuffer(n2)

	// Twice the signed area in screen space. The viewport flip reverses
	// orientation: an NDC counter-clockwise triangle has negative area
	// here.
	area2 := edgeFunc(p0, p1, p2.X, p2.Y)
	if area2 == 0 {
		return nil
	}

	ndcCCW := area2 < 0
	front := ndcCCW
	if cfg.FrontFace == gputypes.FrontFaceCW {
		front = !ndcCCW
	}
	switch cfg.CullMode {
	case gputypes.CullModeBack:
		if !front {
			return nil
		}
	case gputypes.CullModeFront:
		if front {
			return nil
		}
	}

	// Reorder so edge functions are positive inside. Barycentric weights
	// follow the same swap.
	if area2 < 0 {
		p1, p2 = p2, p1
		v1, v2 = v2, v1
		n1, n2 = n2, n1
		area2 = -area2
	}

	minX, minY, maxX, maxY := boundingBox(vp, p0, p1, p2)

	// Tie-break bias per edge: a fragment exactly on an edge belongs to
	// the triangle whose top or left edge it sits on.
	tl0 := topLeft(p1, p2)
	tl1 := topLeft(p2, p0)
	tl2 := topLeft(p0, p1)

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			sx := float32(px) + 0.5
			sy := float32(py) + 0.5

			w0 := edgeFunc(p1, p2, sx, sy)
			w1 := edgeFunc(p2, p0, sx, sy)
			w2 := edgeFunc(p0, p1, sx, sy)
			if !covered(w0, tl0) || !covered(w1, tl1) || !covered(w2, tl2) {
				continue
			}

			b0 := w0 / area2
			b1 := w1 / area2
			b2 := w2 / area2

			depth := b0*n0.Z + b1*n1.Z + b2*n2.Z
			color := v0.Color.Mul(b0).Add(v1.Color.Mul(b1)).Add(v2.Color.Mul(b2))

			emit(Fragment{
				X: px,
				Y: py,
				In: tri.FragmentIn{
					Position: tri.V4(sx, sy, depth, 1),
					Color:    color,
				},
			})
		}
	}
	return nil
}

// edgeFunc evaluates the edge function of the directed edge a->b at
// point (px, py). Positive means (px, py) lies to the right of the edge
// in framebuffer coordinates (y down).
func edgeFunc(a, b tri.Vec2, px, py float32) float32 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// covered applies the top-left fill rule: strictly inside always passes,
// exactly on the edge passes only for top and left edges.
func covered(w float32, topLeftEdge bool) bool {
	if w > 0 {
		return true
	}
	return w == 0 && topLeftEdge
}

// topLeft reports whether the directed edge a->b is a top or left edge of
// a positively oriented triangle in framebuffer coordinates. Top edges
// are horizontal and run in +x; left edges run in -y.
func topLeft(a, b tri.Vec2) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dy == 0 {
		return dx > 0
	}
	return dy < 0
}

// boundingBox returns the pixel rectangle covering the triangle, clipped
// to the viewport. Coordinates are inclusive.
func boundingBox(vp Viewport, p0, p1, p2 tri.Vec2) (minX, minY, maxX, maxY int) {
	minXf := min3(p0.X, p1.X, p2.X)
	minYf := min3(p0.Y, p1.Y, p2.Y)
	maxXf := max3(p0.X, p1.X, p2.X)
	maxYf := max3(p0.Y, p1.Y, p2.Y)

	minX = clampInt(int(minXf), 0, vp.Width-1)
	minY = clampInt(int(minYf), 0, vp.Height-1)
	maxX = clampInt(int(maxXf), 0, vp.Width-1)
	maxY = clampInt(int(maxYf), 0, vp.Height-1)
	return minX, minY, maxX, maxY
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
