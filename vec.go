package tri

import "math"

// Shader arithmetic is done in float32 throughout, matching the f32 lanes
// the WGSL sources use. Keeping both forms of each program on the same
// precision is what makes their outputs bit-comparable.

// Vec2 is a 2-component float32 vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3-component float32 vector. Used for object-space positions
// and RGB colors.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a 4-component float32 vector. Used for clip-space positions
// (homogeneous coordinates) and RGBA colors.
type Vec4 struct {
	X, Y, Z, W float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Lerp performs linear interpolation between two vectors.
// t=0 returns v, t=1 returns w, intermediate values interpolate.
func (v Vec3) Lerp(w Vec3, t float32) Vec3 {
	return Vec3{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
		Z: v.Z + (w.Z-v.Z)*t,
	}
}

// Vec4 extends the vector with the given homogeneous component.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec3) Approx(w Vec3, epsilon float32) bool {
	return abs32(v.X-w.X) < epsilon && abs32(v.Y-w.Y) < epsilon && abs32(v.Z-w.Z) < epsilon
}

// XYZ returns the first three components as a Vec3, dropping w.
func (v Vec4) XYZ() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec4) Mul(s float32) Vec4 {
	return Vec4{X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s}
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec4) Approx(w Vec4, epsilon float32) bool {
	return abs32(v.X-w.X) < epsilon && abs32(v.Y-w.Y) < epsilon &&
		abs32(v.Z-w.Z) < epsilon && abs32(v.W-w.W) < epsilon
}

// Bits returns the IEEE 754 bit patterns of the four lanes. Two Vec4 values
// are bit-identical exactly when their Bits results are equal; tests use
// this to check reproducibility without tolerating any rounding slack.
func (v Vec4) Bits() [4]uint32 {
	return [4]uint32{
		math.Float32bits(v.X),
		math.Float32bits(v.Y),
		math.Float32bits(v.Z),
		math.Float32bits(v.W),
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
