package tri

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// VertexStride is the size in bytes of one Vertex in its wire encoding.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
//
// Total = 24 bytes per vertex.
const VertexStride = 24

// Vertex is the per-vertex record consumed by the pass-through program:
// an object-space position and an RGB color, both supplied by the host.
// Values are immutable as far as the stages are concerned.
type Vertex struct {
	Position Vec3
	Color    Vec3
}

// Put writes the 24-byte wire encoding of v into buf, little-endian
// float32 lanes. buf must be at least VertexStride bytes long.
func (v Vertex) Put(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position.Z))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Color.X))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Color.Y))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Color.Z))
}

// EncodeVertices packs vertices into a contiguous byte slice suitable for
// upload as a GPU vertex buffer.
func EncodeVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i, v := range vertices {
		v.Put(buf[i*VertexStride:])
	}
	return buf
}

// EncodeIndices packs u16 indices into a little-endian byte slice suitable
// for upload as a GPU index buffer. Callers that upload to wgpu should pad
// the indices first (see PadIndices): buffer sizes must be 4-byte aligned.
func EncodeIndices(indices []uint16) []byte {
	buf := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// PadIndices returns indices padded with a single trailing zero when the
// count is odd, so the encoded buffer size is a multiple of 4 bytes. The
// pad index is never drawn; draw calls use the unpadded count. Even-length
// slices are returned unchanged.
func PadIndices(indices []uint16) []uint16 {
	if len(indices)%2 == 0 {
		return indices
	}
	padded := make([]uint16, len(indices)+1)
	copy(padded, indices)
	return padded
}

// VertexLayout returns the vertex buffer layout matching the Vertex wire
// encoding: one buffer, 24-byte stride, per-vertex stepping, position at
// shader location 0 and color at location 1.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // color
			},
		},
	}
}

// PentagonVertices returns the five-vertex demo mesh traditionally drawn
// with the pass-through program: a purple pentagon centered near the
// origin, vertices ordered counter-clockwise starting from the top. The
// last vertex is the apex the index fan pivots on. The returned slice is
// freshly allocated.
func PentagonVertices() []Vertex {
	purple := V3(0.5, 0.0, 0.5)
	return []Vertex{
		{Position: V3(-0.0868241, 0.49240386, 0.0), Color: purple},
		{Position: V3(-0.49513406, 0.06958647, 0.0), Color: purple},
		{Position: V3(-0.21918549, -0.44939706, 0.0), Color: purple},
		{Position: V3(0.35966998, -0.3473291, 0.0), Color: purple},
		{Position: V3(0.44147372, 0.2347359, 0.0), Color: purple},
	}
}

// PentagonIndices returns the triangle-list indices fanning the pentagon
// from its apex vertex. All three triangles wind counter-clockwise, the
// front face under the default pipeline state. The returned slice is
// freshly allocated and unpadded; pass it through PadIndices before GPU
// upload.
func PentagonIndices() []uint16 {
	return []uint16{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
	}
}
