package tri

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestVertexPut(t *testing.T) {
	v := Vertex{Position: V3(-0.0868241, 0.49240386, 0.0), Color: V3(0.5, 0, 0.5)}

	buf := make([]byte, VertexStride)
	v.Put(buf)

	lanes := []float32{
		v.Position.X, v.Position.Y, v.Position.Z,
		v.Color.X, v.Color.Y, v.Color.Z,
	}
	for i, want := range lanes {
		got := binary.LittleEndian.Uint32(buf[i*4:])
		if got != math.Float32bits(want) {
			t.Errorf("lane %d = %#08x, want %#08x", i, got, math.Float32bits(want))
		}
	}
}

func TestEncodeVertices(t *testing.T) {
	vertices := PentagonVertices()
	buf := EncodeVertices(vertices)

	if len(buf) != len(vertices)*VertexStride {
		t.Fatalf("len = %d, want %d", len(buf), len(vertices)*VertexStride)
	}

	// Each vertex occupies its own stride-aligned slot.
	for i, v := range vertices {
		var want [VertexStride]byte
		v.Put(want[:])
		got := buf[i*VertexStride : (i+1)*VertexStride]
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("vertex %d byte %d = %#02x, want %#02x", i, j, got[j], want[j])
			}
		}
	}
}

func TestEncodeIndices(t *testing.T) {
	indices := []uint16{0, 1, 4, 1, 2, 4, 2, 3, 4}
	buf := EncodeIndices(indices)

	if len(buf) != len(indices)*2 {
		t.Fatalf("len = %d, want %d", len(buf), len(indices)*2)
	}
	for i, idx := range indices {
		if got := binary.LittleEndian.Uint16(buf[i*2:]); got != idx {
			t.Errorf("index %d = %d, want %d", i, got, idx)
		}
	}
}

func TestPadIndices(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint16
		wantLen int
	}{
		{"empty", nil, 0},
		{"even stays", []uint16{0, 1, 2, 0}, 4},
		{"odd pads by one", []uint16{0, 1, 4, 1, 2, 4, 2, 3, 4}, 10},
		{"single pads", []uint16{7}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadIndices(tt.indices)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			for i, idx := range tt.indices {
				if got[i] != idx {
					t.Errorf("index %d = %d, want %d", i, got[i], idx)
				}
			}
			if len(got) > len(tt.indices) && got[len(got)-1] != 0 {
				t.Errorf("pad index = %d, want 0", got[len(got)-1])
			}
			// Encoded size must be 4-byte aligned for GPU upload.
			if len(EncodeIndices(got))%4 != 0 {
				t.Errorf("encoded size %d not 4-byte aligned", len(EncodeIndices(got)))
			}
		})
	}
}

func TestPadIndicesDoesNotMutate(t *testing.T) {
	indices := []uint16{0, 1, 2}
	padded := PadIndices(indices)
	padded[0] = 99
	if indices[0] != 0 {
		t.Error("PadIndices aliases the input slice")
	}
}

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()

	if len(layout) != 1 {
		t.Fatalf("len(layout) = %d, want 1", len(layout))
	}
	buf := layout[0]
	if buf.ArrayStride != VertexStride {
		t.Errorf("ArrayStride = %d, want %d", buf.ArrayStride, VertexStride)
	}
	if buf.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want per-vertex", buf.StepMode)
	}
	if len(buf.Attributes) != 2 {
		t.Fatalf("len(Attributes) = %d, want 2", len(buf.Attributes))
	}

	wantAttrs := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
	}
	for i, want := range wantAttrs {
		if buf.Attributes[i] != want {
			t.Errorf("attribute %d = %+v, want %+v", i, buf.Attributes[i], want)
		}
	}
}

func TestPentagonGeometry(t *testing.T) {
	vertices := PentagonVertices()
	indices := PentagonIndices()

	if len(vertices) != 5 {
		t.Fatalf("len(vertices) = %d, want 5", len(vertices))
	}
	if len(indices) != 9 {
		t.Fatalf("len(indices) = %d, want 9", len(indices))
	}

	purple := V3(0.5, 0, 0.5)
	for i, v := range vertices {
		if v.Color != purple {
			t.Errorf("vertex %d color = %v, want %v", i, v.Color, purple)
		}
		if v.Position.Z != 0 {
			t.Errorf("vertex %d z = %v, want 0", i, v.Position.Z)
		}
	}

	// All indices reference real vertices; every triangle fans from the
	// apex vertex 4.
	for i := 0; i < len(indices); i += 3 {
		tri := indices[i : i+3]
		for _, idx := range tri {
			if int(idx) >= len(vertices) {
				t.Errorf("triangle %d references vertex %d, have %d", i/3, idx, len(vertices))
			}
		}
		if tri[2] != 4 {
			t.Errorf("triangle %d does not pivot on the apex: %v", i/3, tri)
		}
	}
}

func TestPentagonReturnsFreshSlices(t *testing.T) {
	a := PentagonVertices()
	a[0].Color = V3(1, 0, 0)
	if b := PentagonVertices(); b[0].Color != V3(0.5, 0, 0.5) {
		t.Error("PentagonVertices shares backing storage between calls")
	}

	i := PentagonIndices()
	i[0] = 99
	if j := PentagonIndices(); j[0] != 0 {
		t.Error("PentagonIndices shares backing storage between calls")
	}
}
