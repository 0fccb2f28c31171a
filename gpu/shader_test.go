package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/tri"
)

func TestCompileWGSL(t *testing.T) {
	tests := []struct {
		name string
		prog tri.Program
	}{
		{"passthrough", tri.Passthrough()},
		{"bufferless", tri.BufferlessTriangle()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := CompileWGSL(tt.prog.WGSL)
			if err != nil {
				t.Fatalf("CompileWGSL() error = %v", err)
			}
			if len(words) == 0 {
				t.Fatal("CompileWGSL() returned empty module")
			}
			// SPIR-V modules open with the magic number.
			if words[0] != 0x07230203 {
				t.Errorf("words[0] = %#x, want SPIR-V magic 0x07230203", words[0])
			}
		})
	}
}

func TestCompileWGSLInvalid(t *testing.T) {
	_, err := CompileWGSL("@vertex fn broken( -> {")
	if !errors.Is(err, ErrShaderCompile) {
		t.Errorf("error = %v, want ErrShaderCompile", err)
	}
}

func TestReflectEntryPoints(t *testing.T) {
	for _, prog := range []tri.Program{tri.Passthrough(), tri.BufferlessTriangle()} {
		eps, err := ReflectEntryPoints(prog.WGSL)
		if err != nil {
			t.Fatalf("%s: ReflectEntryPoints() error = %v", prog.Name, err)
		}
		if eps.Vertex != "vs_main" {
			t.Errorf("%s: Vertex = %q, want vs_main", prog.Name, eps.Vertex)
		}
		if eps.Fragment != "fs_main" {
			t.Errorf("%s: Fragment = %q, want fs_main", prog.Name, eps.Fragment)
		}
	}
}

func TestReflectEntryPointsMissingStage(t *testing.T) {
	const vertexOnly = `
@vertex
fn vs_main() -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`
	_, err := ReflectEntryPoints(vertexOnly)
	if !errors.Is(err, ErrEntryPoints) {
		t.Errorf("error = %v, want ErrEntryPoints", err)
	}
}
