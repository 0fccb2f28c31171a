package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// CompileWGSL compiles WGSL source to SPIR-V words ready for
// hal.ShaderSource. Parse, lowering, or validation failures are wrapped
// as ErrShaderCompile; this is the host surfacing "the pipeline fails to
// build" for a malformed module.
func CompileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// EntryPoints holds the names of a module's vertex and fragment entry
// points, recovered by reflection over the compiled IR.
type EntryPoints struct {
	Vertex   string
	Fragment string
}

// ReflectEntryPoints parses the WGSL source and returns the module's
// vertex and fragment entry point names. The module must declare exactly
// one of each; anything else is ErrEntryPoints. Pipeline creation uses
// the names for hal stage selection, so nothing downstream depends on
// what the entry points are called.
func ReflectEntryPoints(source string) (EntryPoints, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return EntryPoints{}, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return EntryPoints{}, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}

	var eps EntryPoints
	var vertexCount, fragmentCount int
	for _, ep := range module.EntryPoints {
		switch ep.Stage {
		case ir.StageVertex:
			vertexCount++
			eps.Vertex = ep.Name
		case ir.StageFragment:
			fragmentCount++
			eps.Fragment = ep.Name
		}
	}
	if vertexCount != 1 || fragmentCount != 1 {
		return EntryPoints{}, fmt.Errorf("%w: got %d vertex, %d fragment",
			ErrEntryPoints, vertexCount, fragmentCount)
	}
	return eps, nil
}
