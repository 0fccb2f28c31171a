// Package tri provides the two canonical first-triangle shader programs
// for the GoGPU ecosystem, in both WGSL and pure-Go form.
//
// # Overview
//
// Every GPU tutorial starts with the same two programs: a pass-through
// pipeline that forwards per-vertex position and color attributes, and a
// bufferless pipeline that derives a fixed triangle from the built-in
// vertex index alone. tri packages exactly those two programs so the rest
// of the ecosystem (examples, backend smoke tests, tooling) has a shared,
// well-tested definition of them.
//
// Each program carries its stages twice:
//
//   - as embedded WGSL source, compiled at pipeline-creation time and
//     executed by a GPU through gogpu/wgpu (package gpu);
//   - as pure Go functions with the same stage contract, executed by the
//     software pipeline (packages raster and render) with no GPU at all.
//
// The two forms are kept in lockstep by tests: the Go stages are the
// reference semantics, the WGSL is the deployable artifact.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/tri"
//	    "github.com/gogpu/tri/render"
//	)
//
//	// Draw the classic bufferless triangle, no GPU required.
//	target := render.NewPixmap(640, 480)
//	pipe := render.NewPipeline(tri.BufferlessTriangle(), render.DefaultConfig())
//	pipe.Clear(target)
//	pipe.Draw(target, nil, 0, 3)
//	_ = target.SavePNG("triangle.png")
//
// # Stage Contract
//
// A vertex stage is a pure function invoked once per vertex; it returns a
// clip-space position and any varyings. The rasterizer interpolates
// varyings across covered fragments. A fragment stage is a pure function
// invoked once per covered fragment; it returns the RGBA color written to
// the first color attachment. Neither stage has side effects, shared
// state, or error paths; both may be invoked from any goroutine.
//
// Both programs fix the clip-space w component to 1.0, so no perspective
// division takes place anywhere in the pipeline.
package tri
