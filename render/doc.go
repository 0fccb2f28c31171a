// Package render runs shader programs through a software implementation
// of the fixed-function pipeline: vertex fetch, per-vertex stage
// invocation, primitive assembly, rasterization, per-fragment stage
// invocation, and unorm8 color writes to an offscreen target.
//
// It produces the same images as the GPU pipeline in package gpu, with no
// GPU and no native dependencies, which makes it the reference
// implementation the shader programs are tested against.
//
//	target := render.NewPixmap(640, 480)
//	pipe := render.NewPipeline(tri.BufferlessTriangle(), render.DefaultConfig())
//	pipe.Clear(target)
//	if err := pipe.Draw(target, nil, 0, 3); err != nil {
//	    log.Fatal(err)
//	}
//	_ = target.SavePNG("triangle.png")
package render
