// Command tridemo renders the two demo programs to PNG files: the
// bufferless triangle and an indexed pentagon drawn through the
// attribute pass-through program.
//
// By default frames are rendered on the software pipeline. With -gpu the
// same programs run on the first available adapter through gogpu/wgpu,
// so the two outputs can be compared pixel by pixel.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tri"
	"github.com/gogpu/tri/gpu"
	"github.com/gogpu/tri/render"
)

// clearColor is the background every frame starts from.
var clearColor = gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

func main() {
	var (
		out     = flag.String("out", ".", "output directory for PNG files")
		size    = flag.String("size", "640x480", "frame size as WxH")
		samples = flag.Int("samples", 1, "sample count: 1 or 4")
		useGPU  = flag.Bool("gpu", false, "render on the GPU instead of in software")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		tri.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	width, height, err := parseSize(*size)
	if err != nil {
		log.Fatalf("bad -size: %v", err)
	}

	if *useGPU {
		if err := runGPU(*out, width, height); err != nil {
			log.Fatalf("GPU rendering failed: %v", err)
		}
		return
	}
	if err := runSoftware(*out, width, height, *samples); err != nil {
		log.Fatalf("software rendering failed: %v", err)
	}
}

func runSoftware(dir string, width, height, samples int) error {
	cfg := render.DefaultConfig()
	cfg.SampleCount = samples
	cfg.ClearColor = clearColor

	// Bufferless triangle: three vertices, no buffers.
	target := render.NewPixmap(width, height)
	pipe := render.NewPipeline(tri.BufferlessTriangle(), cfg)
	if err := pipe.Clear(target); err != nil {
		return err
	}
	if err := pipe.Draw(target, nil, 0, 3); err != nil {
		return err
	}
	if err := save(target, dir, "triangle.png"); err != nil {
		return err
	}

	// Indexed pentagon through the pass-through program.
	target = render.NewPixmap(width, height)
	pipe = render.NewPipeline(tri.Passthrough(), cfg)
	if err := pipe.Clear(target); err != nil {
		return err
	}
	err := pipe.DrawIndexed(target, tri.PentagonVertices(), tri.PentagonIndices(),
		0, len(tri.PentagonIndices()))
	if err != nil {
		return err
	}
	return save(target, dir, "pentagon.png")
}

func runGPU(dir string, width, height int) error {
	backend := gpu.NewBackend()
	if err := backend.Init(); err != nil {
		return err
	}
	defer backend.Close()
	log.Printf("rendering on %s", backend.AdapterName())

	r, err := gpu.NewRenderer(backend, tri.BufferlessTriangle(), width, height)
	if err != nil {
		return err
	}
	frame, err := r.Draw(clearColor, nil, 3)
	r.Close()
	if err != nil {
		return err
	}
	if err := save(frame, dir, "triangle.png"); err != nil {
		return err
	}

	r, err = gpu.NewRenderer(backend, tri.Passthrough(), width, height)
	if err != nil {
		return err
	}
	frame, err = r.DrawIndexed(clearColor, tri.PentagonVertices(),
		tri.PentagonIndices(), len(tri.PentagonIndices()))
	r.Close()
	if err != nil {
		return err
	}
	return save(frame, dir, "pentagon.png")
}

func save(p *render.Pixmap, dir, name string) error {
	path := filepath.Join(dir, name)
	if err := p.SavePNG(path); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d)", path, p.Width(), p.Height())
	return nil
}

func parseSize(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	if _, err := fmt.Sscanf(w+" "+h, "%d %d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("dimensions must be positive, got %q", s)
	}
	return width, height, nil
}
