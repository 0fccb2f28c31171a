// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tri"
	"github.com/gogpu/tri/raster"
)

// Errors returned by pipeline draw operations.
var (
	// ErrNilTarget is returned when a draw or clear is given a nil target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrMissingStage is returned when the program lacks a CPU stage.
	ErrMissingStage = errors.New("render: program is missing a CPU stage")

	// ErrNoVertexBuffer is returned when a program that declares a vertex
	// buffer layout is drawn without vertex data.
	ErrNoVertexBuffer = errors.New("render: program requires a vertex buffer")

	// ErrVertexOutOfRange is returned when a draw range exceeds the
	// supplied vertex data.
	ErrVertexOutOfRange = errors.New("render: vertex range exceeds buffer")

	// ErrIndexOutOfRange is returned when an indexed draw range exceeds
	// the index data, or an index references a missing vertex.
	ErrIndexOutOfRange = errors.New("render: index out of range")

	// ErrUnsupportedTopology is returned for topologies other than
	// triangle lists.
	ErrUnsupportedTopology = errors.New("render: unsupported primitive topology")

	// ErrSampleCount is returned for sample counts other than 1 and 4.
	ErrSampleCount = errors.New("render: sample count must be 1 or 4")
)

// Config holds the fixed-function state of a software pipeline.
type Config struct {
	// Topology selects primitive assembly. Only triangle lists are
	// supported; every three consecutive vertices form one triangle and
	// a trailing partial triangle is dropped.
	Topology gputypes.PrimitiveTopology

	// FrontFace selects which NDC winding order is front-facing.
	FrontFace gputypes.FrontFace

	// CullMode drops front- or back-facing triangles before
	// rasterization.
	CullMode gputypes.CullMode

	// SampleCount is 1 for aliased rendering or 4 for supersampled
	// rendering (2x per axis with a bilinear resolve).
	SampleCount int

	// ClearColor is the color Clear fills the target with.
	ClearColor gputypes.Color
}

// DefaultConfig returns the pipeline state a first-triangle host sets up:
// triangle list, counter-clockwise front face, back-face culling, single
// sampling, opaque black clear.
func DefaultConfig() Config {
	return Config{
		Topology:    gputypes.PrimitiveTopologyTriangleList,
		FrontFace:   gputypes.FrontFaceCCW,
		CullMode:    gputypes.CullModeBack,
		SampleCount: 1,
		ClearColor:  gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	}
}

// Pipeline executes one shader program under a fixed Config. The zero
// fields of Config are normalized at construction, so a zero Config
// behaves like single-sampled triangle-list state.
//
// A Pipeline is immutable after construction and safe for concurrent
// draws to different targets. A single target is single-writer.
type Pipeline struct {
	prog tri.Program
	cfg  Config
}

// NewPipeline creates a software pipeline for the program. A zero
// SampleCount is normalized to 1 and a zero Topology to triangle list.
// Invalid configuration is reported by the first draw, matching where a
// GPU host learns that its pipeline does not build.
func NewPipeline(prog tri.Program, cfg Config) *Pipeline {
	if cfg.SampleCount == 0 {
		cfg.SampleCount = 1
	}
	var zeroTopology gputypes.PrimitiveTopology
	if cfg.Topology == zeroTopology {
		cfg.Topology = gputypes.PrimitiveTopologyTriangleList
	}
	return &Pipeline{prog: prog, cfg: cfg}
}

// Program returns the program this pipeline executes.
func (p *Pipeline) Program() tri.Program {
	return p.prog
}

// Config returns the normalized pipeline state.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Clear fills the target with the configured clear color.
func (p *Pipeline) Clear(target Target) error {
	if target == nil {
		return ErrNilTarget
	}
	pix := target.Pixels()
	stride := target.Stride()
	w, h := target.Width(), target.Height()

	c := [4]uint8{
		unorm8(float32(p.cfg.ClearColor.R)),
		unorm8(float32(p.cfg.ClearColor.G)),
		unorm8(float32(p.cfg.ClearColor.B)),
		unorm8(float32(p.cfg.ClearColor.A)),
	}
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*4]
		for x := 0; x < w*4; x += 4 {
			copy(row[x:x+4], c[:])
		}
	}
	return nil
}

// Draw renders count vertices starting at first. The built-in vertex
// index seen by the vertex stage is the ordinal within the draw call.
//
// Bufferless programs draw with nil vertices; programs with a vertex
// buffer layout fetch attributes from the vertices slice.
func (p *Pipeline) Draw(target Target, vertices []tri.Vertex, first, count int) error {
	if err := p.validate(target); err != nil {
		return err
	}
	if !p.prog.Bufferless() {
		if vertices == nil {
			return ErrNoVertexBuffer
		}
		if first < 0 || first+count > len(vertices) {
			return fmt.Errorf("%w: first=%d count=%d of %d vertices",
				ErrVertexOutOfRange, first, count, len(vertices))
		}
	}

	fetch := func(i int) tri.VertexIn {
		in := tri.VertexIn{Index: uint32(first + i)} //nolint:gosec // draw counts fit uint32
		if !p.prog.Bufferless() {
			v := vertices[first+i]
			in.Position = v.Position
			in.Color = v.Color
		}
		return in
	}
	return p.rasterize(target, fetch, count)
}

// DrawIndexed renders count indices starting at firstIndex. The built-in
// vertex index seen by the vertex stage is the value fetched from the
// index buffer, and attributes are fetched from the indexed vertex.
func (p *Pipeline) DrawIndexed(target Target, vertices []tri.Vertex, indices []uint16, firstIndex, count int) error {
	if err := p.validate(target); err != nil {
		return err
	}
	if firstIndex < 0 || firstIndex+count > len(indices) {
		return fmt.Errorf("%w: firstIndex=%d count=%d of %d indices",
			ErrIndexOutOfRange, firstIndex, count, len(indices))
	}
	if !p.prog.Bufferless() {
		if vertices == nil {
			return ErrNoVertexBuffer
		}
		for _, idx := range indices[firstIndex : firstIndex+count] {
			if int(idx) >= len(vertices) {
				return fmt.Errorf("%w: index %d of %d vertices",
					ErrIndexOutOfRange, idx, len(vertices))
			}
		}
	}

	fetch := func(i int) tri.VertexIn {
		idx := indices[firstIndex+i]
		in := tri.VertexIn{Index: uint32(idx)}
		if !p.prog.Bufferless() {
			v := vertices[idx]
			in.Position = v.Position
			in.Color = v.Color
		}
		return in
	}
	return p.rasterize(target, fetch, count)
}

func (p *Pipeline) validate(target Target) error {
	if target == nil {
		return ErrNilTarget
	}
	if p.prog.Vertex == nil || p.prog.Fragment == nil {
		return ErrMissingStage
	}
	if p.cfg.Topology != gputypes.PrimitiveTopologyTriangleList {
		return fmt.Errorf("%w: %v", ErrUnsupportedTopology, p.cfg.Topology)
	}
	if p.cfg.SampleCount != 1 && p.cfg.SampleCount != 4 {
		return fmt.Errorf("%w: got %d", ErrSampleCount, p.cfg.SampleCount)
	}
	return nil
}

// rasterize assembles triangles from the fetched vertices and shades
// them into the target, supersampling when configured.
func (p *Pipeline) rasterize(target Target, fetch func(int) tri.VertexIn, count int) error {
	dst := targetImage(target)
	scale := 1
	if p.cfg.SampleCount == 4 {
		scale = 2
	}

	frame := dst
	if scale != 1 {
		// Render at 2x per axis, then resolve. Existing target content
		// is carried into the high-resolution frame first so draws stay
		// incremental.
		hi := image.NewRGBA(image.Rect(0, 0, dst.Rect.Dx()*scale, dst.Rect.Dy()*scale))
		xdraw.NearestNeighbor.Scale(hi, hi.Bounds(), dst, dst.Bounds(), xdraw.Src, nil)
		frame = hi
	}

	vp := raster.Viewport{Width: frame.Rect.Dx(), Height: frame.Rect.Dy()}
	rcfg := raster.Config{FrontFace: p.cfg.FrontFace, CullMode: p.cfg.CullMode}
	emit := func(f raster.Fragment) {
		writePixel(frame, f.X, f.Y, p.prog.Fragment(f.In))
	}

	triangles := 0
	for i := 0; i+3 <= count; i += 3 {
		v0 := p.prog.Vertex(fetch(i))
		v1 := p.prog.Vertex(fetch(i + 1))
		v2 := p.prog.Vertex(fetch(i + 2))
		if err := raster.Triangle(vp, rcfg, v0, v1, v2, emit); err != nil {
			return fmt.Errorf("render: triangle %d: %w", triangles, err)
		}
		triangles++
	}

	if scale != 1 {
		xdraw.BiLinear.Scale(dst, dst.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
	}

	tri.Logger().Debug("render: draw complete",
		"program", p.prog.Name,
		"triangles", triangles,
		"samples", p.cfg.SampleCount)
	return nil
}

// targetImage wraps a Target's pixel storage as an *image.RGBA header.
// The image and the target share storage.
func targetImage(t Target) *image.RGBA {
	return &image.RGBA{
		Pix:    t.Pixels(),
		Stride: t.Stride(),
		Rect:   image.Rect(0, 0, t.Width(), t.Height()),
	}
}

// writePixel converts a fragment color to unorm8 and stores it, replacing
// the previous value (no blending).
func writePixel(img *image.RGBA, x, y int, c tri.Vec4) {
	off := y*img.Stride + x*4
	img.Pix[off+0] = unorm8(c.X)
	img.Pix[off+1] = unorm8(c.Y)
	img.Pix[off+2] = unorm8(c.Z)
	img.Pix[off+3] = unorm8(c.W)
}

// unorm8 converts a normalized float32 channel to 8-bit with round-half-up,
// clamping out-of-range values.
func unorm8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
