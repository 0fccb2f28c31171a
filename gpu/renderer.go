package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tri"
	"github.com/gogpu/tri/render"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row alignment WebGPU requires for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// fenceTimeout bounds the wait for frame completion.
const fenceTimeout = 5 * time.Second

// Renderer draws one program offscreen. Each Draw or DrawIndexed call is
// a complete frame: clear, draw, readback into a render.Pixmap.
//
// The renderer borrows the backend's device and queue; Close releases
// only the renderer's own pipeline objects.
type Renderer struct {
	backend *Backend
	prog    tri.Program
	res     *pipelineResources
	width   int
	height  int
}

// NewRenderer builds a render pipeline for the program at the given
// offscreen size. The backend must be initialized.
func NewRenderer(b *Backend, prog tri.Program, width, height int) (*Renderer, error) {
	if !b.IsInitialized() {
		return nil, ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	res, err := buildRenderPipeline(b.Device(), prog)
	if err != nil {
		return nil, fmt.Errorf("gpu: build pipeline for %s: %w", prog.Name, err)
	}

	tri.Logger().Debug("gpu: renderer created",
		"program", prog.Name, "width", width, "height", height)

	return &Renderer{
		backend: b,
		prog:    prog,
		res:     res,
		width:   width,
		height:  height,
	}, nil
}

// Close releases the renderer's pipeline resources. The backend's device
// is untouched.
func (r *Renderer) Close() {
	if r.res != nil {
		r.res.destroy(r.backend.Device())
		r.res = nil
	}
}

// Draw renders one frame with a non-indexed draw of count vertices.
// Bufferless programs pass nil vertices; the vertex stage sees ordinals
// 0..count-1.
func (r *Renderer) Draw(clear gputypes.Color, vertices []tri.Vertex, count int) (*render.Pixmap, error) {
	if !r.prog.Bufferless() {
		if vertices == nil {
			return nil, fmt.Errorf("gpu: program %s requires a vertex buffer", r.prog.Name)
		}
		if count > len(vertices) {
			return nil, fmt.Errorf("gpu: draw count %d exceeds %d vertices", count, len(vertices))
		}
	}
	return r.renderFrame(clear, vertices, nil, count)
}

// DrawIndexed renders one frame with an indexed draw of count indices.
// The index buffer is padded to 4-byte alignment before upload; the
// draw uses the unpadded count.
func (r *Renderer) DrawIndexed(clear gputypes.Color, vertices []tri.Vertex, indices []uint16, count int) (*render.Pixmap, error) {
	if count > len(indices) {
		return nil, fmt.Errorf("gpu: draw count %d exceeds %d indices", count, len(indices))
	}
	if !r.prog.Bufferless() && vertices == nil {
		return nil, fmt.Errorf("gpu: program %s requires a vertex buffer", r.prog.Name)
	}
	return r.renderFrame(clear, vertices, indices, count)
}

// renderFrame encodes one offscreen frame and reads the color target
// back. Frame resources are created fresh per call and destroyed before
// returning.
func (r *Renderer) renderFrame(clear gputypes.Color, vertices []tri.Vertex, indices []uint16, count int) (*render.Pixmap, error) {
	if r.res == nil {
		return nil, ErrNotInitialized
	}
	device := r.backend.Device()
	queue := r.backend.Queue()
	w := uint32(r.width)  //nolint:gosec // validated positive at construction
	h := uint32(r.height) //nolint:gosec // validated positive at construction

	// Color target: single-sample RGBA8, rendered then copied out.
	colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         r.prog.Name + "_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create color texture: %w", err)
	}
	defer device.DestroyTexture(colorTex)

	colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: r.prog.Name + "_color_view",
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create color view: %w", err)
	}
	defer device.DestroyTextureView(colorView)

	var vertBuf hal.Buffer
	if !r.prog.Bufferless() && len(vertices) > 0 {
		vertBuf, err = r.uploadBuffer(r.prog.Name+"_verts",
			tri.EncodeVertices(vertices),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		defer device.DestroyBuffer(vertBuf)
	}

	var idxBuf hal.Buffer
	if indices != nil {
		idxBuf, err = r.uploadBuffer(r.prog.Name+"_indices",
			tri.EncodeIndices(tri.PadIndices(indices)),
			gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		defer device.DestroyBuffer(idxBuf)
	}

	// Readback staging buffer. Rows are aligned to the copy pitch.
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.prog.Name + "_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(stagingBuf)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: r.prog.Name + "_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(r.prog.Name + "_frame"); err != nil {
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: r.prog.Name + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       colorView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
	})
	rp.SetPipeline(r.res.pipeline)
	if vertBuf != nil {
		rp.SetVertexBuffer(0, vertBuf, 0)
	}
	if idxBuf != nil {
		rp.SetIndexBuffer(idxBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(uint32(count), 1, 0, 0, 0) //nolint:gosec // counts validated
	} else {
		rp.Draw(uint32(count), 1, 0, 0) //nolint:gosec // counts validated
	}
	rp.End()

	// The pass leaves the texture as a render attachment; the copy needs
	// a transfer source.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("gpu: create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("gpu: submit: %w", err)
	}
	fenceOK, err := device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("gpu: wait for frame: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("gpu: readback: %w", err)
	}

	// Strip row padding into a tight RGBA pixmap.
	pixmap := render.NewPixmap(r.width, r.height)
	pix := pixmap.Pixels()
	for row := uint32(0); row < h; row++ {
		src := readback[row*alignedBytesPerRow : row*alignedBytesPerRow+bytesPerRow]
		copy(pix[int(row)*pixmap.Stride():], src)
	}

	tri.Logger().Debug("gpu: frame complete",
		"program", r.prog.Name, "count", count, "indexed", idxBuf != nil)
	return pixmap, nil
}

// uploadBuffer creates a GPU buffer and writes data through the queue.
func (r *Renderer) uploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.backend.Device().CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	r.backend.Queue().WriteBuffer(buf, 0, data)
	return buf, nil
}
