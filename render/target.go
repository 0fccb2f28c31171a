// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/gputypes"
)

// Target is a destination for rendered fragments: a CPU-addressable
// RGBA8 pixel grid laid out row by row.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns direct access to pixel data.
	// Each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// Pixmap is a CPU-backed render target using *image.RGBA.
//
// A Pixmap is single-writer: draws to the same pixmap must not overlap.
// Draws to different pixmaps may run concurrently.
type Pixmap struct {
	img *image.RGBA
}

// NewPixmap creates an RGBA8 render target of the given size. All pixels
// start fully transparent black.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewPixmapFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapFromImage(img *image.RGBA) *Pixmap {
	return &Pixmap{img: img}
}

// Width returns the target width in pixels.
func (p *Pixmap) Width() int {
	return p.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (p *Pixmap) Height() int {
	return p.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (p *Pixmap) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (p *Pixmap) Pixels() []byte {
	return p.img.Pix
}

// Stride returns the number of bytes per row.
func (p *Pixmap) Stride() int {
	return p.img.Stride
}

// At returns the color of the pixel at (x, y).
func (p *Pixmap) At(x, y int) color.RGBA {
	return p.img.RGBAAt(x, y)
}

// Set writes the color of the pixel at (x, y).
func (p *Pixmap) Set(x, y int, c color.RGBA) {
	p.img.SetRGBA(x, y, c)
}

// Image returns the backing *image.RGBA. The pixmap and the image share
// storage.
func (p *Pixmap) Image() *image.RGBA {
	return p.img
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.img)
}
