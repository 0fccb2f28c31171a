// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewPixmap(t *testing.T) {
	p := NewPixmap(10, 20)

	if p.Width() != 10 || p.Height() != 20 {
		t.Errorf("size = %dx%d, want 10x20", p.Width(), p.Height())
	}
	if p.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", p.Format())
	}
	if len(p.Pixels()) != 10*20*4 {
		t.Errorf("len(Pixels) = %d, want %d", len(p.Pixels()), 10*20*4)
	}
	if p.Stride() != 40 {
		t.Errorf("Stride = %d, want 40", p.Stride())
	}
	if got := p.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("initial pixel = %v, want transparent black", got)
	}
}

func TestPixmapSetAt(t *testing.T) {
	p := NewPixmap(4, 4)
	want := color.RGBA{R: 77, G: 51, B: 26, A: 255}
	p.Set(2, 3, want)

	if got := p.At(2, 3); got != want {
		t.Errorf("At(2,3) = %v, want %v", got, want)
	}
	if got := p.At(3, 2); got != (color.RGBA{}) {
		t.Errorf("At(3,2) = %v, want untouched", got)
	}
}

func TestPixmapSharesStorageWithImage(t *testing.T) {
	p := NewPixmap(4, 4)
	p.Image().SetRGBA(1, 1, color.RGBA{R: 255, A: 255})
	if got := p.At(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Error("Image() does not share storage with the pixmap")
	}
}

func TestNewPixmapFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.SetRGBA(0, 0, color.RGBA{G: 128, A: 255})

	p := NewPixmapFromImage(img)
	if got := p.At(0, 0); got != (color.RGBA{G: 128, A: 255}) {
		t.Errorf("At(0,0) = %v, want wrapped image content", got)
	}
}

func TestPixmapSavePNG(t *testing.T) {
	p := NewPixmap(8, 8)
	p.Set(4, 4, color.RGBA{R: 77, G: 51, B: 26, A: 255})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := p.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds = %v, want 8x8", decoded.Bounds())
	}
}

func TestPixmapImplementsTarget(t *testing.T) {
	var _ Target = (*Pixmap)(nil)
}
