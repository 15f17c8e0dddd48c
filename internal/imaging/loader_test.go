package imaging

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a grayscale gradient PNG with a flat top band and
// returns its path.
func writeTestPNG(t *testing.T, width, height, band int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(200)
			if y >= band {
				v = uint8((x*29 + y*53) % 251)
			}
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return path
}

func writeTestGIF(t *testing.T, frames int) string {
	t.Helper()

	g := &gif.GIF{Config: image.Config{Width: 8, Height: 8}}
	palette := color.Palette{color.Black, color.White, color.Gray{Y: 128}}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 8, 8), palette)
		for p := range frame.Pix {
			frame.Pix[p] = uint8((p + i) % 3)
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 10)
	}

	path := filepath.Join(t.TempDir(), "test.gif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		t.Fatalf("failed to encode gif: %v", err)
	}
	return path
}

func TestLoad_SingleFrame(t *testing.T) {
	path := writeTestPNG(t, 20, 10, 2)

	d, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if d.Width != 20 || d.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", d.Width, d.Height)
	}
	if d.Format != "png" {
		t.Errorf("format: got %s, want png", d.Format)
	}
	if d.FrameCount != 1 || len(d.Frames) != 1 {
		t.Fatalf("frames: got %d/%d, want 1/1", len(d.Frames), d.FrameCount)
	}
	if d.Multiplier != 1.0 {
		t.Errorf("multiplier: got %v, want 1.0", d.Multiplier)
	}

	// Gray input survives grayscale conversion exactly.
	f := d.Frames[0]
	if f.Width != 20 || f.Height != 10 {
		t.Fatalf("frame dimensions: got %dx%d, want 20x10", f.Width, f.Height)
	}
	if got := f.At(5, 0); got != 200 {
		t.Errorf("flat band pixel: got %d, want 200", got)
	}
}

func TestLoad_GIFAllFrames(t *testing.T) {
	path := writeTestGIF(t, 5)

	d, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Format != "gif" {
		t.Errorf("format: got %s, want gif", d.Format)
	}
	if d.FrameCount != 5 || len(d.Frames) != 5 {
		t.Errorf("frames: got %d/%d, want 5/5", len(d.Frames), d.FrameCount)
	}
}

func TestLoad_GIFFrameCap(t *testing.T) {
	path := writeTestGIF(t, 6)

	d, err := Load(path, LoadOptions{MaxFrames: 2, Seed: 3})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.FrameCount != 6 {
		t.Errorf("frame count: got %d, want 6", d.FrameCount)
	}
	if len(d.Frames) != 2 {
		t.Errorf("kept frames: got %d, want 2", len(d.Frames))
	}
}

func TestLoad_Downscale(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		size       int
		wantW      int
		wantH      int
		multiplier float64
	}{
		{"landscape", 40, 20, 10, 10, 5, 4.0},
		{"portrait", 20, 40, 10, 5, 10, 4.0},
		{"square", 30, 30, 10, 10, 10, 3.0},
		{"already small", 8, 6, 10, 8, 6, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestPNG(t, tt.w, tt.h, 1)

			d, err := Load(path, LoadOptions{Size: tt.size})
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			f := d.Frames[0]
			if f.Width != tt.wantW || f.Height != tt.wantH {
				t.Errorf("working size: got %dx%d, want %dx%d", f.Width, f.Height, tt.wantW, tt.wantH)
			}
			if d.Multiplier != tt.multiplier {
				t.Errorf("multiplier: got %v, want %v", d.Multiplier, tt.multiplier)
			}
			// Source stays at original resolution.
			if d.Width != tt.w || d.Height != tt.h {
				t.Errorf("source dimensions: got %dx%d, want %dx%d", d.Width, d.Height, tt.w, tt.h)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png"), LoadOptions{}); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoad_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := Load(path, LoadOptions{}); err == nil {
		t.Error("expected a decode error")
	}
}

func TestCache(t *testing.T) {
	path := writeTestPNG(t, 10, 10, 1)
	cache := NewCache()

	a, err := cache.Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	b, err := cache.Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if a != b {
		t.Error("second Load should return the cached bundle")
	}

	cache.Evict(path)
	c, err := cache.Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	if c == a {
		t.Error("Evict should force a re-decode")
	}

	cache.Clear()
}
