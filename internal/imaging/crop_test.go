package imaging

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"borderscan/internal/scan"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestContentRect(t *testing.T) {
	tests := []struct {
		name       string
		borders    scan.BorderSet
		multiplier float64
		want       image.Rectangle
	}{
		{"no borders", scan.BorderSet{}, 1.0, image.Rect(0, 0, 100, 80)},
		{"all sides", scan.BorderSet{2, 3, 4, 5}, 1.0, image.Rect(5, 2, 97, 76)},
		{"scaled up", scan.BorderSet{2, 0, 0, 3}, 2.5, image.Rect(8, 5, 100, 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContentRect(100, 80, tt.borders, tt.multiplier)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropBorders(t *testing.T) {
	img := solidImage(40, 30, color.RGBA{10, 20, 30, 255})

	cropped, rect, err := CropBorders(img, scan.BorderSet{5, 0, 0, 10}, 1.0)
	if err != nil {
		t.Fatalf("CropBorders failed: %v", err)
	}
	if want := image.Rect(10, 5, 40, 30); rect != want {
		t.Errorf("rect: got %v, want %v", rect, want)
	}
	if cropped.Bounds().Dx() != 30 || cropped.Bounds().Dy() != 25 {
		t.Errorf("cropped size: got %dx%d, want 30x25",
			cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
}

func TestCropBorders_NothingLeft(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{0, 0, 0, 255})

	if _, _, err := CropBorders(img, scan.BorderSet{5, 0, 5, 0}, 1.0); err == nil {
		t.Error("expected an error when borders consume the whole image")
	}
}

func TestSavePNG(t *testing.T) {
	img := solidImage(4, 4, color.RGBA{1, 2, 3, 255})
	path := filepath.Join(t.TempDir(), "out.png")

	if err := SavePNG(img, path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	d, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("reloading saved png failed: %v", err)
	}
	if d.Width != 4 || d.Height != 4 {
		t.Errorf("round trip dimensions: got %dx%d, want 4x4", d.Width, d.Height)
	}
}
