package imaging

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/disintegration/imaging"

	"borderscan/internal/scan"
)

// ContentRect converts a detected border set into the content rectangle of
// the source image. Offsets were measured on working frames, so each one is
// scaled by multiplier before being applied to the source dimensions.
func ContentRect(width, height int, borders scan.BorderSet, multiplier float64) image.Rectangle {
	top := scaleOffset(borders.Top(), multiplier)
	right := scaleOffset(borders.Right(), multiplier)
	bottom := scaleOffset(borders.Bottom(), multiplier)
	left := scaleOffset(borders.Left(), multiplier)

	return image.Rect(left, top, width-right, height-bottom)
}

func scaleOffset(offset int, multiplier float64) int {
	return int(math.Round(float64(offset) * multiplier))
}

// CropBorders removes the detected margins from an image.
//
// Returns the cropped image together with the rectangle that was kept.
// An error is returned if the borders would consume the whole image.
func CropBorders(img image.Image, borders scan.BorderSet, multiplier float64) (image.Image, image.Rectangle, error) {
	b := img.Bounds()
	rect := ContentRect(b.Dx(), b.Dy(), borders, multiplier)
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return nil, image.Rectangle{}, fmt.Errorf("borders %v leave no content to crop", borders)
	}

	return imaging.Crop(img, rect.Add(b.Min)), rect, nil
}

// SavePNG writes an image to path as PNG.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
