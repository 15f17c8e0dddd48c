package imaging

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"borderscan/internal/scan"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL space: hue in degrees (0-360),
// saturation and lightness as fractions (0-1).
type HSLColor struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// MarginColorResult describes the average color of the detected margins.
//
// Callers that crop the margins away and later re-pad the image (for a
// different aspect ratio, say) can refill with this color to keep the result
// visually seamless.
type MarginColorResult struct {
	Hex    string   `json:"hex"`
	RGB    RGBColor `json:"rgb"`
	HSL    HSLColor `json:"hsl"`
	Pixels int      `json:"pixels"` // number of margin pixels averaged
}

// MarginColor averages the source pixels inside the detected margins.
//
// The margin region is everything outside ContentRect. An empty border set
// has no margin pixels and yields an error.
func MarginColor(img image.Image, borders scan.BorderSet, multiplier float64) (*MarginColorResult, error) {
	b := img.Bounds()
	content := ContentRect(b.Dx(), b.Dy(), borders, multiplier).Add(b.Min)

	var sumR, sumG, sumB float64
	pixels := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if image.Pt(x, y).In(content) {
				continue
			}
			r, g, bl, _ := img.At(x, y).RGBA()
			sumR += float64(r >> 8)
			sumG += float64(g >> 8)
			sumB += float64(bl >> 8)
			pixels++
		}
	}
	if pixels == 0 {
		return nil, fmt.Errorf("border set %v has no margin pixels", borders)
	}

	c := colorful.Color{
		R: sumR / float64(pixels) / 255.0,
		G: sumG / float64(pixels) / 255.0,
		B: sumB / float64(pixels) / 255.0,
	}
	h, s, l := c.Hsl()
	r8, g8, b8 := c.RGB255()

	return &MarginColorResult{
		Hex:    c.Hex(),
		RGB:    RGBColor{R: r8, G: g8, B: b8},
		HSL:    HSLColor{H: h, S: s, L: l},
		Pixels: pixels,
	}, nil
}
