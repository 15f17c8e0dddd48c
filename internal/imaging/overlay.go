package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"borderscan/internal/scan"
)

// Overlay draws the detected border lines onto a copy of the source image,
// with a per-side offset label next to each line. Sides with offset 0 get
// neither line nor label. Intended for debugging threshold/indent tuning.
func Overlay(img image.Image, borders scan.BorderSet, multiplier float64) *image.RGBA {
	b := img.Bounds()
	result := image.NewRGBA(b)
	draw.Draw(result, b, img, b.Min, draw.Src)

	w, h := b.Dx(), b.Dy()
	rect := ContentRect(w, h, borders, multiplier)
	lineColor := color.RGBA{255, 0, 0, 255}

	if borders.Top() > 0 {
		drawHLine(result, rect.Min.Y, lineColor)
		drawLabel(result, 2, rect.Min.Y+4, fmt.Sprintf("top %d", borders.Top()))
	}
	if borders.Bottom() > 0 {
		drawHLine(result, rect.Max.Y-1, lineColor)
		drawLabel(result, 2, rect.Max.Y-6, fmt.Sprintf("bottom %d", borders.Bottom()))
	}
	if borders.Left() > 0 {
		drawVLine(result, rect.Min.X, lineColor)
		drawLabel(result, rect.Min.X+4, 14, fmt.Sprintf("left %d", borders.Left()))
	}
	if borders.Right() > 0 {
		drawVLine(result, rect.Max.X-1, lineColor)
		drawLabel(result, rect.Max.X-60, 14, fmt.Sprintf("right %d", borders.Right()))
	}

	return result
}

func drawHLine(img *image.RGBA, y int, c color.RGBA) {
	b := img.Bounds()
	if y < 0 || y >= b.Dy() {
		return
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		img.SetRGBA(x, b.Min.Y+y, c)
	}
}

func drawVLine(img *image.RGBA, x int, c color.RGBA) {
	b := img.Bounds()
	if x < 0 || x >= b.Dx() {
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		img.SetRGBA(b.Min.X+x, y, c)
	}
}

// drawLabel renders text at (x, y) relative to the image origin.
func drawLabel(img *image.RGBA, x, y int, text string) {
	b := img.Bounds()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{255, 0, 0, 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(b.Min.X + x), Y: fixed.I(b.Min.Y + y)},
	}
	d.DrawString(text)
}
