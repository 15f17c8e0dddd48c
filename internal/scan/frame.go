package scan

import "image"

// Frame is a single-channel intensity raster. Pixels are stored row-major;
// the value at (x, y) is Pix[y*Width+x]. Frames are immutable once handed to
// a scan.
type Frame struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

// FrameFromGray copies the Y channel of a grayscale image into a Frame.
func FrameFromGray(img *image.Gray) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		row := img.Pix[(y+b.Min.Y-img.Rect.Min.Y)*img.Stride+(b.Min.X-img.Rect.Min.X):]
		copy(f.Pix[y*f.Width:(y+1)*f.Width], row[:f.Width])
	}
	return f
}

// At returns the intensity at (x, y). No bounds checking beyond the slice's.
func (f *Frame) At(x, y int) uint8 {
	return f.Pix[y*f.Width+x]
}

// Set writes the intensity at (x, y). Intended for construction only.
func (f *Frame) Set(x, y int, v uint8) {
	f.Pix[y*f.Width+x] = v
}

// rotated returns a zero-copy view of the frame turned counter-clockwise
// `side` times. Views index into the original pixel buffer, so four side
// scans share one frame allocation.
func (f *Frame) rotated(side int) rotatedView {
	v := rotatedView{frame: f, turns: side & 3}
	if v.turns%2 == 0 {
		v.width, v.height = f.Width, f.Height
	} else {
		v.width, v.height = f.Height, f.Width
	}
	return v
}

// rotatedView maps (x, y) coordinates of a counter-clockwise-rotated frame
// back onto the source buffer.
type rotatedView struct {
	frame  *Frame
	turns  int
	width  int
	height int
}

func (v rotatedView) at(x, y int) uint8 {
	f := v.frame
	switch v.turns {
	case 1:
		// Row 0 of the view is the rightmost source column.
		return f.At(f.Width-1-y, x)
	case 2:
		return f.At(f.Width-1-x, f.Height-1-y)
	case 3:
		return f.At(y, f.Height-1-x)
	default:
		return f.At(x, y)
	}
}

// gather appends the intensities of rows [top, bottom) restricted to the
// given view columns, in row-major order, reusing buf's backing array.
func (v rotatedView) gather(cols []int, top, bottom int, buf []uint8) []uint8 {
	buf = buf[:0]
	for y := top; y < bottom; y++ {
		for _, x := range cols {
			buf = append(buf, v.at(x, y))
		}
	}
	return buf
}
