package imaging

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"borderscan/internal/scan"
)

// LoadOptions controls how a source image becomes working frames.
type LoadOptions struct {
	// Size bounds the working resolution. If the source exceeds Size on
	// either axis it is downscaled, aspect-preserving, so the larger axis
	// equals Size, and the Multiplier of the result records the scale back
	// to source pixels. Zero disables downscaling.
	Size int

	// MaxFrames caps how many frames of an animated source are kept; the
	// kept subset is chosen uniformly at random with frame order preserved.
	// Zero keeps every frame.
	MaxFrames int

	// Seed feeds the frame-subset sampler.
	Seed int64
}

// Decoded is a source image prepared for border scanning.
type Decoded struct {
	// Frames are the grayscale working frames, in source frame order.
	Frames []*scan.Frame

	// Multiplier maps working-frame offsets back to source pixels. It is
	// 1.0 unless the source was downscaled.
	Multiplier float64

	// Width and Height are the source dimensions in pixels.
	Width  int
	Height int

	// FrameCount is the number of frames in the source before capping.
	FrameCount int

	// Format is "png", "jpeg", "gif", or "unknown", detected by extension.
	Format string

	// Source is the first source frame at original resolution and in
	// original color, kept for cropping and margin reporting.
	Source image.Image
}

// Load decodes the image at path into working frames.
//
// PNG and JPEG sources produce a single frame. GIF sources produce one frame
// per animation frame, each composited over the previous canvas before
// conversion so partial frames see the full picture.
//
// # Errors
//
//   - Returns an error if the file does not exist or cannot be read
//   - Returns an error if the file is not a valid PNG, JPEG, or GIF image
func Load(path string, opts LoadOptions) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	format := formatByExt(path)

	var sources []image.Image
	if format == "gif" {
		sources, err = decodeGIF(f)
	} else {
		var img image.Image
		img, _, err = image.Decode(f)
		sources = []image.Image{img}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := sources[0].Bounds()
	d := &Decoded{
		Multiplier: 1.0,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		FrameCount: len(sources),
		Format:     format,
		Source:     sources[0],
	}

	// Thin the frame list before the expensive per-frame work.
	limit := scan.NoLimit
	if opts.MaxFrames > 0 {
		limit = opts.MaxFrames
	}
	keep := scan.NewSampler(opts.Seed).Indexes(len(sources), limit)

	workW, workH := d.Width, d.Height
	if opts.Size > 0 && (d.Width > opts.Size || d.Height > opts.Size) {
		workW, workH, d.Multiplier = workingSize(d.Width, d.Height, opts.Size)
	}

	for _, i := range keep {
		src := sources[i]
		if d.Multiplier != 1.0 {
			src = transform.Resize(src, workW, workH, transform.Linear)
		}
		d.Frames = append(d.Frames, grayFrame(src))
	}

	return d, nil
}

// workingSize shrinks (w, h) so the larger axis equals size, and reports the
// multiplier from working pixels back to source pixels.
func workingSize(w, h, size int) (int, int, float64) {
	switch {
	case w > h:
		tw := size
		th := int(math.Round(float64(size) * float64(h) / float64(w)))
		return tw, th, float64(w) / float64(tw)
	case w < h:
		tw := int(math.Round(float64(size) * float64(w) / float64(h)))
		th := size
		return tw, th, float64(h) / float64(th)
	default:
		return size, size, float64(w) / float64(size)
	}
}

// decodeGIF expands an animated GIF into coalesced full-canvas frames.
func decodeGIF(f *os.File) ([]image.Image, error) {
	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}

	canvas := image.NewRGBA(image.Rect(0, 0, g.Config.Width, g.Config.Height))
	frames := make([]image.Image, 0, len(g.Image))
	for _, frame := range g.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		snapshot := image.NewRGBA(canvas.Bounds())
		copy(snapshot.Pix, canvas.Pix)
		frames = append(frames, snapshot)
	}
	return frames, nil
}

// grayFrame converts a source frame to a single-channel intensity frame
// using ITU-R 601 luminance weights.
func grayFrame(img image.Image) *scan.Frame {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	f := scan.NewFrame(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < f.Width; x++ {
			// All channels are equal after Grayscale.
			f.Set(x, y, row[x*4])
		}
	}
	return f
}

func formatByExt(path string) string {
	switch filepath.Ext(path) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	default:
		return "unknown"
	}
}

// Cache provides thread-safe caching of decoded sources to avoid redundant
// disk reads when the same path is scanned repeatedly.
//
// Entries are keyed by the exact path string, so results from one set of
// LoadOptions are reused for subsequent calls regardless of options; callers
// that vary options per path should bypass the cache and call Load directly.
// Decoded frames stay in memory until Evict or Clear.
type Cache struct {
	mu     sync.RWMutex
	images map[string]*Decoded
}

// NewCache creates an empty decoded-image cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]*Decoded),
	}
}

// Load returns the cached bundle for path, decoding it on first use.
func (c *Cache) Load(path string, opts LoadOptions) (*Decoded, error) {
	c.mu.RLock()
	if d, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return d, nil
	}
	c.mu.RUnlock()

	d, err := Load(path, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = d
	c.mu.Unlock()

	return d, nil
}

// Evict removes a specific path from the cache.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear removes all cached bundles, freeing the associated memory.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Decoded)
	c.mu.Unlock()
}
