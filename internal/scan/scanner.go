package scan

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Sentinel errors for callers that need to classify failures.
var (
	// ErrInvalidOption wraps every configuration rejection.
	ErrInvalidOption = errors.New("invalid scan option")

	// ErrDegenerateFrame marks frames with zero width or height.
	ErrDegenerateFrame = errors.New("frame has zero width or height")
)

// Options configures a scan call. The zero value is not valid; start from
// DefaultOptions.
type Options struct {
	// Threshold is the acceptance aggressiveness for sub-border detection.
	// Lower values are more conservative (fewer rows classified as border).
	Threshold float64

	// Indent is the fraction of the rotated frame's height searched from
	// each side, in (0, 1].
	Indent float64

	// Stripes controls column thinning before random sampling, in (0, 1].
	// Values below 1 stride the column range by round(1/Stripes).
	Stripes float64

	// MaxStripes caps the number of sampled columns per side. Zero means
	// no cap.
	MaxStripes int

	// Fast stops each side after a single refinement iteration.
	Fast bool

	// Workers bounds per-frame parallelism in Scan. Zero or negative uses
	// runtime.NumCPU().
	Workers int

	// Seed feeds the column and frame samplers. A fixed seed with fixed
	// input reproduces the same BorderSets.
	Seed int64
}

// DefaultOptions returns the canonical configuration: threshold 0.5, indent
// 0.25, all columns, fast mode on.
func DefaultOptions() Options {
	return Options{
		Threshold: 0.5,
		Indent:    0.25,
		Stripes:   1.0,
		Fast:      true,
	}
}

// Validate rejects configurations the scanner cannot run with. All failures
// wrap ErrInvalidOption.
func (o Options) Validate() error {
	if o.Threshold <= 0 {
		return fmt.Errorf("%w: threshold %v must be > 0", ErrInvalidOption, o.Threshold)
	}
	if o.Indent <= 0 || o.Indent > 1 {
		return fmt.Errorf("%w: indent %v must be in (0, 1]", ErrInvalidOption, o.Indent)
	}
	if o.Stripes <= 0 || o.Stripes > 1 {
		return fmt.Errorf("%w: stripes %v must be in (0, 1]", ErrInvalidOption, o.Stripes)
	}
	if o.MaxStripes < 0 {
		return fmt.Errorf("%w: max stripes %d must be > 0 when set", ErrInvalidOption, o.MaxStripes)
	}
	return nil
}

// paginate converts the Stripes coefficient into a column stride.
func (o Options) paginate() int {
	if o.Stripes > 0 && o.Stripes < 1 {
		return int(math.Round(1.0 / o.Stripes))
	}
	return 1
}

// stripeLimit converts MaxStripes into a Sampler limit.
func (o Options) stripeLimit() int {
	if o.MaxStripes == 0 {
		return NoLimit
	}
	return o.MaxStripes
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// BorderSet holds one frame's detected offsets ordered by side index.
type BorderSet [4]int

// Top, Right, Bottom and Left name the positional offsets.
func (b BorderSet) Top() int    { return b[0] }
func (b BorderSet) Right() int  { return b[1] }
func (b BorderSet) Bottom() int { return b[2] }
func (b BorderSet) Left() int   { return b[3] }

// Empty reports whether no side has a detected border.
func (b BorderSet) Empty() bool {
	return b == BorderSet{}
}

// ScanFrame detects the border offsets of all four sides of one frame.
//
// The sampler supplies the random column subsets; passing the same seeded
// sampler and frame reproduces the same result when Stripes is 1.0 or
// MaxStripes is unset.
func ScanFrame(frame *Frame, opts Options, sampler *Sampler) (BorderSet, error) {
	var borders BorderSet

	if err := opts.Validate(); err != nil {
		return borders, err
	}
	if frame == nil || frame.Width == 0 || frame.Height == 0 {
		return borders, ErrDegenerateFrame
	}

	for side := 0; side < 4; side++ {
		view := frame.rotated(side)
		cols := sampler.StridedIndexes(view.width, opts.paginate(), opts.stripeLimit())
		if len(cols) == 0 {
			// Stride of 1 always keeps column 0, so this cannot happen for
			// a non-degenerate frame; guard anyway.
			return borders, fmt.Errorf("%w: no columns sampled", ErrInvalidOption)
		}
		borders[side] = scanSide(view, cols, opts)
	}

	return borders, nil
}

// FrameError reports a per-frame failure from a multi-frame scan.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

// Scan runs ScanFrame over every frame, preserving input order.
//
// Frames are independent, so they are scanned in parallel under the Workers
// cap. Per-frame failures do not abort the batch: the returned slice always
// has one entry per input frame (zero-valued for failed frames) and the
// error, if any, joins one *FrameError per failure. Configuration errors are
// global and returned before any scanning starts. An empty input yields an
// empty result and a nil error.
func Scan(frames []*Frame, opts Options) ([]BorderSet, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	results := make([]BorderSet, len(frames))
	if len(frames) == 0 {
		return results, nil
	}

	errs := make([]error, len(frames))

	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i, frame := range frames {
		i, frame := i, frame
		g.Go(func() error {
			// One sampler per frame keeps randomness race-free and makes
			// results independent of scheduling order.
			sampler := NewSampler(opts.Seed + int64(i))
			set, err := ScanFrame(frame, opts, sampler)
			if err != nil {
				errs[i] = &FrameError{Index: i, Err: err}
				return nil
			}
			results[i] = set
			return nil
		})
	}
	g.Wait()

	return results, errors.Join(errs...)
}
