package scan

import "math"

// scanSide finds the border offset for one side of a frame.
//
// view is the frame rotated so the side under test is row 0, and cols holds
// the sampled column indexes of that view (ascending, at least one). The
// returned offset o satisfies 0 <= o <= round(indent*h).
func scanSide(view rotatedView, cols []int, opts Options) int {
	h := view.height
	reach := int(math.Round(opts.Indent * float64(h)))
	if reach < 1 {
		// Search range degenerates before the first candidate row.
		return 0
	}

	// Signal buffer reused across entropy calls; worst case is the mirror
	// window spanning 2*reach rows.
	buf := make([]uint8, 0, 2*reach*len(cols))

	border := 0
	for {
		// Find the first row past the current border at which the frame
		// stops being uniform: the band (border, start] must carry some
		// information. If the whole indent range stays flat, start is left
		// at the range's upper bound.
		start := border + 1
		for s := border + 1; s <= reach; s++ {
			start = s
			buf = view.gather(cols, border+1, min(s+1, h), buf)
			if entropy(buf) > 0.0 {
				break
			}
		}

		// Walk candidate lines from the indent limit back toward start.
		// delta tightens with every accepted candidate, so later (smaller)
		// centers must beat all earlier ones.
		subborder := 0
		delta := opts.Threshold
		for center := reach; center >= start; center-- {
			buf = view.gather(cols, border, center, buf)
			upper := entropy(buf)

			lower := 0.0
			if mirror := min(2*center-border, h); mirror > center {
				buf = view.gather(cols, center, mirror, buf)
				lower = entropy(buf)
			}

			diff := delta
			if lower != 0.0 {
				diff = upper / lower
			}

			if diff < delta && diff < opts.Threshold {
				subborder = center
				delta = diff
			}
		}

		if subborder == 0 || subborder == border {
			break
		}
		border = subborder

		if opts.Fast {
			break
		}
	}

	return border
}
