// Package scan implements entropy-based detection of uninformative image
// margins (solid-colored or low-texture borders).
//
// The detector works on single-channel intensity frames. For each of the four
// sides of a frame it rotates the frame counter-clockwise so the side under
// test becomes the top row, optionally thins the columns down to a random
// sample of stripes, and then runs an iterative boundary search: the border
// estimate grows outward while the Shannon entropy of the band just inside a
// candidate line stays low relative to the band just past it.
//
// # Side Convention
//
// Side indices are rotation counts, not compass names. Rotating the frame
// counter-clockwise k times puts one geometric edge on top:
//
//	0 = top, 1 = right, 2 = bottom, 3 = left
//
// A BorderSet is always ordered by side index. Offsets are row counts in the
// rotated view, which is the same as pixel counts measured inward from the
// corresponding edge of the unrotated frame.
//
// # Thread Safety
//
// Frames are treated as immutable once constructed, and every unit of work
// (one side of one frame) reads only its own frame, so multi-frame scans run
// sides and frames concurrently without locking. Random sampling uses one
// generator per frame, derived from the configured seed.
//
// # Error Handling
//
// Configuration problems are rejected up front via ErrInvalidOption wraps.
// A frame with zero width or height fails with ErrDegenerateFrame; in a
// multi-frame scan that failure is local to the offending frame and the rest
// of the batch still completes. An empty frame sequence is not an error and
// yields an empty result.
package scan
