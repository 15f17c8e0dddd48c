// Package imaging is the boundary layer between image files and the border
// scanner: it decodes PNG/JPEG/GIF sources into single-channel working
// frames, and maps detected border offsets back onto the original pixels for
// cropping, margin-color reporting, and debug overlays.
//
// # Working Frames
//
// The scanner operates on grayscale intensity frames, optionally downscaled
// to a working size for speed. Load records the scale multiplier so offsets
// detected on working frames can be multiplied back into source pixel
// coordinates. Multi-frame GIFs contribute one working frame per kept frame;
// frames beyond a configured cap are dropped by uniform random selection
// with the frame order of the survivors preserved.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner,
// X increasing rightward and Y increasing downward. Border offsets are pixel
// counts measured inward from each edge, ordered top, right, bottom, left.
//
// # Thread Safety
//
// The Cache type is safe for concurrent use. Load and the offset-mapping
// helpers are stateless and can run concurrently on different images.
package imaging
