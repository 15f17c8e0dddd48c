package scan

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptySignal is returned by Entropy when the signal has no samples.
var ErrEmptySignal = errors.New("entropy of an empty signal is undefined")

// Entropy computes the Shannon entropy, in bits, of a 1-D signal of discrete
// pixel values.
//
// The result is 0.0 when every sample has the same value and grows with the
// number of distinct values, weighted by their probability mass, up to
// log2(n) for n all-distinct samples.
//
// An empty signal has no probability distribution; callers must not pass one.
func Entropy(signal []uint8) (float64, error) {
	if len(signal) == 0 {
		return 0, ErrEmptySignal
	}
	return entropy(signal), nil
}

// entropy is the internal fast path. Call sites guarantee len(signal) > 0;
// an empty signal yields 0.0, which the side scanner relies on for empty
// mirror windows.
func entropy(signal []uint8) float64 {
	var counts [256]int
	for _, v := range signal {
		counts[v]++
	}

	probs := make([]float64, 0, 16)
	total := float64(len(signal))
	for _, c := range counts {
		if c > 0 {
			probs = append(probs, float64(c)/total)
		}
	}

	// stat.Entropy works in nats.
	return stat.Entropy(probs) / math.Ln2
}
