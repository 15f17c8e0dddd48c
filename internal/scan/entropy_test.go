package scan

import (
	"errors"
	"math"
	"testing"
)

func TestEntropy_UniformSignal(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		signal := make([]uint8, n)
		for i := range signal {
			signal[i] = 42
		}

		got, err := Entropy(signal)
		if err != nil {
			t.Fatalf("Entropy failed for n=%d: %v", n, err)
		}
		if got != 0.0 {
			t.Errorf("uniform signal of length %d: got %v, want 0.0", n, got)
		}
	}
}

func TestEntropy_DistinctValues(t *testing.T) {
	// n all-distinct values carry exactly log2(n) bits.
	for _, n := range []int{2, 4, 8, 16} {
		signal := make([]uint8, n)
		for i := range signal {
			signal[i] = uint8(i * 11)
		}

		got, err := Entropy(signal)
		if err != nil {
			t.Fatalf("Entropy failed for n=%d: %v", n, err)
		}
		want := math.Log2(float64(n))
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("distinct signal of length %d: got %v, want %v", n, got, want)
		}
	}
}

func TestEntropy_TwoValueSplit(t *testing.T) {
	// An even two-value split is exactly one bit.
	signal := []uint8{0, 255, 0, 255, 0, 255}

	got, err := Entropy(signal)
	if err != nil {
		t.Fatalf("Entropy failed: %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("even two-value split: got %v, want 1.0", got)
	}
}

func TestEntropy_EmptySignal(t *testing.T) {
	if _, err := Entropy(nil); !errors.Is(err, ErrEmptySignal) {
		t.Errorf("empty signal: got %v, want ErrEmptySignal", err)
	}
}

func TestEntropy_NonNegative(t *testing.T) {
	signal := []uint8{3, 3, 9, 200, 200, 200, 17}

	got, err := Entropy(signal)
	if err != nil {
		t.Fatalf("Entropy failed: %v", err)
	}
	if got < 0 {
		t.Errorf("entropy must be non-negative, got %v", got)
	}
}
