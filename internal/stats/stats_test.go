package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestHistogram(t *testing.T) {
	values := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	bins := Histogram(values, 5)
	if len(bins) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(bins))
	}

	if !almostEqual(bins[0].Lo, 0) || !almostEqual(bins[4].Hi, 100) {
		t.Errorf("range = [%v, %v], want [0, 100]", bins[0].Lo, bins[4].Hi)
	}

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(values) {
		t.Errorf("bin counts sum to %d, want %d", total, len(values))
	}

	// 100 sits on the top edge and belongs to the last bin.
	if bins[4].Count != 3 {
		t.Errorf("last bin count = %d, want 3 (80, 90, 100)", bins[4].Count)
	}
}

func TestHistogramUniformWidth(t *testing.T) {
	bins := Histogram([]float64{0, 50, 100}, 4)
	want := 25.0
	for i, b := range bins {
		if !almostEqual(b.Hi-b.Lo, want) {
			t.Errorf("bin %d width = %v, want %v", i, b.Hi-b.Lo, want)
		}
	}
}

func TestHistogramIdenticalValues(t *testing.T) {
	bins := Histogram([]float64{42, 42, 42}, 5)
	if len(bins) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 3 {
		t.Errorf("bin counts sum to %d, want 3", total)
	}
}

func TestHistogramEmpty(t *testing.T) {
	if bins := Histogram(nil, 5); bins != nil {
		t.Errorf("expected nil for empty input, got %v", bins)
	}
	if bins := Histogram([]float64{1, 2}, 0); bins != nil {
		t.Errorf("expected nil for zero bins, got %v", bins)
	}
}

func TestMaxCount(t *testing.T) {
	bins := Histogram([]float64{1, 1, 1, 5, 9}, 2)
	if got := MaxCount(bins); got != 3 {
		t.Errorf("MaxCount() = %d, want 3", got)
	}
	if got := MaxCount(nil); got != 0 {
		t.Errorf("MaxCount(nil) = %d, want 0", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{95, 90, 85}); !almostEqual(got, 90) {
		t.Errorf("Mean() = %v, want 90", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float64{42, -3, 17, 99, 0})
	if lo != -3 || hi != 99 {
		t.Errorf("MinMax() = (%v, %v), want (-3, 99)", lo, hi)
	}

	lo, hi = MinMax(nil)
	if lo != 0 || hi != 0 {
		t.Errorf("MinMax(nil) = (%v, %v), want (0, 0)", lo, hi)
	}
}
