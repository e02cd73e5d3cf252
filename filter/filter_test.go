package filter_test

import (
	"math"
	"testing"

	"github.com/gyng/synthrs/filter"
)

const errorThreshold = 1e-9

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func TestConvolve(t *testing.T) {
	got := filter.Convolve([]float64{1, 1, 1}, []float64{0, 0, 3, 0, 3, 0, 0})
	expected := []float64{0, 3, 3, 6, 3, 3, 0}
	if len(got) != len(expected) {
		t.Fatalf("got length %v, expected %v", len(got), len(expected))
	}
	for i := range expected {
		if math.Abs(got[i]-expected[i]) > errorThreshold {
			t.Errorf("sample %v: got %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestAdd(t *testing.T) {
	got := filter.Add([]float64{1, -1, -8}, []float64{-1, 5, 3})
	expected := []float64{0, 4, -5}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("sample %v: got %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestEnvelope(t *testing.T) {
	cases := []struct {
		relativeT float64
		expected  float64
	}{
		{-0.5, 0.0},
		{0.25, 0.25},
		{0.5, 0.5},
		{1.0, 1.0},
		{1.5, 0.5},
		{3.0, 0.0},
	}
	for _, c := range cases {
		if got := filter.Envelope(c.relativeT, 1.0, 1.0); math.Abs(got-c.expected) > errorThreshold {
			t.Errorf("t=%v: got %v, expected %v", c.relativeT, got, c.expected)
		}
	}
}

func TestLowpassKernel(t *testing.T) {
	kernel := filter.Lowpass(0.2, 0.05)
	if len(kernel) != 80 {
		t.Errorf("got kernel length %v, expected 80", len(kernel))
	}
	// Unity gain at DC.
	if math.Abs(sum(kernel)-1.0) > errorThreshold {
		t.Errorf("kernel sums to %v, expected 1", sum(kernel))
	}
}

func TestLowpassKernelLengthIsEven(t *testing.T) {
	for _, band := range []float64{0.05, 0.03, 4.0 / 81.0} {
		kernel := filter.Lowpass(0.25, band)
		if len(kernel)%2 != 0 {
			t.Errorf("band %v: kernel length %v should be even", band, len(kernel))
		}
	}
}

func TestHighpassKernel(t *testing.T) {
	kernel := filter.Highpass(0.2, 0.05)
	// No gain at DC.
	if math.Abs(sum(kernel)) > errorThreshold {
		t.Errorf("kernel sums to %v, expected 0", sum(kernel))
	}
}

func TestSpectralInvert(t *testing.T) {
	got := filter.SpectralInvert([]float64{0.25, 0.5, 0.25})
	expected := []float64{-0.25, 0.5, -0.25}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("sample %v: got %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestBandpassKernel(t *testing.T) {
	kernel := filter.Bandpass(0.1, 0.3, 0.05)
	// A convolution of the two 80-tap halves, at Convolve's truncated
	// output length.
	if expected := 80/2 + 80 - 1; len(kernel) != expected {
		t.Fatalf("got kernel length %v, expected %v", len(kernel), expected)
	}
	allZero := true
	for _, v := range kernel {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("kernel should not be all zeros")
	}
}

func TestBandrejectKernel(t *testing.T) {
	kernel := filter.Bandreject(0.1, 0.3, 0.05)
	// Unity gain at DC, like the lowpass half it contains.
	if math.Abs(sum(kernel)-1.0) > errorThreshold {
		t.Errorf("kernel sums to %v, expected 1", sum(kernel))
	}
}

func TestCutoffFromFrequency(t *testing.T) {
	if got := filter.CutoffFromFrequency(4410, 44100); got != 0.1 {
		t.Errorf("got %v, expected 0.1", got)
	}
}

func TestBlackmanWindow(t *testing.T) {
	window := filter.BlackmanWindow(3)
	if math.Abs(window[0]) > 1e-9 || math.Abs(window[2]) > 1e-9 {
		t.Errorf("window edges should be 0, got %v and %v", window[0], window[2])
	}
	if math.Abs(window[1]-1.0) > 1e-9 {
		t.Errorf("window center should be 1, got %v", window[1])
	}
}
