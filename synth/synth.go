// Package synth renders signals and parsed songs into sample buffers.
package synth

import (
	"math"

	"github.com/gyng/synthrs"
	"github.com/viterin/vek"
)

// Samples renders length seconds of gen into a buffer of
// floor(sampleRate*length) samples, starting at t = 0.
func Samples(length float64, sampleRate int, gen synthrs.Signal) []float64 {
	count := int(math.Floor(float64(sampleRate) * length))
	if count < 0 {
		count = 0
	}
	samples := make([]float64, count)
	for i := range samples {
		samples[i] = gen(float64(i) / float64(sampleRate))
	}
	return samples
}

// Iterate yields the samples of gen at sampleRate without end, for
// feeding a sample at a time to something like a streaming encoder:
//
//	for sample := range synth.Iterate(44100, wave.Sine(440)) {
//		...
//	}
func Iterate(sampleRate int, gen synthrs.Signal) func(yield func(float64) bool) {
	return func(yield func(float64) bool) {
		for i := 0; ; i++ {
			if !yield(gen(float64(i) / float64(sampleRate))) {
				return
			}
		}
	}
}

// PeakNormalize scales samples in place so that the loudest sample sits
// at ±1, and returns the slice. Silence has no peak to normalize to and
// is returned untouched.
func PeakNormalize(samples []float64) []float64 {
	if len(samples) == 0 {
		return samples
	}
	peak := vek.Max(vek.Abs(samples))
	if peak == 0 {
		return samples
	}
	vek.DivNumber_Inplace(samples, peak)
	return samples
}
