/*
Package filter provides signal filters of two kinds.

Stateless FIR filters are just []float64 kernels designed by the Lowpass,
Highpass, Bandpass and Bandreject functions and applied to a sample buffer
with Convolve. Their cutoffs are fractions of the sample rate; use
CutoffFromFrequency to get one from a frequency in Hz. The band parameter is
the width of the transition band, also as a fraction of the sample rate: the
smaller it is, the sharper (and longer) the kernel.

Stateful filters (DelayLine, AllPass, Comb) keep a history of samples and
transform a stream one sample at a time through their Tick methods.
*/
package filter

import (
	"math"

	"github.com/viterin/vek"
)

// Lowpass designs a windowed-sinc FIR kernel that preserves frequencies
// below cutoff when samples are convolved with it.
func Lowpass(cutoff, band float64) []float64 {
	n := int(math.Ceil(4.0 / band))
	if n%2 == 1 {
		n++
	}

	sinc := func(x float64) float64 {
		return math.Sin(x*math.Pi) / (x * math.Pi)
	}

	kernel := BlackmanWindow(n)
	sum := 0.0
	for i := range kernel {
		kernel[i] *= sinc(2.0 * cutoff * (float64(i) - (float64(n)-1.0)/2.0))
		sum += kernel[i]
	}
	vek.DivNumber_Inplace(kernel, sum)
	return kernel
}

// BlackmanWindow returns a Blackman window of the given size.
func BlackmanWindow(size int) []float64 {
	window := make([]float64, size)
	for i := range window {
		window[i] = 0.42 -
			0.5*math.Cos(2.0*math.Pi*float64(i)/(float64(size)-1.0)) +
			0.08*math.Cos(4.0*math.Pi*float64(i)/(float64(size)-1.0))
	}
	return window
}

// Highpass designs a FIR kernel that preserves frequencies above cutoff.
func Highpass(cutoff, band float64) []float64 {
	return SpectralInvert(Lowpass(cutoff, band))
}

// Bandpass designs a FIR kernel that preserves frequencies between low and
// high. low must not exceed high.
func Bandpass(low, high, band float64) []float64 {
	lowpass := Lowpass(high, band)
	highpass := Highpass(low, band)
	return Convolve(highpass, lowpass)
}

// Bandreject designs a FIR kernel that preserves frequencies outside of low
// and high. low must not exceed high.
func Bandreject(low, high, band float64) []float64 {
	lowpass := Lowpass(low, band)
	highpass := Highpass(high, band)
	return Add(highpass, lowpass)
}

// SpectralInvert flips a kernel's frequency response; inverting a low-pass
// kernel gives a high-pass kernel with the same cutoff. The kernel length
// has to be even, which every kernel designed by this package is.
func SpectralInvert(kernel []float64) []float64 {
	inverted := make([]float64, len(kernel))
	for i, el := range kernel {
		inverted[i] = -el
		if i == len(kernel)/2 {
			inverted[i] += 1.0
		}
	}
	return inverted
}

// Convolve runs input through a FIR kernel. The output is longer than the
// input by half the kernel length (minus one): the kernel is centered on
// each input sample and the tails run off both ends.
func Convolve(kernel, input []float64) []float64 {
	half := len(kernel) / 2
	output := make([]float64, 0, half+len(input))

	for i := -half; i < len(input)-1; i++ {
		acc := 0.0
		for j := range kernel {
			inputIndex := i + j
			if inputIndex < 0 || inputIndex >= len(input) {
				continue
			}
			acc += input[inputIndex] * kernel[j]
		}
		output = append(output, acc)
	}

	return output
}

// Add sums two kernels elementwise, which combines their frequency
// responses. The slices have to be of equal length.
func Add(left, right []float64) []float64 {
	return vek.Add(left, right)
}

// CutoffFromFrequency converts a cutoff frequency in Hz into the fraction of
// the sample rate the kernel design functions take.
func CutoffFromFrequency(frequency float64, sampleRate int) float64 {
	return frequency / float64(sampleRate)
}

// Envelope is a linear attack/decay amplitude envelope with no sustain or
// release: it ramps from 0 to 1 over attack seconds, back down to 0 over
// decay seconds, and is 0 outside that window. relativeT is the time since
// the note started.
func Envelope(relativeT, attack, decay float64) float64 {
	switch {
	case relativeT < 0.0:
		return 0.0
	case relativeT < attack:
		return relativeT / attack
	case relativeT < attack+decay:
		return 1.0 - (relativeT-attack)/decay
	}
	return 0.0
}
