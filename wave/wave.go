/*
Package wave is a collection of waveform generators.

Each generator takes a frequency and returns a synthrs.Signal, the amplitude
of the waveform as a function of time. Apart from Noise they are pure
functions of time, which is what lets the synth package evaluate them at
arbitrary sample positions in any order.
*/
package wave

import (
	"math"
	"math/rand"

	"github.com/gyng/synthrs"
	"github.com/gyng/synthrs/filter"
)

// Sine returns a sine wave at the given frequency.
func Sine(frequency float64) synthrs.Signal {
	return func(t float64) float64 {
		return math.Sin(t * frequency * 2.0 * math.Pi)
	}
}

// Square returns a square wave at the given frequency: +1 wherever the sine
// is non-negative, -1 elsewhere.
func Square(frequency float64) synthrs.Signal {
	sine := Sine(frequency)
	return func(t float64) float64 {
		if sine(t) >= 0 {
			return 1.0
		}
		return -1.0
	}
}

// Sawtooth returns a sawtooth wave at the given frequency, ramping from
// -0.5 to 0.5 once per cycle.
func Sawtooth(frequency float64) synthrs.Signal {
	return func(t float64) float64 {
		tf := t * frequency
		return tf - math.Floor(tf) - 0.5
	}
}

// Triangle returns a triangle wave at the given frequency.
func Triangle(frequency float64) synthrs.Signal {
	sawtooth := Sawtooth(frequency)
	return func(t float64) float64 {
		return (math.Abs(sawtooth(t)) - 0.25) * 4.0
	}
}

// Tangent returns a tangent wave at the given frequency, clamped to [-1, 1].
// Harsh and buzzy.
func Tangent(frequency float64) synthrs.Signal {
	return func(t float64) float64 {
		return math.Max(-1.0, math.Min(1.0, math.Tan(t*frequency*math.Pi-0.5)/4.0))
	}
}

// Noise returns white noise in [-1, 1). The frequency argument is ignored;
// it is there so Noise fits the synthrs.Instrument shape.
func Noise(frequency float64) synthrs.Signal {
	return func(t float64) float64 {
		return rand.Float64()*2.0 - 1.0
	}
}

// bellHarmonics is the partial table of a struck bell: frequency multiplier,
// amplitude and decay multiplier per partial.
// http://computermusicresource.com/Simple.bell.tutorial.html
var bellHarmonics = [9][3]float64{
	{0.56, 1.5, 1.0},
	{0.92, 0.5, 2.0},
	{1.19, 0.25, 4.0},
	{1.71, 0.125, 6.0},
	{2.00, 0.0625, 8.4},
	{2.74, 0.03125, 10.8},
	{3.00, 0.015625, 13.6},
	{3.76, 0.0078125, 16.4},
	{4.07, 0.00390625, 19.6},
}

// Bell returns a bell strike: nine inharmonic partials, each a sine enveloped
// with its own decay. attack and decay are in seconds; the highest partials
// ring for decay times 19.6.
func Bell(frequency, attack, decay float64) synthrs.Signal {
	return func(t float64) float64 {
		out := 0.0
		for _, h := range bellHarmonics {
			partial := Sine(frequency * h[0])
			out += partial(t) * h[1] * filter.Envelope(t, attack, decay*h[2])
		}
		return out / 2.0
	}
}

// KarplusStrong roughs up any generator into something plucked-string-like
// by stacking decaying echoes of it. There is no real delay line here; the
// ten taps are unrolled, each one an "imaginary past" copy of the wave.
// sharpness controls how fast the echoes die out, 0-1 is decent. Try a
// Sawtooth, or even a Bell wave.
func KarplusStrong(wave synthrs.Signal, attack, decay, sharpness float64, sampleRate int) synthrs.Signal {
	tick := 1.0 / float64(sampleRate)
	return func(t float64) float64 {
		out := 0.0
		for i := 0; i < 10; i++ {
			fi := float64(i)
			out += wave(t-tick*fi) * filter.Envelope(t+tick*fi, attack, decay) * math.Pow(sharpness, fi)
		}
		return out * filter.Envelope(t, attack, decay)
	}
}
