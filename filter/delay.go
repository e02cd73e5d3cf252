package filter

import "math"

// DelayLine delays samples by delayLength seconds: Write stores a sample and
// Read returns the one written delaySamples writes ago (0 until the line has
// filled once).
type DelayLine struct {
	buf          []float64
	index        int
	delayLength  float64
	delaySamples int
	sampleRate   int
}

// NewDelayLine returns a delay line holding delayLength seconds' worth of
// samples at the given sample rate.
func NewDelayLine(delayLength float64, sampleRate int) *DelayLine {
	delaySamples := int(math.Round(delayLength*float64(sampleRate))) + 1
	return &DelayLine{
		buf:          make([]float64, delaySamples),
		delayLength:  delayLength,
		delaySamples: delaySamples,
		sampleRate:   sampleRate,
	}
}

// Read returns the oldest sample in the line without consuming it.
func (d *DelayLine) Read() float64 {
	return d.buf[d.index]
}

// Write stores a sample, overwriting the oldest one.
func (d *DelayLine) Write(value float64) {
	d.buf[d.index] = value
	if d.index == len(d.buf)-1 {
		d.index = 0
	} else {
		d.index++
	}
}

// AllPass passes all frequencies at equal gain but shifts their phases; it
// is one of the building blocks of a reverberator.
type AllPass struct {
	delayLine *DelayLine

	// Feedback multiplier; 0.5 works.
	Feedback float64
}

// NewAllPass returns an all-pass filter whose delay line holds delayLength
// seconds of samples.
func NewAllPass(delayLength float64, sampleRate int, feedback float64) *AllPass {
	return &AllPass{
		delayLine: NewDelayLine(delayLength, sampleRate),
		Feedback:  feedback,
	}
}

// Tick feeds one sample through the filter and returns the filtered sample.
func (a *AllPass) Tick(input float64) float64 {
	delayed := a.delayLine.Read()
	a.delayLine.Write(input + delayed*a.Feedback)
	return -input + delayed
}

// Comb feeds a delayed, dampened copy of its output back into itself, which
// reinforces frequencies at multiples of the delay.
type Comb struct {
	delayLine   *DelayLine
	filterState float64

	// DampeningInverse, Dampening and Feedback shape the response; 0.5
	// works for all three.
	DampeningInverse float64
	Dampening        float64
	Feedback         float64
}

// NewComb returns a comb filter whose delay line holds delayLength seconds
// of samples.
func NewComb(delayLength float64, sampleRate int, dampeningInverse, dampening, feedback float64) *Comb {
	return &Comb{
		delayLine:        NewDelayLine(delayLength, sampleRate),
		DampeningInverse: dampeningInverse,
		Dampening:        dampening,
		Feedback:         feedback,
	}
}

// Tick feeds one sample through the filter and returns the filtered sample.
func (c *Comb) Tick(input float64) float64 {
	output := c.delayLine.Read()
	c.filterState = output*c.DampeningInverse + c.filterState*c.Dampening
	c.delayLine.Write(input + c.filterState*c.Feedback)
	return output
}
