package synthrs

import "fmt"

// RenderConfig collects the knobs for rendering a Song into samples. The zero
// value is not usable; start from DefaultRenderConfig. synthrs-render loads
// one from a .yml or .json file, so the fields carry yaml tags the same way
// the rest of the serializable types do.
type RenderConfig struct {
	// SampleRate of the output, in Hz.
	SampleRate int

	// Instrument names the generator synthrs-render should use. The library
	// itself takes an Instrument value and ignores this field.
	Instrument string `yaml:",omitempty"`

	// Envelope enables the linear attack/decay envelope on each note.
	Envelope bool `yaml:",omitempty"`

	// Attack and Decay are the envelope ramp lengths in seconds.
	Attack float64 `yaml:",omitempty"`
	Decay  float64 `yaml:",omitempty"`

	// PCM16 selects 16-bit integer output instead of 32-bit float when the
	// samples are serialized.
	PCM16 bool `yaml:",omitempty"`
}

// DefaultRenderConfig returns the configuration synthrs-render starts from:
// 44100 Hz, sine instrument, envelope off with 0.01s/1.0s ramps filled in
// for when it is turned on.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SampleRate: 44100,
		Instrument: "sine",
		Attack:     0.01,
		Decay:      1.0,
	}
}

// Validate checks the numeric fields for values that would make rendering
// divide by zero or run backwards.
func (c *RenderConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate should be > 0, got %v", c.SampleRate)
	}
	if c.Attack < 0 || c.Decay < 0 {
		return fmt.Errorf("envelope attack and decay should be >= 0, got %v and %v", c.Attack, c.Decay)
	}
	return nil
}
