// Package cmd holds the helpers shared by the synthrs command line
// utilities.
package cmd

import (
	"fmt"
	"strings"

	"github.com/gyng/synthrs"
	"github.com/gyng/synthrs/wave"
)

// InstrumentByName maps the instrument name from a flag or a config file
// to a generator. The envelope-shaped instruments take their attack and
// decay from cfg.
func InstrumentByName(cfg synthrs.RenderConfig) (synthrs.Instrument, error) {
	switch strings.ToLower(cfg.Instrument) {
	case "", "sine":
		return wave.Sine, nil
	case "square":
		return wave.Square, nil
	case "sawtooth":
		return wave.Sawtooth, nil
	case "triangle":
		return wave.Triangle, nil
	case "tangent":
		return wave.Tangent, nil
	case "noise":
		return wave.Noise, nil
	case "bell":
		return func(frequency float64) synthrs.Signal {
			return wave.Bell(frequency, cfg.Attack, cfg.Decay)
		}, nil
	case "karplus":
		return func(frequency float64) synthrs.Signal {
			return wave.KarplusStrong(wave.Sawtooth(frequency), cfg.Attack, cfg.Decay, 0.9, cfg.SampleRate)
		}, nil
	}
	return nil, fmt.Errorf("unknown instrument %v", cfg.Instrument)
}
