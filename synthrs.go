/*
Package synthrs is a toolkit for making sound: it turns waveform generator
functions into raw sample buffers, renders parsed Standard MIDI Files into
audio, filters the results, and serializes them as WAV or raw PCM.

The root package holds the shared data model (Song, Track, Event), the
function types the synthesis engine is built around (Signal, Instrument) and
the audio serialization helpers. The machinery lives in the subpackages:
midi decodes Standard MIDI Files, synth schedules and renders samples, wave
provides generators, filter provides FIR and delay-based filters and music
maps notes to frequencies.
*/
package synthrs

// Signal is a waveform: the amplitude of a sound at time t, with t in
// seconds and the amplitude nominally in [-1, 1].
type Signal func(t float64) float64

// Instrument builds the Signal for a single note. The synthesis engine calls
// it once per sounding note with the note's equal-tempered frequency; what
// the returned Signal actually sounds like is entirely up to the caller
// (an oscillator from the wave package, a recorded sample, anything).
type Instrument func(frequency float64) Signal
