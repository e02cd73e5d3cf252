// Package music maps notes to frequencies in twelve-tone equal temperament.
package music

import "math"

// StandardPitch is the concert pitch of A4 in Hz, the reference the rest of
// the tuning hangs from.
const StandardPitch = 440.0

// Note returns the frequency of a note in equal temperament, anchored so
// that semitone 9 of octave 4 (that is, A4) equals a4 exactly. Semitones
// count from C: 0=C 1=C# 2=D 3=D# 4=E 5=F 6=F# 7=G 8=G# 9=A 10=A# 11=B.
func Note(a4 float64, semitone, octave int) float64 {
	semitonesFromA4 := octave*12 + semitone - 9 - 48
	return a4 * math.Exp(float64(semitonesFromA4)*math.Ln2/12.0)
}

// NoteMIDI returns the frequency of a MIDI note number. The mapping is
// pinned so that MIDI note 69 comes out as A4 = a4 Hz: note 69 splits into
// semitone 9 of octave 4. Notes below 24 (C1) continue the same mapping
// downward; the adjustment just keeps the semitone non-negative where Go's
// remainder would not.
func NoteMIDI(a4 float64, midiNote int) float64 {
	semitone := (midiNote - 24) % 12
	octave := (midiNote-24)/12 + 1
	if semitone < 0 {
		semitone += 12
		octave--
	}
	return Note(a4, semitone, octave)
}
