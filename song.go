package synthrs

import (
	"errors"
	"fmt"
)

// DefaultBPM is the tempo of a MIDI file that contains no TempoSetting event.
const DefaultBPM = 120.0

// Song is one parsed MIDI file: the decoded tracks plus the global metadata
// derived from them. A Song is constructed once by midi.Read and is not
// modified afterwards; the synth package only reads it.
type Song struct {
	// Format is the file format word from the header: 0 for a single
	// track, 1 for simultaneous tracks, 2 for independent songs. The
	// parser treats all three the same way.
	Format int

	// TimeUnit is the time division of the file in ticks per quarter note.
	// SMPTE time divisions are rejected while parsing, so this is always
	// positive for a Song that came out of the midi package.
	TimeUnit int

	// Tracks in file order. Track 0 is often a tempo/metadata-only track.
	Tracks []Track

	// TrackCount is the count declared in the file header. Parsing fails if
	// the file does not actually contain this many track chunks, so it always
	// equals len(Tracks) afterwards; it is kept so the declared value stays
	// inspectable.
	TrackCount int

	// BPM is the tempo. It defaults to DefaultBPM and is overwritten by the
	// first TempoSetting event across all tracks in file order. Later tempo
	// changes are ignored; mid-song tempo changes are a known limitation.
	BPM float64

	// MaxTime is the largest Track.MaxTime, in ticks.
	MaxTime int
}

// Track is the decoded event sequence of one MTrk chunk.
type Track struct {
	// Events in the order they were decoded, which is also tick order.
	Events []Event

	// MaxTime is the tick of the track's last event, or 0 if the track has
	// fewer than two events.
	MaxTime int
}

// Copy makes a deep copy of a Track.
func (t *Track) Copy() Track {
	events := make([]Event, len(t.Events))
	copy(events, t.Events)
	return Track{Events: events, MaxTime: t.MaxTime}
}

// Copy makes a deep copy of a Song.
func (s *Song) Copy() Song {
	tracks := make([]Track, len(s.Tracks))
	for i, t := range s.Tracks {
		tracks[i] = t.Copy()
	}
	return Song{
		Format:     s.Format,
		TimeUnit:   s.TimeUnit,
		Tracks:     tracks,
		TrackCount: s.TrackCount,
		BPM:        s.BPM,
		MaxTime:    s.MaxTime,
	}
}

// Tempo returns the first TempoSetting event across all tracks in file order.
// This is the event that defines Song.BPM; any events after it are the tempo
// changes this package does not apply.
func (s *Song) Tempo() (Event, bool) {
	for _, track := range s.Tracks {
		for _, event := range track.Events {
			if event.MetaType == TempoSetting {
				return event, true
			}
		}
	}
	return Event{}, false
}

// Duration returns the length of the song in seconds. A quarter note is
// TimeUnit ticks and lasts 60/BPM seconds, so the song's MaxTime ticks last
// 60*MaxTime/(BPM*TimeUnit) seconds.
func (s *Song) Duration() (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return 60.0 * float64(s.MaxTime) / (s.BPM * float64(s.TimeUnit)), nil
}

// Validate checks that the Song can be rendered without dividing by zero:
// both the tempo and the time division have to be positive.
func (s *Song) Validate() error {
	if s.BPM <= 0 {
		return fmt.Errorf("song BPM should be > 0, got %v: %w", s.BPM, ErrInvalidSong)
	}
	if s.TimeUnit <= 0 {
		return fmt.Errorf("song time unit should be > 0, got %v: %w", s.TimeUnit, ErrInvalidSong)
	}
	return nil
}

// ErrInvalidSong is reported for a Song whose timing fields cannot be mapped
// to seconds. Songs parsed by the midi package never trigger it; hand-built
// ones might.
var ErrInvalidSong = errors.New("invalid song")
