package synth

import (
	"math"
	"runtime"

	"github.com/gyng/synthrs"
	"github.com/gyng/synthrs/filter"
	"github.com/gyng/synthrs/midi"
	"github.com/gyng/synthrs/music"
	"golang.org/x/sync/errgroup"
)

// activation is one entry of the note schedule: a note occupying one
// tick bucket, with enough context to voice it.
type activation struct {
	note      int
	velocity  int
	startTick int
	tick      int
	ticksLeft int
}

// FromSong renders song through instrument and peak-normalizes the
// result.
//
// Each NoteOn sounds from its own tick until the first event in the same
// track that terminates the same note number, or the end of the song if
// nothing does. Channels are ignored when matching note ends; this is a
// single-instrument renderer. A NoteOn with velocity 0 terminates itself
// and is silent.
//
// Rendering runs in parallel over chunks of the output buffer. Every
// sample is a pure function of the schedule and sums its notes in
// schedule order, so the output is identical to a sequential render.
func FromSong(instrument synthrs.Instrument, song *synthrs.Song, cfg synthrs.RenderConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	length, err := song.Duration()
	if err != nil {
		return nil, err
	}

	notesAtTick := schedule(song)

	bpm := song.BPM
	timeUnit := float64(song.TimeUnit)
	rate := float64(cfg.SampleRate)
	samples := make([]float64, int(math.Floor(rate*length)))

	render := func(i int) float64 {
		t := float64(i) / rate
		tick := int(t * bpm * timeUnit / 60.0)
		if tick >= len(notesAtTick) {
			return 0
		}
		var out float64
		for _, a := range notesAtTick[tick] {
			frequency := music.NoteMIDI(music.StandardPitch, a.note)
			loudness := math.Exp(6.908*float64(a.velocity)/255.0) / 1000.0
			contribution := loudness * instrument(frequency)(t)
			if cfg.Envelope {
				startT := float64(a.startTick) * 60.0 / (bpm * timeUnit)
				contribution *= filter.Envelope(t-startT, cfg.Attack, cfg.Decay)
			}
			out += contribution
		}
		return out
	}

	var group errgroup.Group
	chunk := (len(samples) + runtime.GOMAXPROCS(0) - 1) / runtime.GOMAXPROCS(0)
	for start := 0; start < len(samples); start += chunk {
		start := start // per-iteration copy; the go 1.21 directive predates per-iteration loop variables
		end := min(start+chunk, len(samples))
		group.Go(func() error {
			for i := start; i < end; i++ {
				samples[i] = render(i)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return PeakNormalize(samples), nil
}

// FromFile loads the MIDI file at path and renders it with FromSong.
func FromFile(instrument synthrs.Instrument, path string, cfg synthrs.RenderConfig) ([]float64, error) {
	song, err := midi.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromSong(instrument, song, cfg)
}

// schedule builds the per-tick note table for song: for every tick, the
// notes sounding during it in track order. Ticks index the table
// directly, so lookup during rendering is one slice access.
func schedule(song *synthrs.Song) [][]activation {
	notesAtTick := make([][]activation, song.MaxTime)
	for _, track := range song.Tracks {
		for i, event := range track.Events {
			if event.Type != synthrs.NoteOn {
				continue
			}
			// The scan for the note's end starts at the NoteOn itself,
			// which is how a velocity-0 NoteOn ends up silent: it is its
			// own terminator.
			end := song.MaxTime
			for _, candidate := range track.Events[i:] {
				if candidate.Value1 == event.Value1 && candidate.IsNoteTerminating() {
					end = candidate.Time
					break
				}
			}
			for tick := event.Time; tick < end; tick++ {
				notesAtTick[tick] = append(notesAtTick[tick], activation{
					note:      event.Value1,
					velocity:  event.Value2,
					startTick: event.Time,
					tick:      tick,
					ticksLeft: end - tick,
				})
			}
		}
	}
	return notesAtTick
}
