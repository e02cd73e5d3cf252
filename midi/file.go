package midi

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gyng/synthrs"
)

// ReadFile reads the Standard MIDI File at path.
func ReadFile(path string) (*synthrs.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("midi: %w", err)
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}

// Read decodes a Standard MIDI File from r: an MThd header chunk
// followed by one MTrk chunk per track. The song's BPM is taken from the
// first tempo setting found anywhere in the file, or DefaultBPM if there
// is none. SMPTE time division is not supported.
func Read(r io.Reader) (*synthrs.Song, error) {
	s, ok := r.(byteScanner)
	if !ok {
		s = bufio.NewReader(r)
	}

	var header struct {
		Magic        [4]byte
		Length       uint32
		Format       uint16
		TrackCount   uint16
		TimeDivision uint16
	}
	if err := binary.Read(s, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("midi: reading file header: %w", err)
	}
	if string(header.Magic[:]) != "MThd" {
		return nil, fmt.Errorf("midi: bad file header %q: %w", header.Magic, ErrFormat)
	}
	if header.Length != 6 {
		return nil, fmt.Errorf("midi: file header length should be 6, got %d: %w", header.Length, ErrFormat)
	}
	if header.TimeDivision&0x8000 != 0 {
		return nil, fmt.Errorf("midi: SMPTE time division is not supported: %w", ErrFormat)
	}

	song := &synthrs.Song{
		Format:     int(header.Format),
		TimeUnit:   int(header.TimeDivision),
		TrackCount: int(header.TrackCount),
		BPM:        synthrs.DefaultBPM,
	}
	for i := 0; i < int(header.TrackCount); i++ {
		track, err := readTrack(s)
		if err != nil {
			return nil, fmt.Errorf("midi: track %d: %w", i, err)
		}
		song.Tracks = append(song.Tracks, track)
		if track.MaxTime > song.MaxTime {
			song.MaxTime = track.MaxTime
		}
	}

	if ev, found := song.Tempo(); found {
		if ev.Value1 <= 0 {
			return nil, fmt.Errorf("midi: tempo setting should be positive, got %d: %w", ev.Value1, ErrFormat)
		}
		song.BPM = 60000000.0 / float64(ev.Value1)
	}
	return song, nil
}

// readTrack decodes one MTrk chunk. The chunk size in the header is read
// but not trusted; the EndOfTrack meta event delimits the track.
func readTrack(s byteScanner) (synthrs.Track, error) {
	var header struct {
		Magic [4]byte
		Size  uint32
	}
	if err := binary.Read(s, binary.BigEndian, &header); err != nil {
		return synthrs.Track{}, fmt.Errorf("reading track header: %w", err)
	}
	if string(header.Magic[:]) != "MTrk" {
		return synthrs.Track{}, fmt.Errorf("bad track header %q: %w", header.Magic, ErrFormat)
	}

	var track synthrs.Track
	er := NewEventReader(s)
	for {
		ev, err := er.Next()
		if errors.Is(err, ErrEndOfTrack) {
			break
		}
		if err != nil {
			return synthrs.Track{}, err
		}
		track.Events = append(track.Events, ev)
	}
	if len(track.Events) > 1 {
		track.MaxTime = track.Events[len(track.Events)-1].Time
	}
	return track, nil
}
