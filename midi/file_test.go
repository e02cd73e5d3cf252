package midi_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyng/synthrs"
	"github.com/gyng/synthrs/midi"
)

// smfHeader builds an MThd chunk.
func smfHeader(format, trackCount, timeDivision int) []byte {
	buf := []byte("MThd")
	buf = binary.BigEndian.AppendUint32(buf, 6)
	buf = binary.BigEndian.AppendUint16(buf, uint16(format))
	buf = binary.BigEndian.AppendUint16(buf, uint16(trackCount))
	buf = binary.BigEndian.AppendUint16(buf, uint16(timeDivision))
	return buf
}

// smfTrack wraps an event stream in an MTrk chunk.
func smfTrack(events []byte) []byte {
	buf := []byte("MTrk")
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(events)))
	return append(buf, events...)
}

var tempoTrack = smfTrack([]byte{
	0x00, 0xff, 0x51, 0x03, 0x07, 0xa1, 0x20, // tempo 500000 us per quarter note
	0x00, 0xff, 0x2f, 0x00,
})

func TestRead(t *testing.T) {
	file := smfHeader(1, 2, 960)
	file = append(file, tempoTrack...)
	notes := []byte{
		0x00, 0xc0, 0x00,
		0x00, 0x90, 0x39, 0x40,
	}
	notes = append(notes, midi.AppendVarInt(nil, 960)...)
	notes = append(notes,
		0x80, 0x39, 0x00,
		0x00, 0xff, 0x2f, 0x00,
	)
	file = append(file, smfTrack(notes)...)

	song, err := midi.Read(bytes.NewReader(file))
	require.NoError(t, err)

	assert.Equal(t, 1, song.Format)
	assert.Equal(t, 960, song.TimeUnit)
	assert.Equal(t, 2, song.TrackCount)
	require.Len(t, song.Tracks, 2)
	assert.Equal(t, 120.0, song.BPM)
	assert.Equal(t, 960, song.MaxTime)

	expected := []synthrs.Event{
		{Type: synthrs.ProgramChange, SystemType: synthrs.SystemNone, MetaType: synthrs.MetaNone, Time: 0, Channel: 0, Value1: 0},
		{Type: synthrs.NoteOn, SystemType: synthrs.SystemNone, MetaType: synthrs.MetaNone, Time: 0, Channel: 0, Value1: 0x39, Value2: 0x40, HasValue2: true},
		{Type: synthrs.NoteOff, SystemType: synthrs.SystemNone, MetaType: synthrs.MetaNone, Time: 960, Channel: 0, Value1: 0x39, Value2: 0, HasValue2: true},
	}
	assert.Equal(t, expected, song.Tracks[1].Events)
	assert.Equal(t, 960, song.Tracks[1].MaxTime)

	// The tempo track has a single event, so its end does not count
	// towards the song length.
	assert.Equal(t, 0, song.Tracks[0].MaxTime)
}

func TestReadThreeTracks(t *testing.T) {
	file := smfHeader(2, 3, 256)
	for i := 0; i < 3; i++ {
		file = append(file, smfTrack([]byte{0x00, 0xff, 0x2f, 0x00})...)
	}

	song, err := midi.Read(bytes.NewReader(file))
	require.NoError(t, err)
	assert.Len(t, song.Tracks, 3)
	assert.Equal(t, 3, song.TrackCount)
	assert.Equal(t, 0, song.MaxTime)
}

func TestReadDefaultTempo(t *testing.T) {
	file := smfHeader(0, 1, 96)
	file = append(file, smfTrack([]byte{0x00, 0xff, 0x2f, 0x00})...)

	song, err := midi.Read(bytes.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, synthrs.DefaultBPM, song.BPM)
}

func TestReadFirstTempoWins(t *testing.T) {
	firstTempo := smfTrack([]byte{
		0x00, 0xff, 0x51, 0x03, 0x09, 0x27, 0xc0, // 600000 us => 100 BPM
		0x10, 0xff, 0x51, 0x03, 0x07, 0xa1, 0x20, // later tempo change, ignored
		0x00, 0xff, 0x2f, 0x00,
	})
	secondTempo := smfTrack([]byte{
		0x00, 0xff, 0x51, 0x03, 0x05, 0xb8, 0xd8, // 375000 us, also ignored
		0x00, 0xff, 0x2f, 0x00,
	})
	file := smfHeader(1, 2, 480)
	file = append(file, firstTempo...)
	file = append(file, secondTempo...)

	song, err := midi.Read(bytes.NewReader(file))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, song.BPM, 1e-9)
}

func TestReadBPM(t *testing.T) {
	file := smfHeader(0, 1, 480)
	file = append(file, smfTrack([]byte{
		0x00, 0xff, 0x51, 0x03, 0x05, 0xb8, 0xd8, // 375000 us per quarter note
		0x00, 0xff, 0x2f, 0x00,
	})...)

	song, err := midi.Read(bytes.NewReader(file))
	require.NoError(t, err)
	assert.InDelta(t, 160.0, song.BPM, 1.0)
}

func TestReadRejectsSMPTE(t *testing.T) {
	file := smfHeader(0, 1, 0xe250)
	file = append(file, smfTrack([]byte{0x00, 0xff, 0x2f, 0x00})...)

	_, err := midi.Read(bytes.NewReader(file))
	require.Error(t, err)
	assert.True(t, errors.Is(err, midi.ErrFormat))
}

func TestReadBadFileHeader(t *testing.T) {
	file := smfHeader(0, 1, 96)
	copy(file, "MThx")
	file = append(file, smfTrack([]byte{0x00, 0xff, 0x2f, 0x00})...)

	_, err := midi.Read(bytes.NewReader(file))
	require.Error(t, err)
	assert.True(t, errors.Is(err, midi.ErrFormat))
}

func TestReadBadHeaderLength(t *testing.T) {
	file := []byte("MThd")
	file = binary.BigEndian.AppendUint32(file, 5)
	file = binary.BigEndian.AppendUint16(file, 0)
	file = binary.BigEndian.AppendUint16(file, 1)
	file = binary.BigEndian.AppendUint16(file, 96)

	_, err := midi.Read(bytes.NewReader(file))
	require.Error(t, err)
	assert.True(t, errors.Is(err, midi.ErrFormat))
}

func TestReadBadTrackHeader(t *testing.T) {
	file := smfHeader(0, 1, 96)
	track := smfTrack([]byte{0x00, 0xff, 0x2f, 0x00})
	copy(track, "MTrx")
	file = append(file, track...)

	_, err := midi.Read(bytes.NewReader(file))
	require.Error(t, err)
	assert.True(t, errors.Is(err, midi.ErrFormat))
}

func TestReadMissingTrack(t *testing.T) {
	// The header promises a track that is not there: an I/O error, not a
	// format error.
	file := smfHeader(0, 1, 96)

	_, err := midi.Read(bytes.NewReader(file))
	require.Error(t, err)
	assert.False(t, errors.Is(err, midi.ErrFormat))
	assert.True(t, errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF))
}

func TestReadTruncatedEventStream(t *testing.T) {
	file := smfHeader(0, 1, 96)
	file = append(file, smfTrack([]byte{0x00, 0x90, 0x39})...)

	_, err := midi.Read(bytes.NewReader(file))
	require.Error(t, err)
	assert.False(t, errors.Is(err, midi.ErrFormat))
}

func TestReadZeroTempo(t *testing.T) {
	file := smfHeader(0, 1, 96)
	file = append(file, smfTrack([]byte{
		0x00, 0xff, 0x51, 0x03, 0x00, 0x00, 0x00,
		0x00, 0xff, 0x2f, 0x00,
	})...)

	_, err := midi.Read(bytes.NewReader(file))
	require.Error(t, err)
	assert.True(t, errors.Is(err, midi.ErrFormat))
}

func TestReadSingleEventTrackHasNoLength(t *testing.T) {
	file := smfHeader(0, 1, 96)
	file = append(file, smfTrack([]byte{
		0x05, 0x90, 0x39, 0x40,
		0x00, 0xff, 0x2f, 0x00,
	})...)

	song, err := midi.Read(bytes.NewReader(file))
	require.NoError(t, err)
	require.Len(t, song.Tracks[0].Events, 1)
	assert.Equal(t, 0, song.Tracks[0].MaxTime)
	assert.Equal(t, 0, song.MaxTime)
}

func TestReadFile(t *testing.T) {
	file := smfHeader(0, 1, 96)
	file = append(file, tempoTrack...)
	path := filepath.Join(t.TempDir(), "song.mid")
	require.NoError(t, os.WriteFile(path, file, 0644))

	song, err := midi.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 120.0, song.BPM)

	_, err = midi.ReadFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}
