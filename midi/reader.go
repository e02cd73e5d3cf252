// Package midi decodes Standard MIDI Files into songs the synth packages
// can render. The decoder is strict about structure (chunk magics, the
// header length, metric time division) but skips over event types that
// carry no musical information, so files full of sysex dumps and lyrics
// still load.
package midi

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gyng/synthrs"
)

// byteScanner is what the decoder actually needs from its input:
// single-byte reads for the event stream and bulk reads for payloads we
// skip. bufio.Reader and bytes.Reader both qualify.
type byteScanner interface {
	io.Reader
	io.ByteReader
}

// EventReader decodes the event stream of a single MTrk chunk. Delta
// times are accumulated into absolute ticks as it goes, and running
// status is resolved, so callers only ever see complete events.
//
// A data byte in status position means the previous status byte is still
// in effect. The reader keeps that byte in a one-byte lookahead buffer
// and hands it back for the next data-byte read instead of rewinding the
// input, so the input only needs to be readable, not seekable.
type EventReader struct {
	r byteScanner

	time           int
	runningType    synthrs.EventType
	runningChannel uint8
	haveStatus     bool

	pending    byte
	hasPending bool

	done bool
}

// NewEventReader returns an EventReader decoding events from r. The
// reader is positioned just after a track's chunk header. If r does not
// implement io.ByteReader it is wrapped in a bufio.Reader, in which case
// reads may draw more bytes from r than the track contains.
func NewEventReader(r io.Reader) *EventReader {
	s, ok := r.(byteScanner)
	if !ok {
		s = bufio.NewReader(r)
	}
	return &EventReader{r: s}
}

// Next returns the next event in the track. It skips over events that do
// not interest the synth (sysex payloads, most meta events), so the time
// between two returned events may span any number of skipped ones. After
// the track's EndOfTrack meta event it returns ErrEndOfTrack.
func (er *EventReader) Next() (synthrs.Event, error) {
	for !er.done {
		delta, err := ReadVarInt(er.r)
		if err != nil {
			return synthrs.Event{}, err
		}
		er.time += delta

		b, err := er.r.ReadByte()
		if err != nil {
			return synthrs.Event{}, fmt.Errorf("midi: reading status byte: %w", err)
		}
		if b&0x80 != 0 {
			typ, ok := synthrs.EventTypeFromCode(b >> 4)
			if !ok {
				return synthrs.Event{}, fmt.Errorf("midi: unrecognized status byte %#02x: %w", b, ErrFormat)
			}
			er.runningType = typ
			er.runningChannel = b & 0x0f
			er.haveStatus = true
			er.hasPending = false
		} else {
			if !er.haveStatus {
				return synthrs.Event{}, fmt.Errorf("midi: data byte %#02x before any status byte: %w", b, ErrFormat)
			}
			er.pending = b
			er.hasPending = true
		}

		switch er.runningType {
		case synthrs.ProgramChange, synthrs.ChannelPressure:
			return er.readChannelEvent(false)
		case synthrs.System:
			ev, yielded, err := er.readSystemEvent()
			if err != nil {
				return synthrs.Event{}, err
			}
			if yielded {
				return ev, nil
			}
			// Nothing worth returning; carry on with the next event.
		default:
			return er.readChannelEvent(true)
		}
	}
	return synthrs.Event{}, ErrEndOfTrack
}

// readChannelEvent reads the one or two data bytes of a channel voice
// event and builds the event from them.
func (er *EventReader) readChannelEvent(twoBytes bool) (synthrs.Event, error) {
	v1, err := er.readDataByte()
	if err != nil {
		return synthrs.Event{}, err
	}
	ev := synthrs.Event{
		Type:       er.runningType,
		SystemType: synthrs.SystemNone,
		MetaType:   synthrs.MetaNone,
		Time:       er.time,
		Channel:    er.runningChannel,
		Value1:     int(v1),
	}
	if twoBytes {
		v2, err := er.readDataByte()
		if err != nil {
			return synthrs.Event{}, err
		}
		ev.Value2 = int(v2)
		ev.HasValue2 = true
	}
	return ev, nil
}

// readDataByte returns the buffered lookahead byte if running status put
// one there, otherwise reads from the input.
func (er *EventReader) readDataByte() (byte, error) {
	if er.hasPending {
		er.hasPending = false
		return er.pending, nil
	}
	b, err := er.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("midi: reading data byte: %w", err)
	}
	return b, nil
}

// readSystemEvent handles the 0xf status nibble: sysex, system common,
// system real-time and meta events. Almost all of them are skipped;
// yielded reports whether ev is an event the caller should return.
func (er *EventReader) readSystemEvent() (ev synthrs.Event, yielded bool, err error) {
	sysType, ok := synthrs.SystemEventTypeFromCode(er.runningChannel)
	if !ok {
		return synthrs.Event{}, false, fmt.Errorf("midi: unrecognized system event %#x: %w", er.runningChannel, ErrFormat)
	}

	switch sysType {
	case synthrs.SystemExclusive:
		if err := er.skipSysex(); err != nil {
			return synthrs.Event{}, false, err
		}

	case synthrs.EndOfSystemExclusive:
		// Only valid as the terminator of a sysex payload, which
		// skipSysex consumes. On its own the file is broken.
		return synthrs.Event{}, false, fmt.Errorf("midi: end of system exclusive outside system exclusive event: %w", ErrFormat)

	case synthrs.SongPositionPointer, synthrs.SongSelect:
		if _, err := er.readDataByte(); err != nil {
			return synthrs.Event{}, false, err
		}
		if _, err := er.r.ReadByte(); err != nil {
			return synthrs.Event{}, false, fmt.Errorf("midi: reading data byte: %w", err)
		}

	case synthrs.TuneRequest, synthrs.TimingClock, synthrs.TimeCodeQuarterFrame,
		synthrs.Start, synthrs.Continue, synthrs.Stop, synthrs.ActiveSensing:
		// No data bytes.

	case synthrs.SystemResetOrMeta:
		return er.readMetaEvent(sysType)
	}
	return synthrs.Event{}, false, nil
}

// readMetaEvent reads a meta event's type byte and length. Tempo changes
// become events; EndOfTrack finishes the track; everything else has its
// payload skipped.
func (er *EventReader) readMetaEvent(sysType synthrs.SystemEventType) (ev synthrs.Event, yielded bool, err error) {
	typeByte, err := er.readDataByte()
	if err != nil {
		return synthrs.Event{}, false, err
	}
	length, err := ReadVarInt(er.r)
	if err != nil {
		return synthrs.Event{}, false, err
	}

	metaType, known := synthrs.MetaEventTypeFromCode(typeByte)
	if !known {
		if err := er.skip(length); err != nil {
			return synthrs.Event{}, false, err
		}
		return synthrs.Event{}, false, nil
	}

	switch metaType {
	case synthrs.EndOfTrack:
		er.done = true

	case synthrs.TempoSetting:
		if length != 3 {
			return synthrs.Event{}, false, fmt.Errorf("midi: tempo setting length should be 3, got %d: %w", length, ErrFormat)
		}
		var data [3]byte
		if _, err := io.ReadFull(er.r, data[:]); err != nil {
			return synthrs.Event{}, false, fmt.Errorf("midi: reading tempo setting: %w", err)
		}
		tempo := int(data[0])<<16 | int(data[1])<<8 | int(data[2])
		return synthrs.Event{
			Type:       er.runningType,
			SystemType: sysType,
			MetaType:   metaType,
			Time:       er.time,
			Channel:    er.runningChannel,
			Value1:     tempo,
		}, true, nil

	default:
		if err := er.skip(length); err != nil {
			return synthrs.Event{}, false, err
		}
	}
	return synthrs.Event{}, false, nil
}

// skipSysex discards a system exclusive payload. The scan stops at the
// first byte whose low nibble is the end-of-exclusive code, which also
// swallows escaped continuation packets.
func (er *EventReader) skipSysex() error {
	b, err := er.readDataByte()
	if err != nil {
		return err
	}
	for b&0x0f != byte(synthrs.EndOfSystemExclusive) {
		b, err = er.r.ReadByte()
		if err != nil {
			return fmt.Errorf("midi: scanning system exclusive: %w", err)
		}
	}
	return nil
}

func (er *EventReader) skip(n int) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, er.r, int64(n)); err != nil {
		return fmt.Errorf("midi: skipping %d byte event payload: %w", n, err)
	}
	return nil
}
