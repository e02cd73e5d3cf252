package synthrs

import "fmt"

// EventType classifies a MIDI message by the high nibble of its status byte.
// Values 0x8..0xe are channel voice messages; 0xf covers the system messages,
// which SystemEventType classifies further.
type EventType byte

const (
	NoteOff               EventType = 0x8
	NoteOn                EventType = 0x9
	PolyphonicKeyPressure EventType = 0xa
	ControlChange         EventType = 0xb
	ProgramChange         EventType = 0xc
	ChannelPressure       EventType = 0xd
	PitchBendChange       EventType = 0xe
	System                EventType = 0xf
)

// SystemEventType classifies a system message by the low nibble of its status
// byte. The gaps (0x4, 0x5, 0xd) are undefined in the MIDI specification and
// decode as unrecognized.
type SystemEventType byte

const (
	SystemExclusive      SystemEventType = 0x0
	TimeCodeQuarterFrame SystemEventType = 0x1
	SongPositionPointer  SystemEventType = 0x2
	SongSelect           SystemEventType = 0x3
	TuneRequest          SystemEventType = 0x6
	EndOfSystemExclusive SystemEventType = 0x7
	TimingClock          SystemEventType = 0x8
	Start                SystemEventType = 0xa
	Continue             SystemEventType = 0xb
	Stop                 SystemEventType = 0xc
	ActiveSensing        SystemEventType = 0xe
	SystemResetOrMeta    SystemEventType = 0xf

	// SystemNone marks an Event that is not a system message.
	SystemNone SystemEventType = 0xff
)

// MetaEventType identifies a meta event inside a SystemResetOrMeta message.
// Only EndOfTrack and TempoSetting affect decoding; the rest are recognized
// so their payloads can be skipped by length.
type MetaEventType byte

const (
	SequenceNumber          MetaEventType = 0x00
	TextEvent               MetaEventType = 0x01
	CopyrightNotice         MetaEventType = 0x02
	SequenceOrTrackName     MetaEventType = 0x03
	InstrumentName          MetaEventType = 0x04
	LyricText               MetaEventType = 0x05
	MarkerText              MetaEventType = 0x06
	CuePoint                MetaEventType = 0x07
	ChannelPrefixAssignment MetaEventType = 0x20
	EndOfTrack              MetaEventType = 0x2f
	TempoSetting            MetaEventType = 0x51
	SMPTEOffset             MetaEventType = 0x54
	TimeSignature           MetaEventType = 0x58
	SequencerSpecificEvent  MetaEventType = 0x7f

	// MetaNone marks an Event that is not a meta event.
	MetaNone MetaEventType = 0xff
)

// Event is one decoded MIDI message, with its position in the track converted
// to an absolute tick count.
type Event struct {
	// Type is the message class from the status byte's high nibble.
	Type EventType

	// SystemType classifies the message further when Type == System;
	// SystemNone otherwise.
	SystemType SystemEventType

	// MetaType identifies decoded meta events (currently only TempoSetting
	// events are yielded); MetaNone otherwise.
	MetaType MetaEventType

	// Time is the absolute tick of the event: the cumulative sum of all
	// delta times up to and including this event's own.
	Time int

	// Channel is the low nibble of the status byte. It is stored even for
	// system messages, where it carries the system event code instead of a
	// channel number.
	Channel uint8

	// Value1 and Value2 are the data bytes. Two-data-byte messages (note
	// on/off, key pressure, control change, pitch bend) set both; one-byte
	// messages (program change, channel pressure) set only Value1. For a
	// TempoSetting event Value1 holds the 24-bit microseconds-per-quarter
	// value instead.
	Value1    int
	Value2    int
	HasValue2 bool
}

// IsNoteTerminating reports whether this event ends a sounding note: either a
// real NoteOff, or the conventional NoteOn with velocity zero.
func (e Event) IsNoteTerminating() bool {
	return e.Type == NoteOff || (e.Type == NoteOn && e.HasValue2 && e.Value2 == 0)
}

func (e Event) String() string {
	switch {
	case e.MetaType != MetaNone:
		return fmt.Sprintf("%v %v @%d", e.MetaType, e.Value1, e.Time)
	case e.Type == System:
		return fmt.Sprintf("%v @%d", e.SystemType, e.Time)
	case e.HasValue2:
		return fmt.Sprintf("%v ch%d %d %d @%d", e.Type, e.Channel, e.Value1, e.Value2, e.Time)
	default:
		return fmt.Sprintf("%v ch%d %d @%d", e.Type, e.Channel, e.Value1, e.Time)
	}
}

// EventTypeFromCode maps a status byte's high nibble to its EventType. The
// second return value is false for nibbles below 0x8, which are not status
// bytes at all.
func EventTypeFromCode(code byte) (EventType, bool) {
	if code < 0x8 || code > 0xf {
		return 0, false
	}
	return EventType(code), true
}

// SystemEventTypeFromCode maps a status byte's low nibble to its
// SystemEventType; false for the nibbles the MIDI specification leaves
// undefined.
func SystemEventTypeFromCode(code byte) (SystemEventType, bool) {
	switch t := SystemEventType(code); t {
	case SystemExclusive, TimeCodeQuarterFrame, SongPositionPointer, SongSelect,
		TuneRequest, EndOfSystemExclusive, TimingClock, Start, Continue, Stop,
		ActiveSensing, SystemResetOrMeta:
		return t, true
	}
	return 0, false
}

// MetaEventTypeFromCode maps a meta event's type byte to its MetaEventType;
// false for types this package does not recognize (their payloads are still
// skipped correctly, by length).
func MetaEventTypeFromCode(code byte) (MetaEventType, bool) {
	switch t := MetaEventType(code); t {
	case SequenceNumber, TextEvent, CopyrightNotice, SequenceOrTrackName,
		InstrumentName, LyricText, MarkerText, CuePoint, ChannelPrefixAssignment,
		EndOfTrack, TempoSetting, SMPTEOffset, TimeSignature, SequencerSpecificEvent:
		return t, true
	}
	return 0, false
}

var eventTypeNames = map[EventType]string{
	NoteOff:               "NoteOff",
	NoteOn:                "NoteOn",
	PolyphonicKeyPressure: "PolyphonicKeyPressure",
	ControlChange:         "ControlChange",
	ProgramChange:         "ProgramChange",
	ChannelPressure:       "ChannelPressure",
	PitchBendChange:       "PitchBendChange",
	System:                "System",
}

func (e EventType) String() string {
	if name, ok := eventTypeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%#x)", byte(e))
}

var systemEventTypeNames = map[SystemEventType]string{
	SystemExclusive:      "SystemExclusive",
	TimeCodeQuarterFrame: "TimeCodeQuarterFrame",
	SongPositionPointer:  "SongPositionPointer",
	SongSelect:           "SongSelect",
	TuneRequest:          "TuneRequest",
	EndOfSystemExclusive: "EndOfSystemExclusive",
	TimingClock:          "TimingClock",
	Start:                "Start",
	Continue:             "Continue",
	Stop:                 "Stop",
	ActiveSensing:        "ActiveSensing",
	SystemResetOrMeta:    "SystemResetOrMeta",
}

func (e SystemEventType) String() string {
	if name, ok := systemEventTypeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("SystemEventType(%#x)", byte(e))
}

var metaEventTypeNames = map[MetaEventType]string{
	SequenceNumber:          "SequenceNumber",
	TextEvent:               "TextEvent",
	CopyrightNotice:         "CopyrightNotice",
	SequenceOrTrackName:     "SequenceOrTrackName",
	InstrumentName:          "InstrumentName",
	LyricText:               "LyricText",
	MarkerText:              "MarkerText",
	CuePoint:                "CuePoint",
	ChannelPrefixAssignment: "ChannelPrefixAssignment",
	EndOfTrack:              "EndOfTrack",
	TempoSetting:            "TempoSetting",
	SMPTEOffset:             "SMPTEOffset",
	TimeSignature:           "TimeSignature",
	SequencerSpecificEvent:  "SequencerSpecificEvent",
}

func (e MetaEventType) String() string {
	if name, ok := metaEventTypeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("MetaEventType(%#x)", byte(e))
}
