package midi

import "errors"

var (
	// ErrFormat is wrapped by every error caused by the file contents being
	// wrong: bad magic bytes, an unsupported time division, a corrupt event
	// stream. Errors that do not wrap ErrFormat are I/O errors; retrying
	// those on another reader might succeed, retrying a format error never
	// will.
	ErrFormat = errors.New("midi: invalid format")

	// ErrEndOfTrack is reported by EventReader.Next once the track's
	// EndOfTrack meta event has been consumed, like io.EOF but for one
	// track's event stream.
	ErrEndOfTrack = errors.New("midi: end of track")
)
