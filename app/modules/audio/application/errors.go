package audioservice

import "errors"

var (
	// ErrNameTaken indicates the audio command name uniqueness invariant
	// would be violated.
	ErrNameTaken = errors.New("audio command name already taken")

	// ErrAudioNotFound indicates the requested audio command does not exist.
	ErrAudioNotFound = errors.New("audio command not found")
)
