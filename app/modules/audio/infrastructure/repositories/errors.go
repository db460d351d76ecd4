package audiodb

import "errors"

var (
	// ErrNotFound is returned when no audio command matches the lookup.
	ErrNotFound = errors.New("audio command not found")

	// ErrDataNotFound is returned when the binary payload row is absent.
	ErrDataNotFound = errors.New("audio data not found")
)
