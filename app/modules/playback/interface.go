package playback

import "context"

// Session is one live voice-channel playback. Implementations signal natural
// completion on Idle, failures on Err, and must make Destroy safe to call at
// any point in the lifecycle, including concurrently with a signal.
type Session interface {
	// Stream submits the clip bytes for playback at the given volume (0-100)
	// and returns once streaming has started.
	Stream(data []byte, volume int) error

	// Idle is closed when playback completes naturally.
	Idle() <-chan struct{}

	// Err yields a playback failure. At most one error is sent.
	Err() <-chan error

	// Destroy tears the session down. Idempotent.
	Destroy() error
}

// Connector joins voice channels. This is the boundary to the voice SDK; the
// orchestrator never sees anything deeper than Session.
type Connector interface {
	Join(ctx context.Context, channelID string) (Session, error)
}
