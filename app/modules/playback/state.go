package playback

// stateKind is the playback state machine position.
type stateKind int

const (
	stateIdle stateKind = iota
	stateConnecting
	stateStreaming
)

// sessionState is the orchestrator's single piece of shared mutable state,
// replaced atomically under the orchestrator's mutex on every transition.
// Exactly one session may be connecting or streaming at any instant.
type sessionState struct {
	kind      stateKind
	channelID string

	// Set while streaming.
	session Session
	stop    chan struct{}
	gen     uint64
}

func idleState() sessionState {
	return sessionState{kind: stateIdle}
}
