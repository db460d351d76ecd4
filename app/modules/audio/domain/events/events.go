// Package audioevents defines the closed set of domain events exchanged
// between the audio service and the playback orchestrator.
package audioevents

import "time"

// Topics for the in-process event bus.
const (
	TopicPlayRequested = "audio.play.requested"
	TopicPlayFinished  = "audio.play.finished"
)

// PlayRequestedPayload asks the orchestrator to play a clip in a voice
// channel. Fire-and-forget: the publisher returns before playback happens.
type PlayRequestedPayload struct {
	AudioID   string    `json:"audio_id"`
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Volume    int       `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}

// PlayFinishedPayload reports natural completion of a playback session,
// carrying the correlation fields of the originating request. DurationMS is
// not currently computed and is always zero.
type PlayFinishedPayload struct {
	AudioID    string    `json:"audio_id"`
	ChannelID  string    `json:"channel_id"`
	UserID     string    `json:"user_id"`
	Volume     int       `json:"volume"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}
