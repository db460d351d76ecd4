// Package playback turns domain play requests into voice-channel sessions and
// completion events. At most one session is active system-wide; a new request
// always preempts an in-flight one.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/soundcord/soundcord-bot/app/eventbus"
	audioevents "github.com/soundcord/soundcord-bot/app/modules/audio/domain/events"
	audiodb "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories"
	"github.com/soundcord/soundcord-bot/internal/observability"
)

// Orchestrator subscribes to play requests, manages the single voice session
// and publishes completion events. Playback failures are logged, never
// propagated to the original requester.
type Orchestrator struct {
	bus       eventbus.EventBus
	repo      audiodb.Repository
	connector Connector
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu      sync.Mutex
	state   sessionState
	nextGen uint64
}

// NewOrchestrator creates an orchestrator in the Idle state.
func NewOrchestrator(
	bus eventbus.EventBus,
	repo audiodb.Repository,
	connector Connector,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		bus:       bus,
		repo:      repo,
		connector: connector,
		logger:    logger,
		metrics:   metrics,
		state:     idleState(),
	}
}

// Start registers the play-request subscription. Sessions outlive individual
// handler invocations; canceling ctx stops new requests and tears down the
// active session.
func (o *Orchestrator) Start(ctx context.Context) error {
	if err := o.bus.SubscribePlayRequested(ctx, o.handlePlayRequest); err != nil {
		return fmt.Errorf("failed to subscribe to play requests: %w", err)
	}
	return nil
}

// handlePlayRequest drives one request through the state machine:
// Idle -> Connecting -> Streaming, with completion handled asynchronously.
// Returned errors are logged by the bus; the requester never sees them.
func (o *Orchestrator) handlePlayRequest(ctx context.Context, payload audioevents.PlayRequestedPayload) error {
	o.logger.Debug("Play request received",
		slog.String("audio_id", payload.AudioID),
		slog.String("channel_id", payload.ChannelID),
	)

	// Payload lookup happens before any voice work: a missing clip must not
	// preempt the active session or touch the voice capability at all.
	data, err := o.repo.FindDataByID(ctx, nil, payload.AudioID)
	if err != nil {
		if errors.Is(err, audiodb.ErrDataNotFound) {
			o.metrics.RecordPlayback(observability.PlaybackNoData)
			return fmt.Errorf("audio data not found for %s", payload.AudioID)
		}
		o.metrics.RecordPlayback(observability.PlaybackFailed)
		return fmt.Errorf("failed to fetch audio data for %s: %w", payload.AudioID, err)
	}

	// Last request wins: stop and tear down whatever is active.
	o.preempt()

	o.setConnecting(payload.ChannelID)

	session, err := o.connector.Join(ctx, payload.ChannelID)
	if err != nil {
		o.setIdle()
		o.metrics.RecordPlayback(observability.PlaybackFailed)
		return fmt.Errorf("failed to join voice channel %s: %w", payload.ChannelID, err)
	}

	gen, stop := o.setStreaming(payload.ChannelID, session)

	if err := session.Stream(data, payload.Volume); err != nil {
		if o.clearIfCurrent(gen) {
			o.destroy(session)
		}
		o.metrics.RecordPlayback(observability.PlaybackFailed)
		return fmt.Errorf("failed to start streaming in %s: %w", payload.ChannelID, err)
	}

	go o.awaitCompletion(ctx, gen, stop, session, payload)
	return nil
}

// awaitCompletion waits for the session's terminal signal and runs teardown
// exhaustively on the exiting state before the orchestrator re-enters Idle.
// A preempted waiter exits silently: the preemptor already owns teardown.
func (o *Orchestrator) awaitCompletion(ctx context.Context, gen uint64, stop <-chan struct{}, session Session, payload audioevents.PlayRequestedPayload) {
	select {
	case <-session.Idle():
		if !o.clearIfCurrent(gen) {
			return
		}
		o.destroy(session)
		o.publishFinished(ctx, payload)
		o.metrics.RecordPlayback(observability.PlaybackFinished)

	case err := <-session.Err():
		if !o.clearIfCurrent(gen) {
			return
		}
		o.destroy(session)
		o.logger.Error("Playback failed",
			slog.String("audio_id", payload.AudioID),
			slog.String("channel_id", payload.ChannelID),
			slog.Any("error", err),
		)
		o.metrics.RecordPlayback(observability.PlaybackFailed)

	case <-stop:
		// Preempted by a newer request.

	case <-ctx.Done():
		if o.clearIfCurrent(gen) {
			o.destroy(session)
		}
	}
}

func (o *Orchestrator) publishFinished(ctx context.Context, payload audioevents.PlayRequestedPayload) {
	finished := audioevents.PlayFinishedPayload{
		AudioID:   payload.AudioID,
		ChannelID: payload.ChannelID,
		UserID:    payload.UserID,
		Volume:    payload.Volume,
		// Duration tracking is not implemented; the field is kept for the
		// event shape and always reports zero.
		DurationMS: 0,
		Timestamp:  time.Now().UTC(),
	}
	if err := o.bus.PublishPlayFinished(ctx, finished); err != nil {
		o.logger.Error("Failed to publish play finished event",
			slog.String("audio_id", payload.AudioID),
			slog.Any("error", err),
		)
	}
}

// preempt force-stops the active session, if any, and returns the state
// machine to Idle. The preempted waiter is released through its stop channel.
func (o *Orchestrator) preempt() {
	o.mu.Lock()
	state := o.state
	o.state = idleState()
	o.mu.Unlock()

	if state.kind == stateIdle {
		return
	}
	if state.session != nil {
		o.destroy(state.session)
	}
	if state.stop != nil {
		close(state.stop)
	}
	o.logger.Info("Preempted active playback session",
		slog.String("channel_id", state.channelID),
	)
	o.metrics.RecordPlayback(observability.PlaybackPreempted)
}

func (o *Orchestrator) setConnecting(channelID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = sessionState{kind: stateConnecting, channelID: channelID}
}

func (o *Orchestrator) setStreaming(channelID string, session Session) (uint64, chan struct{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextGen++
	stop := make(chan struct{})
	o.state = sessionState{
		kind:      stateStreaming,
		channelID: channelID,
		session:   session,
		stop:      stop,
		gen:       o.nextGen,
	}
	return o.nextGen, stop
}

func (o *Orchestrator) setIdle() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = idleState()
}

// clearIfCurrent transitions to Idle only when gen still identifies the
// active session, reporting whether the caller won teardown ownership.
func (o *Orchestrator) clearIfCurrent(gen uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.kind != stateStreaming || o.state.gen != gen {
		return false
	}
	o.state = idleState()
	return true
}

func (o *Orchestrator) destroy(session Session) {
	if err := session.Destroy(); err != nil {
		o.logger.Error("Failed to tear down voice session", slog.Any("error", err))
	}
}
