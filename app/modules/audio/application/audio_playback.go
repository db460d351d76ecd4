package audioservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audioevents "github.com/soundcord/soundcord-bot/app/modules/audio/domain/events"
)

// PlayAudio verifies the command exists and publishes a play request for the
// orchestrator. The call returns once the event is dispatched; the playback
// session itself is fire-and-forget from the requester's point of view.
func (s *AudioService) PlayAudio(ctx context.Context, id, channelID, userID string, volume int) (err error) {
	ctx, span := s.tracer.Start(ctx, "AudioService.PlayAudio")
	defer span.End()
	defer func() { s.metrics.RecordCommand("play_audio", err) }()

	if _, err = s.GetAudio(ctx, id); err != nil {
		return err
	}

	payload := audioevents.PlayRequestedPayload{
		AudioID:   id,
		ChannelID: channelID,
		UserID:    userID,
		Volume:    volume,
		Timestamp: time.Now().UTC(),
	}

	if err = s.eventBus.PublishPlayRequested(ctx, payload); err != nil {
		return fmt.Errorf("failed to publish play request: %w", err)
	}

	s.logger.Info("Play request published",
		slog.String("audio_id", id),
		slog.String("channel_id", channelID),
		slog.String("user_id", userID),
	)
	return nil
}
