package audioservice

import (
	"context"
	"errors"

	audiodomain "github.com/soundcord/soundcord-bot/app/modules/audio/domain"
	audiodb "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories"
)

// GetAudio retrieves command metadata by id.
func (s *AudioService) GetAudio(ctx context.Context, id string) (*audiodomain.AudioCommand, error) {
	ctx, span := s.tracer.Start(ctx, "AudioService.GetAudio")
	defer span.End()

	cmd, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, audiodb.ErrNotFound) {
			return nil, ErrAudioNotFound
		}
		return nil, err
	}
	return cmd, nil
}

// GetAudioData retrieves the binary payload by command id.
func (s *AudioService) GetAudioData(ctx context.Context, id string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "AudioService.GetAudioData")
	defer span.End()

	data, err := s.repo.FindDataByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, audiodb.ErrDataNotFound) {
			return nil, ErrAudioNotFound
		}
		return nil, err
	}
	return data, nil
}
