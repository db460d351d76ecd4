package audioservice

import (
	"context"

	audiodomain "github.com/soundcord/soundcord-bot/app/modules/audio/domain"
)

// Service is the audio command surface: one method per use case.
type Service interface {
	CreateAudio(ctx context.Context, name string, format audiodomain.Format, data []byte, createdBy string) (*audiodomain.AudioCommand, error)
	RenameAudio(ctx context.Context, id, name string) (*audiodomain.AudioCommand, error)
	GetAudio(ctx context.Context, id string) (*audiodomain.AudioCommand, error)
	GetAudioData(ctx context.Context, id string) ([]byte, error)

	// PlayAudio verifies the command exists and publishes a play request.
	// It returns before playback happens; playback failures are observability
	// events, not request failures.
	PlayAudio(ctx context.Context, id, channelID, userID string, volume int) error
}
