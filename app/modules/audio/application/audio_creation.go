package audioservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"

	audiodomain "github.com/soundcord/soundcord-bot/app/modules/audio/domain"
	audiodb "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories"
	"github.com/soundcord/soundcord-bot/internal/db"
)

// CreateAudio registers an uploaded clip. Size is derived from the payload,
// never caller-supplied. The name conflict check and the dual insert (metadata
// row plus payload row) run in one transaction: a duplicate name fails with
// ErrNameTaken and neither row persists.
func (s *AudioService) CreateAudio(ctx context.Context, name string, format audiodomain.Format, data []byte, createdBy string) (cmd *audiodomain.AudioCommand, err error) {
	ctx, span := s.tracer.Start(ctx, "AudioService.CreateAudio")
	defer span.End()
	defer func() { s.metrics.RecordCommand("create_audio", err) }()

	cmd, err = audiodomain.NewAudioCommand(name, format, int64(len(data)), createdBy)
	if err != nil {
		return nil, err
	}

	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if txErr := s.ensureNameFree(ctx, tx, name, ""); txErr != nil {
			return txErr
		}

		if txErr := s.repo.Create(ctx, tx, cmd, data); txErr != nil {
			if db.IsUniqueViolation(txErr) {
				return ErrNameTaken
			}
			return txErr
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create audio command",
			slog.String("name", name),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.Info("Audio command created",
		slog.String("audio_id", cmd.ID),
		slog.String("name", cmd.Name),
		slog.Int64("size", cmd.Size),
	)
	return cmd, nil
}

// ensureNameFree fails with ErrNameTaken when a different command already
// holds the name. selfID excludes a command's own row on rename.
func (s *AudioService) ensureNameFree(ctx context.Context, tx bun.IDB, name, selfID string) error {
	holder, err := s.repo.FindByName(ctx, tx, name)
	if err != nil {
		if errors.Is(err, audiodb.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check audio name uniqueness: %w", err)
	}
	if holder.ID != selfID {
		return ErrNameTaken
	}
	return nil
}
