package audioservice

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/uptrace/bun"

	audiodomain "github.com/soundcord/soundcord-bot/app/modules/audio/domain"
	audiodb "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories"
	"github.com/soundcord/soundcord-bot/internal/db"
)

// RenameAudio changes a command's name, the only mutable attribute. The
// conflict check excludes the command's own row, so renaming to the current
// name is a no-op rather than a conflict.
func (s *AudioService) RenameAudio(ctx context.Context, id, name string) (renamed *audiodomain.AudioCommand, err error) {
	ctx, span := s.tracer.Start(ctx, "AudioService.RenameAudio")
	defer span.End()
	defer func() { s.metrics.RecordCommand("rename_audio", err) }()

	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		cmd, txErr := s.repo.FindByID(ctx, tx, id)
		if txErr != nil {
			if errors.Is(txErr, audiodb.ErrNotFound) {
				return ErrAudioNotFound
			}
			return txErr
		}

		if cmd.Name != name {
			if txErr := s.ensureNameFree(ctx, tx, name, cmd.ID); txErr != nil {
				return txErr
			}
		}

		if txErr := cmd.Rename(name); txErr != nil {
			return txErr
		}

		if txErr := s.repo.UpdateName(ctx, tx, cmd); txErr != nil {
			if db.IsUniqueViolation(txErr) {
				return ErrNameTaken
			}
			return txErr
		}

		renamed = cmd
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to rename audio command",
			slog.String("audio_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.Info("Audio command renamed",
		slog.String("audio_id", id),
		slog.String("name", name),
	)
	return renamed, nil
}
