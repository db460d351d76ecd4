package userservice

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/uptrace/bun"

	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
	userdb "github.com/soundcord/soundcord-bot/app/modules/user/infrastructure/repositories"
	"github.com/soundcord/soundcord-bot/internal/db"
)

// UpdateUser applies a partial patch to an existing user. When the patch
// carries a username, a different user already holding it is a conflict; the
// user's own current username is not. Load, check and write share one
// transaction.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch userdomain.Patch) (updated *userdomain.User, err error) {
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateUser")
	defer span.End()
	defer func() { s.metrics.RecordCommand("update_user", err) }()

	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		user, txErr := s.repo.FindByID(ctx, tx, id)
		if txErr != nil {
			if errors.Is(txErr, userdb.ErrNotFound) {
				return ErrUserNotFound
			}
			return txErr
		}

		if patch.Username != nil && *patch.Username != user.Username {
			if txErr := s.ensureUsernameFree(ctx, tx, *patch.Username, user.ID); txErr != nil {
				return txErr
			}
		}

		user.ApplyPatch(patch)

		if txErr := s.repo.Update(ctx, tx, user); txErr != nil {
			if db.IsUniqueViolation(txErr) {
				return ErrUsernameTaken
			}
			return txErr
		}

		updated = user
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update user",
			slog.String("user_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.Info("User updated", slog.String("user_id", id))
	return updated, nil
}
