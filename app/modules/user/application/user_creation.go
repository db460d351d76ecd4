package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"

	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
	userdb "github.com/soundcord/soundcord-bot/app/modules/user/infrastructure/repositories"
	"github.com/soundcord/soundcord-bot/internal/db"
)

// CreateUser registers a user for a first login with the externally supplied
// provider id. The username conflict check and the insert run in one
// transaction; a duplicate username fails with ErrUsernameTaken and leaves no
// row written.
func (s *UserService) CreateUser(ctx context.Context, props userdomain.CreateProps) (user *userdomain.User, err error) {
	ctx, span := s.tracer.Start(ctx, "UserService.CreateUser")
	defer span.End()
	defer func() { s.metrics.RecordCommand("create_user", err) }()

	user, err = userdomain.NewUser(props)
	if err != nil {
		return nil, err
	}

	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if txErr := s.ensureUsernameFree(ctx, tx, user.Username, user.ID); txErr != nil {
			return txErr
		}

		if txErr := s.repo.Create(ctx, tx, user); txErr != nil {
			if db.IsUniqueViolation(txErr) {
				return ErrUsernameTaken
			}
			return txErr
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create user",
			slog.String("user_id", props.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.Info("User created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// ensureUsernameFree fails with ErrUsernameTaken when a different user already
// holds the username. selfID excludes the caller's own row so a no-op rename
// is not a conflict.
func (s *UserService) ensureUsernameFree(ctx context.Context, tx bun.IDB, username, selfID string) error {
	holder, err := s.repo.FindByUsername(ctx, tx, username)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if holder.ID != selfID {
		return ErrUsernameTaken
	}
	return nil
}
