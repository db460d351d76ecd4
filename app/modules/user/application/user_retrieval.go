package userservice

import (
	"context"
	"errors"

	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
	userdb "github.com/soundcord/soundcord-bot/app/modules/user/infrastructure/repositories"
)

// GetUser retrieves a user by the external-provider id. Absence is reported as
// ErrUserNotFound; the caller decides whether that becomes user-visible.
func (s *UserService) GetUser(ctx context.Context, id string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetUser")
	defer span.End()

	user, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
