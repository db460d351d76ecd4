package userservice

import (
	"context"

	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
)

// Service is the user command surface: one method per use case.
type Service interface {
	CreateUser(ctx context.Context, props userdomain.CreateProps) (*userdomain.User, error)
	UpdateUser(ctx context.Context, id string, patch userdomain.Patch) (*userdomain.User, error)
	GetUser(ctx context.Context, id string) (*userdomain.User, error)
}
