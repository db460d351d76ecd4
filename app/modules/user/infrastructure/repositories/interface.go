package userdb

import (
	"context"

	"github.com/uptrace/bun"

	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
)

// Repository is the storage contract for users. Every method takes a bun.IDB
// execution handle: pass an open bun.Tx to run inside that transaction, or nil
// to run against the repository's default connection.
type Repository interface {
	Create(ctx context.Context, db bun.IDB, user *userdomain.User) error
	Update(ctx context.Context, db bun.IDB, user *userdomain.User) error
	FindByID(ctx context.Context, db bun.IDB, id string) (*userdomain.User, error)
	FindByUsername(ctx context.Context, db bun.IDB, username string) (*userdomain.User, error)
}
