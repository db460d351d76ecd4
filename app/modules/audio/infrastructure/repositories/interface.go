package audiodb

import (
	"context"

	"github.com/uptrace/bun"

	audiodomain "github.com/soundcord/soundcord-bot/app/modules/audio/domain"
)

// Repository is the storage contract for audio commands and their payloads.
// Every method takes a bun.IDB execution handle: pass an open bun.Tx to run
// inside that transaction, or nil to run against the default connection.
type Repository interface {
	// Create inserts the metadata row and the payload row through the same
	// handle; when that handle is a transaction, either both rows persist or
	// neither does.
	Create(ctx context.Context, db bun.IDB, cmd *audiodomain.AudioCommand, data []byte) error

	UpdateName(ctx context.Context, db bun.IDB, cmd *audiodomain.AudioCommand) error
	FindByID(ctx context.Context, db bun.IDB, id string) (*audiodomain.AudioCommand, error)
	FindByName(ctx context.Context, db bun.IDB, name string) (*audiodomain.AudioCommand, error)
	FindDataByID(ctx context.Context, db bun.IDB, id string) ([]byte, error)
}
