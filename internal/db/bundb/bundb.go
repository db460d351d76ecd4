// Package bundb builds the shared bun.DB connection pool used by every
// repository. The pool is constructed once at startup and injected; there is
// no package-level database state.
package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	audiodb "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories"
	userdb "github.com/soundcord/soundcord-bot/app/modules/user/infrastructure/repositories"
)

// DriverPostgres is the only supported database driver tag.
const DriverPostgres = "postgres"

// Open connects the pool for the configured driver. An unrecognized driver tag
// is a startup error, not a runtime branch.
func Open(ctx context.Context, driver, dsn string) (*bun.DB, error) {
	switch driver {
	case DriverPostgres:
		return newPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func newPostgres(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel((*userdb.User)(nil))
	db.RegisterModel((*audiodb.AudioCommand)(nil))
	db.RegisterModel((*audiodb.AudioData)(nil))

	return db, nil
}
