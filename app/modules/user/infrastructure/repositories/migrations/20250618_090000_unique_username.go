package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	// Storage-level backstop for the application's check-then-write username
	// uniqueness guard. A concurrent second writer surfaces here as a unique
	// violation instead of a silent duplicate.
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username);
		`)
		if err != nil {
			return fmt.Errorf("failed to create unique username index: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP INDEX IF EXISTS users_username_key;`)
		if err != nil {
			return fmt.Errorf("failed to drop unique username index: %w", err)
		}
		return nil
	})
}
