package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL,
				display_name TEXT NOT NULL,
				avatar TEXT,
				provider TEXT NOT NULL,
				entry_audio TEXT,
				volume INTEGER NOT NULL DEFAULT 100,
				play_on_entry BOOLEAN NOT NULL DEFAULT FALSE,
				favorites TEXT[] NOT NULL DEFAULT '{}'
			);
		`)
		if err != nil {
			return fmt.Errorf("failed to create users table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS users;`)
		if err != nil {
			return fmt.Errorf("failed to drop users table: %w", err)
		}
		return nil
	})
}
