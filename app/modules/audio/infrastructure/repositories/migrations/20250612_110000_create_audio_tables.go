package audiomigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	// Depends on the users table; run the user module migrations first.
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS audio_commands (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				format TEXT NOT NULL,
				size BIGINT NOT NULL,
				created_by TEXT NOT NULL REFERENCES users (id),
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
		`)
		if err != nil {
			return fmt.Errorf("failed to create audio_commands table: %w", err)
		}

		_, err = db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS audio_data (
				id TEXT PRIMARY KEY REFERENCES audio_commands (id) ON DELETE CASCADE,
				data BYTEA NOT NULL
			);
		`)
		if err != nil {
			return fmt.Errorf("failed to create audio_data table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS audio_data;`); err != nil {
			return fmt.Errorf("failed to drop audio_data table: %w", err)
		}
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS audio_commands;`); err != nil {
			return fmt.Errorf("failed to drop audio_commands table: %w", err)
		}
		return nil
	})
}
