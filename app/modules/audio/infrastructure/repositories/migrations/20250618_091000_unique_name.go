package audiomigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	// Storage-level backstop for the check-then-write name uniqueness guard.
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			CREATE UNIQUE INDEX IF NOT EXISTS audio_commands_name_key ON audio_commands (name);
		`)
		if err != nil {
			return fmt.Errorf("failed to create unique audio name index: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP INDEX IF EXISTS audio_commands_name_key;`)
		if err != nil {
			return fmt.Errorf("failed to drop unique audio name index: %w", err)
		}
		return nil
	})
}
