package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	audiomigrations "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories/migrations"
	usermigrations "github.com/soundcord/soundcord-bot/app/modules/user/infrastructure/repositories/migrations"
	"github.com/soundcord/soundcord-bot/config"
)

// moduleOrder fixes cross-module dependency order: audio_commands references
// users, so the user migrations always run first.
var moduleOrder = []string{"user", "audio"}

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	migrators := map[string]*migrate.Migrator{
		"user":  migrate.NewMigrator(db, usermigrations.Migrations),
		"audio": migrate.NewMigrator(db, audiomigrations.Migrations),
	}

	cliApp := &cli.App{
		Name: "bun",
		Commands: []*cli.Command{
			newMigrateCommand(migrators),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newMigrateCommand(migrators map[string]*migrate.Migrator) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return forEachModule(c.Context, migrators, func(ctx context.Context, name string, m *migrate.Migrator) error {
						return m.Init(ctx)
					})
				},
			},
			{
				Name:  "up",
				Usage: "apply pending migrations for all modules",
				Action: func(c *cli.Context) error {
					return forEachModule(c.Context, migrators, func(ctx context.Context, name string, m *migrate.Migrator) error {
						group, err := m.Migrate(ctx)
						if err != nil {
							return fmt.Errorf("module %s: %w", name, err)
						}
						if group.IsZero() {
							fmt.Printf("%s: no new migrations\n", name)
							return nil
						}
						fmt.Printf("%s: migrated to %s\n", name, group)
						return nil
					})
				},
			},
			{
				Name:  "down",
				Usage: "roll back the last migration group for all modules",
				Action: func(c *cli.Context) error {
					return forEachModule(c.Context, migrators, func(ctx context.Context, name string, m *migrate.Migrator) error {
						group, err := m.Rollback(ctx)
						if err != nil {
							return fmt.Errorf("module %s: %w", name, err)
						}
						if group.IsZero() {
							fmt.Printf("%s: nothing to roll back\n", name)
							return nil
						}
						fmt.Printf("%s: rolled back %s\n", name, group)
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "show migration status for all modules",
				Action: func(c *cli.Context) error {
					return forEachModule(c.Context, migrators, func(ctx context.Context, name string, m *migrate.Migrator) error {
						ms, err := m.MigrationsWithStatus(ctx)
						if err != nil {
							return fmt.Errorf("module %s: %w", name, err)
						}
						fmt.Printf("%s: %s (unapplied: %s)\n", name, ms, ms.Unapplied())
						return nil
					})
				},
			},
		},
	}
}

func forEachModule(ctx context.Context, migrators map[string]*migrate.Migrator, fn func(context.Context, string, *migrate.Migrator) error) error {
	for _, name := range moduleOrder {
		if err := fn(ctx, name, migrators[name]); err != nil {
			return err
		}
	}
	return nil
}
