package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository bound to the given default
// connection.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create inserts a new user row.
func (r *Impl) Create(ctx context.Context, db bun.IDB, user *userdomain.User) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(toRow(user)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update persists the full mutable column set of an existing user.
func (r *Impl) Update(ctx context.Context, db bun.IDB, user *userdomain.User) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model(toRow(user)).
		Column("username", "display_name", "avatar", "entry_audio", "volume", "play_on_entry", "favorites").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID retrieves a user by the external-provider id.
func (r *Impl) FindByID(ctx context.Context, db bun.IDB, id string) (*userdomain.User, error) {
	db = r.resolveDB(db)
	row := new(User)
	err := db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toEntity(row), nil
}

// FindByUsername retrieves a user by username.
func (r *Impl) FindByUsername(ctx context.Context, db bun.IDB, username string) (*userdomain.User, error) {
	db = r.resolveDB(db)
	row := new(User)
	err := db.NewSelect().
		Model(row).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return toEntity(row), nil
}
