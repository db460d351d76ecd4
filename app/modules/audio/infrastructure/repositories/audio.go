package audiodb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	audiodomain "github.com/soundcord/soundcord-bot/app/modules/audio/domain"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new audio repository bound to the given default
// connection.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create inserts the metadata row, then the payload row, through the same
// handle. Callers wanting atomicity must pass an open transaction; a failure
// on either insert then rolls back both.
func (r *Impl) Create(ctx context.Context, db bun.IDB, cmd *audiodomain.AudioCommand, data []byte) error {
	db = r.resolveDB(db)

	if _, err := db.NewInsert().Model(toRow(cmd)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create audio command: %w", err)
	}

	payload := &AudioData{ID: cmd.ID, Data: data}
	if _, err := db.NewInsert().Model(payload).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create audio data: %w", err)
	}

	return nil
}

// UpdateName persists a rename.
func (r *Impl) UpdateName(ctx context.Context, db bun.IDB, cmd *audiodomain.AudioCommand) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*AudioCommand)(nil)).
		Set("name = ?", cmd.Name).
		Set("updated_at = ?", cmd.UpdatedAt).
		Where("id = ?", cmd.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update audio command name: %w", err)
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

// FindByID retrieves command metadata by id.
func (r *Impl) FindByID(ctx context.Context, db bun.IDB, id string) (*audiodomain.AudioCommand, error) {
	db = r.resolveDB(db)
	row := new(AudioCommand)
	err := db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get audio command by id: %w", err)
	}
	return toEntity(row), nil
}

// FindByName retrieves command metadata by its unique name.
func (r *Impl) FindByName(ctx context.Context, db bun.IDB, name string) (*audiodomain.AudioCommand, error) {
	db = r.resolveDB(db)
	row := new(AudioCommand)
	err := db.NewSelect().
		Model(row).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get audio command by name: %w", err)
	}
	return toEntity(row), nil
}

// FindDataByID retrieves the binary payload for a command. Absence is reported
// as ErrDataNotFound, never as a scan failure.
func (r *Impl) FindDataByID(ctx context.Context, db bun.IDB, id string) ([]byte, error) {
	db = r.resolveDB(db)
	row := new(AudioData)
	err := db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDataNotFound
		}
		return nil, fmt.Errorf("failed to get audio data by id: %w", err)
	}
	return row.Data, nil
}
