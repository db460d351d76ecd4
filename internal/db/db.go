package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// TxRunner runs a unit of work inside a single database transaction.
// The transaction is committed when fn returns nil and rolled back otherwise;
// the error returned by fn is passed through unchanged.
//
// *bun.DB satisfies this interface via RunInTx.
type TxRunner interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// pgUniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation. The unique indexes on users.username and audio_commands.name are
// a storage-level backstop behind the application's check-then-write; a
// violation here means a concurrent writer won the race.
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	return false
}
