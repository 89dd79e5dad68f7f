package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

// invalidTextRepresentation is the Postgres error code raised when a bind
// parameter cannot be parsed as the column type, e.g. a non-UUID id bound to
// a uuid column.
const invalidTextRepresentation = "22P02"

// lookupErr maps failures caused by the looked-up id itself to ErrNotFound.
// An id the uuid column cannot bind names no row, same as a missing one;
// decoded websafe keys carry arbitrary client input all the way here.
func lookupErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation {
		return domain.ErrNotFound
	}
	return err
}

// DBTX is the subset of database/sql used by the repositories. It is
// satisfied by both *sql.DB and *sql.Tx so the same repository code runs
// standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
