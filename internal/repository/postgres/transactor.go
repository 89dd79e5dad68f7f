package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"conferencecentral/internal/domain"
)

type transactor struct {
	db *sql.DB
}

// NewTransactor returns a Transactor that runs the callback's repository
// operations on a single *sql.Tx.
func NewTransactor(db *sql.DB) domain.Transactor {
	return &transactor{db: db}
}

func (t *transactor) InTx(ctx context.Context, fn func(ctx context.Context, s domain.Stores) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stores := domain.Stores{
		Profiles:    &profileRepository{db: tx},
		Conferences: &conferenceRepository{db: tx},
		Sessions:    &sessionRepository{db: tx},
		Speakers:    &speakerRepository{db: tx},
	}

	if err := fn(ctx, stores); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
