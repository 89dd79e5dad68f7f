package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type profileRepository struct {
	db DBTX
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `user_id, display_name, main_email, tee_shirt_size,
		conference_keys_to_attend, session_wishlist, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.UserID, profile.DisplayName, profile.MainEmail, string(profile.TeeShirtSize),
		pq.Array(profile.ConferenceKeysToAttend), pq.Array(profile.SessionWishlist),
		profile.CreatedAt, profile.UpdatedAt,
	)
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
	`
	return r.scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *profileRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
		FOR UPDATE
	`
	return r.scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $2, tee_shirt_size = $3,
			conference_keys_to_attend = $4, session_wishlist = $5, updated_at = $6
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		profile.UserID, profile.DisplayName, string(profile.TeeShirtSize),
		pq.Array(profile.ConferenceKeysToAttend), pq.Array(profile.SessionWishlist),
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) scanProfile(row *sql.Row) (*domain.Profile, error) {
	p := &domain.Profile{}
	var size string
	err := row.Scan(
		&p.UserID, &p.DisplayName, &p.MainEmail, &size,
		pq.Array(&p.ConferenceKeysToAttend), pq.Array(&p.SessionWishlist),
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.TeeShirtSize = domain.TeeShirtSize(size)
	return p, nil
}
