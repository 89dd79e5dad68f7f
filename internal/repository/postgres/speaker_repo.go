package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type speakerRepository struct {
	db DBTX
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{db: db}
}

const speakerColumns = `id, name, organization, interests, created_at`

func (r *speakerRepository) Create(ctx context.Context, speaker *domain.Speaker) error {
	q := `
		INSERT INTO speakers (name, organization, interests, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, q,
		speaker.Name, speaker.Organization, pq.Array(speaker.Interests), speaker.CreatedAt,
	).Scan(&speaker.ID)
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	q := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1`
	s := &domain.Speaker{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Name, &s.Organization, pq.Array(&s.Interests), &s.CreatedAt,
	)
	if err != nil {
		return nil, lookupErr(err)
	}
	return s, nil
}

func (r *speakerRepository) Query(ctx context.Context, plan *query.Plan) ([]*domain.Speaker, error) {
	q, args := buildPlanQuery(`SELECT `+speakerColumns+` FROM speakers`, plan)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var speakers []*domain.Speaker
	for rows.Next() {
		s := &domain.Speaker{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Organization, pq.Array(&s.Interests), &s.CreatedAt); err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}
