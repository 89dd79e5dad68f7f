package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type sessionRepository struct {
	db DBTX
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `id, conference_id, name, highlights, speaker_id,
		duration, type_of_session, date, start_time, created_at`

const sessionSelect = `SELECT ` + sessionColumns + ` FROM sessions`

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (conference_id, name, highlights, speaker_id,
			duration, type_of_session, date, start_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var speakerID any
	if session.SpeakerID != "" {
		speakerID = session.SpeakerID
	}
	return r.db.QueryRowContext(ctx, query,
		session.ConferenceID, session.Name, pq.Array(session.Highlights), speakerID,
		session.Duration, session.TypeOfSession, session.Date, session.StartTime,
		session.CreatedAt,
	).Scan(&session.ID)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, sessionSelect+` WHERE id = $1`, id)
	return r.scanOne(row)
}

func (r *sessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	return r.list(ctx, sessionSelect+` WHERE conference_id = $1 ORDER BY start_time, name`, conferenceID)
}

func (r *sessionRepository) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	return r.list(ctx,
		sessionSelect+` WHERE conference_id = $1 AND type_of_session = $2 ORDER BY start_time, name`,
		conferenceID, typeOfSession)
}

func (r *sessionRepository) ListByConferenceAndSpeaker(ctx context.Context, conferenceID, speakerID string) ([]*domain.Session, error) {
	return r.list(ctx,
		sessionSelect+` WHERE conference_id = $1 AND speaker_id = $2 ORDER BY created_at`,
		conferenceID, speakerID)
}

func (r *sessionRepository) ListBySpeakerID(ctx context.Context, speakerID string) ([]*domain.Session, error) {
	return r.list(ctx, sessionSelect+` WHERE speaker_id = $1 ORDER BY start_time, name`, speakerID)
}

func (r *sessionRepository) ListByStartTime(ctx context.Context, startTime int) ([]*domain.Session, error) {
	return r.list(ctx, sessionSelect+` WHERE start_time = $1 ORDER BY name`, startTime)
}

func (r *sessionRepository) ListByMinStartTimeAndDuration(ctx context.Context, startTime, duration int) ([]*domain.Session, error) {
	// start_time carries the inequality, so it is the primary sort key.
	return r.list(ctx,
		sessionSelect+` WHERE start_time >= $1 AND duration = $2 ORDER BY start_time, name`,
		startTime, duration)
}

func (r *sessionRepository) ListByMinStartTimeDurationHighlight(ctx context.Context, startTime, duration int, highlight string) ([]*domain.Session, error) {
	return r.list(ctx,
		sessionSelect+` WHERE start_time >= $1 AND duration = $2 AND $3 = ANY(highlights) ORDER BY start_time, name`,
		startTime, duration, highlight)
}

func (r *sessionRepository) ListByTypeNot(ctx context.Context, typeOfSession string) ([]*domain.Session, error) {
	return r.list(ctx,
		sessionSelect+` WHERE type_of_session <> $1 ORDER BY type_of_session, name`,
		typeOfSession)
}

func (r *sessionRepository) ListAll(ctx context.Context) ([]*domain.Session, error) {
	return r.list(ctx, sessionSelect+` ORDER BY created_at`)
}

func (r *sessionRepository) GetManyByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	return r.list(ctx, sessionSelect+` WHERE id = ANY($1::uuid[]) ORDER BY name`, pq.Array(ids))
}

func (r *sessionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, lookupErr(err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s := &domain.Session{}
		var speakerID sql.NullString
		var date sql.NullTime
		err := rows.Scan(
			&s.ID, &s.ConferenceID, &s.Name, pq.Array(&s.Highlights), &speakerID,
			&s.Duration, &s.TypeOfSession, &date, &s.StartTime, &s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		s.SpeakerID = speakerID.String
		if date.Valid {
			s.Date = &date.Time
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}

func (r *sessionRepository) scanOne(row *sql.Row) (*domain.Session, error) {
	s := &domain.Session{}
	var speakerID sql.NullString
	var date sql.NullTime
	err := row.Scan(
		&s.ID, &s.ConferenceID, &s.Name, pq.Array(&s.Highlights), &speakerID,
		&s.Duration, &s.TypeOfSession, &date, &s.StartTime, &s.CreatedAt,
	)
	if err != nil {
		return nil, lookupErr(err)
	}
	s.SpeakerID = speakerID.String
	if date.Valid {
		s.Date = &date.Time
	}
	return s, nil
}
