package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
)

func sessionTestRows(sessions ...*domain.Session) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "conference_id", "name", "highlights", "speaker_id",
		"duration", "type_of_session", "date", "start_time", "created_at",
	})
	for _, s := range sessions {
		var speakerID, date any
		if s.SpeakerID != "" {
			speakerID = s.SpeakerID
		}
		if s.Date != nil {
			date = *s.Date
		}
		rows.AddRow(s.ID, s.ConferenceID, s.Name, textArray(s.Highlights), speakerID,
			s.Duration, s.TypeOfSession, date, s.StartTime, s.CreatedAt)
	}
	return rows
}

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session *domain.Session
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			session: &domain.Session{
				ConferenceID:  "conf-1",
				Name:          "Concurrency Patterns",
				Highlights:    []string{"channels"},
				SpeakerID:     "spk-1",
				Duration:      60,
				TypeOfSession: "workshop",
				StartTime:     900,
				CreatedAt:     now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WithArgs("conf-1", "Concurrency Patterns", pq.Array([]string{"channels"}), "spk-1",
						60, "workshop", nil, 900, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sess-uuid-1"))
			},
			wantID:  "sess-uuid-1",
			wantErr: false,
		},
		{
			name: "no speaker stores null",
			session: &domain.Session{
				ConferenceID: "conf-1",
				Name:         "Keynote",
				CreatedAt:    now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WithArgs("conf-1", "Keynote", pq.Array([]string(nil)), nil,
						0, "", nil, 0, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sess-uuid-2"))
			},
			wantID:  "sess-uuid-2",
			wantErr: false,
		},
		{
			name: "db error",
			session: &domain.Session{
				ConferenceID: "conf-1",
				Name:         "Talk",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSessionRepository(db)
			err = repo.Create(ctx, tt.session)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.session.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, conference_id, name, highlights, speaker_id`).
		WithArgs("sess-missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewSessionRepository(db)
	_, err = repo.GetByID(context.Background(), "sess-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepository_ListByConferenceAndType(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	want := &domain.Session{
		ID:            "sess-1",
		ConferenceID:  "conf-1",
		Name:          "Workshop A",
		Highlights:    []string{"channels"},
		SpeakerID:     "spk-1",
		Duration:      60,
		TypeOfSession: "workshop",
		StartTime:     900,
		CreatedAt:     now,
	}
	mock.ExpectQuery(`WHERE conference_id = \$1 AND type_of_session = \$2 ORDER BY start_time, name`).
		WithArgs("conf-1", "workshop").
		WillReturnRows(sessionTestRows(want))

	repo := NewSessionRepository(db)
	got, err := repo.ListByConferenceAndType(ctx, "conf-1", "workshop")
	require.NoError(t, err)
	require.Equal(t, []*domain.Session{want}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_ListByTypeNot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE type_of_session <> \$1 ORDER BY type_of_session, name`).
		WithArgs("workshop").
		WillReturnRows(sessionTestRows())

	repo := NewSessionRepository(db)
	got, err := repo.ListByTypeNot(context.Background(), "workshop")
	require.NoError(t, err)
	require.Empty(t, got)
	require.NotNil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_ListByMinStartTimeDurationHighlight(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE start_time >= \$1 AND duration = \$2 AND \$3 = ANY\(highlights\)`).
		WithArgs(900, 60, "channels").
		WillReturnRows(sessionTestRows())

	repo := NewSessionRepository(db)
	_, err = repo.ListByMinStartTimeDurationHighlight(context.Background(), 900, 60, "channels")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetManyByIDs(t *testing.T) {
	t.Run("empty short-circuits", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSessionRepository(db)
		got, err := repo.GetManyByIDs(context.Background(), nil)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("casts ids to uuid array", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE id = ANY\(\$1::uuid\[\]\) ORDER BY name`).
			WithArgs(pq.Array([]string{"sess-1", "sess-2"})).
			WillReturnRows(sessionTestRows())

		repo := NewSessionRepository(db)
		_, err = repo.GetManyByIDs(context.Background(), []string{"sess-1", "sess-2"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("id that cannot bind as uuid reads as not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE id = ANY\(\$1::uuid\[\]\) ORDER BY name`).
			WithArgs(pq.Array([]string{"not-a-uuid"})).
			WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

		repo := NewSessionRepository(db)
		_, err = repo.GetManyByIDs(context.Background(), []string{"not-a-uuid"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
