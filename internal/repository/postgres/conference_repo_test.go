package postgres

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

// textArray renders a Postgres text[] literal for mock row values. Test
// values carry no characters that need quoting.
func textArray(vals []string) string {
	return "{" + strings.Join(vals, ",") + "}"
}

func conferenceTestRows(confs ...*domain.Conference) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "name", "description", "topics", "city",
		"start_date", "end_date", "month", "max_attendees", "seats_available",
		"created_at", "updated_at",
	})
	for _, c := range confs {
		var start, end any
		if c.StartDate != nil {
			start = *c.StartDate
		}
		if c.EndDate != nil {
			end = *c.EndDate
		}
		rows.AddRow(c.ID, c.OwnerID, c.Name, c.Description, textArray(c.Topics), c.City,
			start, end, c.Month, c.MaxAttendees, c.SeatsAvailable, c.CreatedAt, c.UpdatedAt)
	}
	return rows
}

func TestConferenceRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		conf    *domain.Conference
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			conf: &domain.Conference{
				OwnerID:        "user-1",
				Name:           "GopherCon",
				Topics:         []string{"Go", "Cloud"},
				City:           "Denver",
				Month:          7,
				MaxAttendees:   100,
				SeatsAvailable: 100,
				CreatedAt:      now,
				UpdatedAt:      now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO conferences`).
					WithArgs("user-1", "GopherCon", "", pq.Array([]string{"Go", "Cloud"}), "Denver",
						nil, nil, 7, 100, 100, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("conf-uuid-1"))
			},
			wantID:  "conf-uuid-1",
			wantErr: false,
		},
		{
			name: "db error",
			conf: &domain.Conference{
				OwnerID: "user-1",
				Name:    "GopherCon",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO conferences`).
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
			repo := NewConferenceRepository(db)
			err = repo.Create(ctx, tt.conf)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.conf.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConferenceRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		want := &domain.Conference{
			ID:             "conf-1",
			OwnerID:        "user-1",
			Name:           "GopherCon",
			Topics:         []string{"Go"},
			City:           "Denver",
			Month:          7,
			MaxAttendees:   100,
			SeatsAvailable: 42,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		mock.ExpectQuery(`SELECT id, owner_id, name, description, topics, city`).
			WithArgs("conf-1").
			WillReturnRows(conferenceTestRows(want))

		repo := NewConferenceRepository(db)
		got, err := repo.GetByID(ctx, "conf-1")
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, owner_id, name, description, topics, city`).
			WithArgs("conf-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewConferenceRepository(db)
		_, err = repo.GetByID(ctx, "conf-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("id that cannot bind as uuid reads as not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, owner_id, name, description, topics, city`).
			WithArgs("not-a-uuid").
			WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

		repo := NewConferenceRepository(db)
		_, err = repo.GetByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestConferenceRepository_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("equality and membership conditions", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		plan := &query.Plan{
			Conditions: []query.Condition{
				{Field: query.Field{Column: "city"}, Op: query.OpEq, Value: "London"},
				{Field: query.Field{Column: "topics", Repeated: true}, Op: query.OpEq, Value: "Go"},
			},
			OrderBy: []string{"name"},
		}
		mock.ExpectQuery(`WHERE city = \$1 AND \$2 = ANY\(topics\) ORDER BY name`).
			WithArgs("London", "Go").
			WillReturnRows(conferenceTestRows())

		repo := NewConferenceRepository(db)
		got, err := repo.Query(ctx, plan)
		require.NoError(t, err)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inequality orders on its column first", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		plan := &query.Plan{
			Conditions: []query.Condition{
				{Field: query.Field{Column: "max_attendees"}, Op: query.OpGt, Value: 10},
			},
			OrderBy: []string{"max_attendees", "name"},
		}
		mock.ExpectQuery(`WHERE max_attendees > \$1 ORDER BY max_attendees, name`).
			WithArgs(10).
			WillReturnRows(conferenceTestRows())

		repo := NewConferenceRepository(db)
		_, err = repo.Query(ctx, plan)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConferenceRepository_UpdateSeats(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE conferences SET seats_available`).
			WithArgs("conf-1", 41).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewConferenceRepository(db)
		require.NoError(t, repo.UpdateSeats(ctx, "conf-1", 41))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE conferences SET seats_available`).
			WithArgs("conf-missing", 41).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewConferenceRepository(db)
		err = repo.UpdateSeats(ctx, "conf-missing", 41)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestConferenceRepository_GetManyByIDs_Empty(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewConferenceRepository(db)
	got, err := repo.GetManyByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestConferenceRepository_ListNearlySoldOutNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE seats_available > 0 AND seats_available <= 5`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("GopherCon").AddRow("dotGo"))

	repo := NewConferenceRepository(db)
	names, err := repo.ListNearlySoldOutNames(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"GopherCon", "dotGo"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}
