package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type conferenceRepository struct {
	db DBTX
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{db: db}
}

const conferenceColumns = `id, owner_id, name, description, topics, city,
		start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

func (r *conferenceRepository) Create(ctx context.Context, conf *domain.Conference) error {
	query := `
		INSERT INTO conferences (owner_id, name, description, topics, city,
			start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		conf.OwnerID, conf.Name, conf.Description, pq.Array(conf.Topics), conf.City,
		conf.StartDate, conf.EndDate, conf.Month, conf.MaxAttendees, conf.SeatsAvailable,
		conf.CreatedAt, conf.UpdatedAt,
	).Scan(&conf.ID)
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *conferenceRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *conferenceRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Conference, error) {
	q := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *conferenceRepository) GetManyByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	q := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE id = ANY($1::uuid[])
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return nil, lookupErr(err)
	}
	return r.scanMany(rows)
}

func (r *conferenceRepository) UpdateSeats(ctx context.Context, id string, seatsAvailable int) error {
	q := `UPDATE conferences SET seats_available = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, seatsAvailable)
	if err != nil {
		return lookupErr(err)
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

// Query executes a compiled filter plan. Column names come from the closed
// field enumeration in the query package, so interpolating them is safe;
// values always go through placeholders.
func (r *conferenceRepository) Query(ctx context.Context, plan *query.Plan) ([]*domain.Conference, error) {
	q, args := buildPlanQuery(`SELECT `+conferenceColumns+` FROM conferences`, plan)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *conferenceRepository) ListNearlySoldOutNames(ctx context.Context) ([]string, error) {
	q := `
		SELECT name
		FROM conferences
		WHERE seats_available > 0 AND seats_available <= 5
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// buildPlanQuery renders a Plan into WHERE and ORDER BY clauses. Shared by the
// conference and speaker repositories.
func buildPlanQuery(selectStmt string, plan *query.Plan) (string, []any) {
	var sb strings.Builder
	sb.WriteString(selectStmt)

	var args []any
	if len(plan.Conditions) > 0 {
		clauses := make([]string, 0, len(plan.Conditions))
		for _, c := range plan.Conditions {
			args = append(args, c.Value)
			if c.Field.Repeated {
				clauses = append(clauses, fmt.Sprintf("$%d = ANY(%s)", len(args), c.Field.Column))
			} else {
				clauses = append(clauses, fmt.Sprintf("%s %s $%d", c.Field.Column, c.Op.SQL(), len(args)))
			}
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(clauses, " AND "))
	}
	if len(plan.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(plan.OrderBy, ", "))
	}
	return sb.String(), args
}

func (r *conferenceRepository) scanOne(row *sql.Row) (*domain.Conference, error) {
	c := &domain.Conference{}
	var startDate, endDate sql.NullTime
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Description, pq.Array(&c.Topics), &c.City,
		&startDate, &endDate, &c.Month, &c.MaxAttendees, &c.SeatsAvailable,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, lookupErr(err)
	}
	if startDate.Valid {
		c.StartDate = &startDate.Time
	}
	if endDate.Valid {
		c.EndDate = &endDate.Time
	}
	return c, nil
}

func (r *conferenceRepository) scanMany(rows *sql.Rows) ([]*domain.Conference, error) {
	defer rows.Close()

	var confs []*domain.Conference
	for rows.Next() {
		c := &domain.Conference{}
		var startDate, endDate sql.NullTime
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Name, &c.Description, pq.Array(&c.Topics), &c.City,
			&startDate, &endDate, &c.Month, &c.MaxAttendees, &c.SeatsAvailable,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if startDate.Valid {
			c.StartDate = &startDate.Time
		}
		if endDate.Valid {
			c.EndDate = &endDate.Time
		}
		confs = append(confs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if confs == nil {
		confs = []*domain.Conference{}
	}
	return confs, nil
}
