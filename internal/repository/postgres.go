package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/exstem-scheduler/internal/model"
)

// table describes how one entity type maps onto its PostgreSQL table.
// Columns lists the mutable columns only; id, active, created_at and
// updated_at are shared by every table.
type table[T any] struct {
	name    string
	columns []string
	values  func(*T) []any
	scan    func(row pgx.Row) (T, error)
}

// PostgresCollection is a Collection backed by a single table. Rows are
// ordered by a BIGSERIAL seq column to preserve insertion order.
type PostgresCollection[T any, P Entity[T]] struct {
	pool *pgxpool.Pool
	t    table[T]

	selectSQL  string
	insertSQL  string
	replaceSQL string
}

func newPostgresCollection[T any, P Entity[T]](pool *pgxpool.Pool, t table[T]) *PostgresCollection[T, P] {
	all := append([]string{"id", "active", "created_at", "updated_at"}, t.columns...)

	placeholders := make([]string, len(all))
	for i := range all {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := make([]string, len(t.columns))
	for i, col := range t.columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(t.columns)+2))

	return &PostgresCollection[T, P]{
		pool:       pool,
		t:          t,
		selectSQL:  fmt.Sprintf("SELECT %s FROM %s", strings.Join(all, ", "), t.name),
		insertSQL:  fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(all, ", "), strings.Join(placeholders, ", ")),
		replaceSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", t.name, strings.Join(sets, ", ")),
	}
}

func (c *PostgresCollection[T, P]) Insert(ctx context.Context, entity T) error {
	meta := P(&entity).Meta()
	args := append([]any{meta.ID, meta.Active, meta.CreatedAt, meta.UpdatedAt}, c.t.values(&entity)...)

	if _, err := c.pool.Exec(ctx, c.insertSQL, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == c.t.name+"_pkey" {
			return ErrDuplicateIdentifier
		}
		return fmt.Errorf("insert into %s: %w", c.t.name, err)
	}
	return nil
}

func (c *PostgresCollection[T, P]) Get(ctx context.Context, id string) (T, error) {
	item, err := c.t.scan(c.pool.QueryRow(ctx, c.selectSQL+" WHERE id = $1", id))
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("select from %s: %w", c.t.name, err)
	}
	return item, nil
}

// List streams rows straight from the cursor; each range issues a new query.
func (c *PostgresCollection[T, P]) List(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		rows, err := c.pool.Query(ctx, c.selectSQL+" ORDER BY seq")
		if err != nil {
			yield(zero, fmt.Errorf("list %s: %w", c.t.name, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			item, err := c.t.scan(rows)
			if err != nil {
				yield(zero, fmt.Errorf("scan %s: %w", c.t.name, err))
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, fmt.Errorf("list %s: %w", c.t.name, err))
		}
	}
}

func (c *PostgresCollection[T, P]) Deactivate(ctx context.Context, id string, at time.Time) error {
	tag, err := c.pool.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET active = FALSE, updated_at = $2 WHERE id = $1", c.t.name),
		id, at,
	)
	if err != nil {
		return fmt.Errorf("deactivate %s: %w", c.t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *PostgresCollection[T, P]) Replace(ctx context.Context, id string, entity T) error {
	args := append([]any{id}, c.t.values(&entity)...)
	args = append(args, P(&entity).Meta().UpdatedAt)

	tag, err := c.pool.Exec(ctx, c.replaceSQL, args...)
	if err != nil {
		return fmt.Errorf("replace %s: %w", c.t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NewPostgresStore returns a Store whose collections live in PostgreSQL.
// The schema is created by the migrations under migrations/.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Courses:  newPostgresCollection[model.Course](pool, courseTable),
		Rooms:    newPostgresCollection[model.Room](pool, roomTable),
		Sections: newPostgresCollection[model.ClassSection](pool, sectionTable),
	}
}

var courseTable = table[model.Course]{
	name:    "courses",
	columns: []string{"name", "program", "description", "credit_hours", "term"},
	values: func(c *model.Course) []any {
		return []any{c.Name, c.Program, c.Description, c.CreditHours, string(c.Term)}
	},
	scan: func(row pgx.Row) (model.Course, error) {
		var c model.Course
		err := row.Scan(&c.ID, &c.Active, &c.CreatedAt, &c.UpdatedAt,
			&c.Name, &c.Program, &c.Description, &c.CreditHours, &c.Term)
		return c, err
	},
}

var roomTable = table[model.Room]{
	name:    "rooms",
	columns: []string{"number", "description", "capacity", "name", "kind"},
	values: func(r *model.Room) []any {
		return []any{r.Number, r.Description, r.Capacity, r.Name, string(r.Kind)}
	},
	scan: func(row pgx.Row) (model.Room, error) {
		var r model.Room
		err := row.Scan(&r.ID, &r.Active, &r.CreatedAt, &r.UpdatedAt,
			&r.Number, &r.Description, &r.Capacity, &r.Name, &r.Kind)
		return r, err
	},
}

var sectionTable = table[model.ClassSection]{
	name:    "class_sections",
	columns: []string{"term", "course_id", "professor", "room_id", "weekday", "schedule_start", "schedule_end", "capacity"},
	values: func(s *model.ClassSection) []any {
		var start, end *string
		if s.Schedule != nil {
			start, end = &s.Schedule.Start, &s.Schedule.End
		}
		return []any{string(s.Term), s.CourseID, s.Professor, s.RoomID, string(s.Weekday), start, end, s.Capacity}
	},
	scan: func(row pgx.Row) (model.ClassSection, error) {
		var (
			s          model.ClassSection
			start, end *string
		)
		err := row.Scan(&s.ID, &s.Active, &s.CreatedAt, &s.UpdatedAt,
			&s.Term, &s.CourseID, &s.Professor, &s.RoomID, &s.Weekday, &start, &end, &s.Capacity)
		if err == nil && start != nil && end != nil {
			s.Schedule = &model.TimeWindow{Start: *start, End: *end}
		}
		return s, err
	},
}
