// Package leadsql is the lead log repository shared by the MySQL and
// PostgreSQL adapters. Only the placeholder format differs between them.
package leadsql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/bryanwahyu/ayurconnect/internal/domain/leads"
)

const table = "leads"

var columns = []string{"id", "source", "name", "email", "phone", "created_at"}

type Repository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ leads.Repository = (*Repository)(nil)

func New(db *sql.DB, placeholder sq.PlaceholderFormat) *Repository {
	return &Repository{db: db, sb: sq.StatementBuilder.PlaceholderFormat(placeholder)}
}

func (r *Repository) insert(l leads.Lead) sq.InsertBuilder {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return r.sb.Insert(table).
		Columns(columns...).
		Values(l.ID.String(), string(l.Source), stringOrDash(l.Name), l.Email, stringOrDash(l.Phone), createdAt.UTC())
}

func (r *Repository) recent(limit int) sq.SelectBuilder {
	return r.sb.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
}

// Save appends a lead row.
func (r *Repository) Save(ctx context.Context, l leads.Lead) error {
	if _, err := r.insert(l).RunWith(r.db).ExecContext(ctx); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// Recent returns the newest leads first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]leads.Lead, error) {
	rows, err := r.recent(limit).RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("select leads: %w", err)
	}
	defer rows.Close()

	var out []leads.Lead
	for rows.Next() {
		var (
			l      leads.Lead
			id     string
			source string
		)
		if err := rows.Scan(&id, &source, &l.Name, &l.Email, &l.Phone, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		if l.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("lead id %q: %w", id, err)
		}
		l.Source = leads.Source(source)
		out = append(out, l)
	}
	return out, rows.Err()
}

// Check implements the readiness probe.
func (r *Repository) Check(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
