package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"

	"github.com/bryanwahyu/ayurconnect/internal/infra/db/leadsql"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB) ([]*goose.MigrationResult, error) {
	p, err := newProvider(db)
	if err != nil {
		return nil, err
	}
	return p.Up(ctx)
}

// Status lists applied and pending migrations.
func Status(ctx context.Context, db *sql.DB) ([]*goose.MigrationStatus, error) {
	p, err := newProvider(db)
	if err != nil {
		return nil, err
	}
	return p.Status(ctx)
}

func newProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return p, nil
}

// NewLeadRepository returns the lead log using $n placeholders.
func NewLeadRepository(db *sql.DB) *leadsql.Repository {
	return leadsql.New(db, sq.Dollar)
}
