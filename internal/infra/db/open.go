// Package db picks the lead log adapter for the configured driver.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/bryanwahyu/ayurconnect/internal/infra/db/leadsql"
	"github.com/bryanwahyu/ayurconnect/internal/infra/db/mysql"
	"github.com/bryanwahyu/ayurconnect/internal/infra/db/postgres"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Conn is an open lead log database.
type Conn struct {
	*sql.DB
	Driver string
}

func Open(ctx context.Context, driver, dsn string) (*Conn, error) {
	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverMySQL:
		db, err = mysql.Connect(ctx, dsn)
	case DriverPostgres:
		db, err = postgres.Connect(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connect: %w", driver, err)
	}
	return &Conn{DB: db, Driver: driver}, nil
}

// Migrate applies pending migrations for the connection's dialect.
func (c *Conn) Migrate(ctx context.Context) ([]*goose.MigrationResult, error) {
	if c.Driver == DriverPostgres {
		return postgres.Migrate(ctx, c.DB)
	}
	return mysql.Migrate(ctx, c.DB)
}

func (c *Conn) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	if c.Driver == DriverPostgres {
		return postgres.Status(ctx, c.DB)
	}
	return mysql.Status(ctx, c.DB)
}

func (c *Conn) Leads() *leadsql.Repository {
	if c.Driver == DriverPostgres {
		return postgres.NewLeadRepository(c.DB)
	}
	return mysql.NewLeadRepository(c.DB)
}
