package dbcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aucos/health-check/pkg/check"
)

// LivenessQuery is issued once the connection is open.
const LivenessQuery = "SELECT 1"

// Conn is the subset of *pgx.Conn used by the check.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

// Connector opens a single database connection.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}

// PgxConnector connects with pgx using a connection URL.
type PgxConnector struct {
	DSN            string
	ConnectTimeout time.Duration
}

// Connect opens a new connection. It does not use a pool.
func (c *PgxConnector) Connect(ctx context.Context) (Conn, error) {
	cfg, err := pgx.ParseConfig(c.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if c.ConnectTimeout > 0 {
		cfg.ConnectTimeout = c.ConnectTimeout
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Check verifies the primary database accepts a trivial query.
type Check struct {
	Connection string    // connection name, e.g. "pgsql"
	Database   string    // database name echoed on success
	Connector  Connector // injected for testing
}

// Run executes the database liveness check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: "database:" + c.Connection,
	}

	conn, err := c.Connector.Connect(ctx)
	if err != nil {
		return result.Fail("Main database connection failed:", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	if _, err := conn.Exec(ctx, LivenessQuery); err != nil {
		return result.Fail("Main database connection failed:", err)
	}

	return result.Passf("Main database connection successful (Database: %s).", c.Database)
}
