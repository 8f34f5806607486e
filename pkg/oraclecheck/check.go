// Package oraclecheck probes the optional secondary Oracle database.
package oraclecheck

import (
	"context"
	"database/sql"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/aucos/health-check/pkg/check"
	"github.com/aucos/health-check/pkg/config"
)

// LivenessQuery is the Oracle dialect of SELECT 1.
const LivenessQuery = "SELECT 1 FROM DUAL"

// SkipMessage is printed instead of running the check when it is not configured.
const SkipMessage = "Skipping Oracle database connection check: Configuration not found."

// DB is the subset of *sql.DB used by the check.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Close() error
}

// Opener opens a database handle from a connection URL.
type Opener interface {
	Open(dsn string) (DB, error)
}

// GoOraOpener opens handles with the go-ora driver.
type GoOraOpener struct{}

// Open returns a lazily connecting handle; errors surface on first use.
func (o *GoOraOpener) Open(dsn string) (DB, error) {
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// DSN builds a go-ora connection URL.
func DSN(cfg config.SecondaryConfig) string {
	return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, nil)
}

// Check verifies the Oracle database accepts a trivial query.
type Check struct {
	Config config.SecondaryConfig
	Opener Opener // injected for testing
}

// Skip reports whether the check should not run at all.
func (c *Check) Skip() (string, bool) {
	if c.Config.Configured() {
		return "", false
	}
	return SkipMessage, true
}

// Run executes the Oracle liveness check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: "database:oracle",
	}

	if !c.Config.Configured() {
		return result.Skip(SkipMessage)
	}

	db, err := c.Opener.Open(DSN(c.Config))
	if err != nil {
		return result.Fail("Oracle database connection failed:", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, LivenessQuery); err != nil {
		return result.Fail("Oracle database connection failed:", err)
	}

	return result.Passf("Oracle database connection successful (Database: %s).", c.Config.Database)
}
