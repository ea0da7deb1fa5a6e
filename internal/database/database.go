// Package database contains the logic for opening the relational store
// behind the service.
//
// Two drivers are supported and selected once at startup from config:
//   - sqlite: modernc.org/sqlite through database/sql, file-backed or in memory
//   - postgres: a pgx connection pool (pgxpool) with optional tracing
//
// Both are exposed through the Database interface so callers never see the
// driver's call convention or its row representation. Rows always leave this
// package keyed by column name.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/produce-api/internal/config"
	loggerConfig "github.com/deppfellow/produce-api/internal/logger"
	"github.com/rs/zerolog"
)

// DatabasePingTimeout is the number of seconds to wait for the store to
// answer at startup before considering it unreachable.
const DatabasePingTimeout = 10

// ErrStorageUnavailable is returned when the store cannot be opened, reached,
// or bootstrapped.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Row is one result row keyed by column name.
type Row map[string]any

// Database is the storage-access contract shared by every driver adapter.
//
// Queries use `?` placeholders regardless of the driver.
type Database interface {
	// Exec runs a mutating statement and reports the number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)

	// QueryRow fetches zero or one row. A nil Row means no row matched.
	QueryRow(ctx context.Context, query string, args ...any) (Row, error)

	// Query fetches every row produced by the statement.
	Query(ctx context.Context, query string, args ...any) ([]Row, error)

	// ResetTable deletes every row of table and resets its id sequence.
	ResetTable(ctx context.Context, table string) error

	Ping(ctx context.Context) error
	Close() error

	// Driver names the adapter, one of the config.Driver* constants.
	Driver() string
}

// New opens the store selected by cfg.Database.Driver and makes sure the
// schema exists.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()

	var (
		db  Database
		err error
	)

	slowQueryThreshold := cfg.Observability.Logging.SlowQueryThreshold

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = OpenPostgres(ctx, cfg, logger, loggerService)
	case config.DriverSQLite:
		db, err = OpenSQLite(ctx, cfg.Database.Path, logger, slowQueryThreshold)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrStorageUnavailable, cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info().Str("driver", db.Driver()).Msg("connected to the database")

	return db, nil
}

// statementLogger logs every statement at debug level and slow ones at warn.
type statementLogger struct {
	log                *zerolog.Logger
	driver             string
	slowQueryThreshold time.Duration
}

func (l statementLogger) trace(query string, start time.Time, err error) {
	if l.log == nil {
		return
	}

	elapsed := time.Since(start)

	var e *zerolog.Event
	switch {
	case l.slowQueryThreshold > 0 && elapsed >= l.slowQueryThreshold:
		e = l.log.Warn().Bool("slow", true)
	default:
		e = l.log.Debug()
	}

	if err != nil {
		e = e.Err(err)
	}

	e.Str("driver", l.driver).
		Str("sql", query).
		Dur("duration", elapsed).
		Msg("sql statement")
}
