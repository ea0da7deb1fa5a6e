package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/deppfellow/produce-api/internal/config"
	"github.com/rs/zerolog"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// DefaultSQLitePath is used when no path is configured, relative to the
// working directory.
var DefaultSQLitePath = filepath.Join("data", "db.sqlite")

const sqliteFileParams = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// SQLite is the Database adapter backed by modernc.org/sqlite.
type SQLite struct {
	db   *sql.DB
	path string
	log  *zerolog.Logger
	stmt statementLogger
}

var _ Database = (*SQLite)(nil)

// ResolveSQLitePath returns the file the sqlite adapter will open, creating
// the parent directory when needed. MemoryPath is returned untouched.
func ResolveSQLitePath(path string) (string, error) {
	if path == config.MemoryPath {
		return path, nil
	}

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: resolve working directory: %w", ErrStorageUnavailable, err)
		}
		path = filepath.Join(wd, DefaultSQLitePath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: create database directory: %w", ErrStorageUnavailable, err)
	}

	return path, nil
}

// OpenSQLite opens (or creates) the database file at path.
//
// An in-memory database lives inside a single connection, so the pool is
// pinned to one connection to keep every statement on the same data.
func OpenSQLite(ctx context.Context, path string, logger *zerolog.Logger, slowQueryThreshold time.Duration) (*SQLite, error) {
	resolved, err := ResolveSQLitePath(path)
	if err != nil {
		return nil, err
	}

	dsn := resolved
	if resolved != config.MemoryPath {
		dsn += sqliteFileParams
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %q: %w", ErrStorageUnavailable, resolved, err)
	}

	if resolved == config.MemoryPath {
		db.SetMaxOpenConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite %q: %w", ErrStorageUnavailable, resolved, err)
	}

	if logger != nil {
		logger.Debug().Str("path", resolved).Msg("opened sqlite database")
	}

	return &SQLite{
		db:   db,
		path: resolved,
		log:  logger,
		stmt: statementLogger{
			log:                logger,
			driver:             config.DriverSQLite,
			slowQueryThreshold: slowQueryThreshold,
		},
	}, nil
}

// Path is the resolved database file, or MemoryPath.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	start := time.Now()
	res, err := s.db.ExecContext(ctx, query, args...)
	s.stmt.trace(query, start, err)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLite) QueryRow(ctx context.Context, query string, args ...any) (Row, error) {
	rows, err := s.query(ctx, query, 1, args...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (s *SQLite) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	return s.query(ctx, query, -1, args...)
}

// query reads at most limit rows; a negative limit reads them all.
func (s *SQLite) query(ctx context.Context, query string, limit int, args ...any) (out []Row, err error) {
	start := time.Now()
	defer func() { s.stmt.trace(query, start, err) }()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out = make([]Row, 0)
	for rows.Next() {
		if limit >= 0 && len(out) == limit {
			break
		}

		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			// The driver may reuse byte buffers between rows.
			if b, ok := values[i].([]byte); ok {
				values[i] = append([]byte(nil), b...)
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) ResetTable(ctx context.Context, table string) error {
	if err := checkTableName(table); err != nil {
		return err
	}

	if _, err := s.Exec(ctx, "DELETE FROM "+table); err != nil {
		return err
	}

	// AUTOINCREMENT keeps its high-water mark in sqlite_sequence.
	_, err := s.Exec(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table)
	return err
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	if s.log != nil {
		s.log.Info().Str("path", s.path).Msg("closing sqlite database")
	}
	return s.db.Close()
}

func (s *SQLite) Driver() string {
	return config.DriverSQLite
}

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// checkTableName guards the statements that cannot bind a table name.
func checkTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}
