package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/produce-api/internal/config"
)

// ProduceTable is the only table owned by the service.
const ProduceTable = "produce"

// Table bootstrap is idempotent: it runs on every open and never touches
// existing rows.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS produce (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('fruit', 'vegetable')),
	price_per_kg REAL NOT NULL CHECK (price_per_kg >= 0)
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS produce (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('fruit', 'vegetable')),
	price_per_kg DOUBLE PRECISION NOT NULL CHECK (price_per_kg >= 0)
)`

// EnsureSchema creates the produce table if it does not exist yet.
func EnsureSchema(ctx context.Context, db Database) error {
	var ddl string
	switch db.Driver() {
	case config.DriverPostgres:
		ddl = postgresSchema
	default:
		ddl = sqliteSchema
	}

	if _, err := db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("%w: ensure %s table: %w", ErrStorageUnavailable, ProduceTable, err)
	}
	return nil
}
