package model

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const SqliteSchema = `
CREATE TABLE IF NOT EXISTS query_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id VARCHAR NOT NULL,
	command VARCHAR NOT NULL,
	terms VARCHAR NOT NULL DEFAULT '',
	result_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_query_history_created_at ON query_history (created_at);
`

const PostgresSchema = `
CREATE TABLE IF NOT EXISTS query_history (
	id SERIAL PRIMARY KEY,
	session_id VARCHAR(64) NOT NULL,
	command VARCHAR(64) NOT NULL,
	terms TEXT NOT NULL DEFAULT '',
	result_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_query_history_created_at ON query_history (created_at);
`

// CreateTables creates the history schema for the connected driver.
func CreateTables(db *sqlx.DB) error {
	schema := SqliteSchema
	if db.DriverName() == "postgres" {
		schema = PostgresSchema
	}
	_, err := db.Exec(schema)
	return err
}
