// Package reportcache provides SQLite-backed persistence for assembled
// replay reports, keyed by replay_id (the source file's SHA-256), so a
// CLI invocation can skip re-running the pipeline for a replay it has
// already processed.
package reportcache

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/rlcoach/replay-analysis/internal/reportbuild"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a sql.DB for the report cache.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies the
// schema. The schema is a set of CREATE ... IF NOT EXISTS statements, so
// existing tables are left as they are; no column migrations are applied.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open report cache: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply report cache schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Put stores r, replacing any prior cached report for the same replay_id.
func (db *DB) Put(r *reportbuild.Report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO reports (replay_id, source_file, schema_version, generated_at_utc, report_json)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(replay_id) DO UPDATE SET
			source_file = excluded.source_file,
			schema_version = excluded.schema_version,
			generated_at_utc = excluded.generated_at_utc,
			report_json = excluded.report_json`,
		r.ReplayID, r.SourceFile, r.SchemaVersion, r.GeneratedAtUTC, string(body),
	)
	if err != nil {
		return fmt.Errorf("upsert report: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM warnings WHERE replay_id = ?`, r.ReplayID); err != nil {
		return fmt.Errorf("clear warnings: %w", err)
	}
	for _, w := range r.Quality.Warnings {
		if _, err := tx.Exec(`INSERT INTO warnings (replay_id, code) VALUES (?, ?)`, r.ReplayID, w); err != nil {
			return fmt.Errorf("insert warning: %w", err)
		}
	}
	return tx.Commit()
}

// Get fetches a previously cached report by replay_id. It returns
// (nil, nil) on a cache miss.
func (db *DB) Get(replayID string) (*reportbuild.Report, error) {
	var body string
	err := db.conn.QueryRow(`SELECT report_json FROM reports WHERE replay_id = ?`, replayID).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	var r reportbuild.Report
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("unmarshal cached report: %w", err)
	}
	return &r, nil
}

// List returns the replay_id of every cached report, most recently
// generated first.
func (db *DB) List() ([]string, error) {
	rows, err := db.conn.Query(`SELECT replay_id FROM reports ORDER BY generated_at_utc DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan replay_id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes a cached report and its warnings.
func (db *DB) Delete(replayID string) error {
	_, err := db.conn.Exec(`DELETE FROM reports WHERE replay_id = ?`, replayID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}
