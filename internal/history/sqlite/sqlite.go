// Package sqlite implements the history repository on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ambicuity/nettools/internal/history"
	"github.com/ambicuity/nettools/internal/portscan"
)

type Repository struct {
	db *sql.DB
}

// NewRepository opens (and if needed initializes) the scan history database
// at dbPath.
func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scans (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			host          TEXT NOT NULL,
			port          INTEGER NOT NULL,
			open          INTEGER NOT NULL,
			response_time REAL NOT NULL,
			error         TEXT,
			scanned_at    DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scans_host_time ON scans (host, scanned_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &Repository{db: db}, nil
}

// SaveReport writes one row per port result, all stamped with the same
// scan time.
func (r *Repository) SaveReport(ctx context.Context, report *portscan.Report) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scans (host, port, open, response_time, error, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	scannedAt := time.Now().UTC()
	for _, p := range report.Ports {
		errText := ""
		if p.Err != nil {
			errText = p.Err.Error()
		}
		if _, err := stmt.ExecContext(ctx, report.Host, p.Port, p.Open, p.ResponseTime, errText, scannedAt); err != nil {
			return fmt.Errorf("insert scan row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RecentScans returns the newest records, optionally filtered by host.
func (r *Repository) RecentScans(ctx context.Context, host string, limit int) ([]history.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, host, port, open, response_time, error, scanned_at
		FROM scans
	`
	args := []interface{}{}
	if host != "" {
		query += " WHERE host = ?"
		args = append(args, host)
	}
	query += " ORDER BY scanned_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		var rec history.Record
		var errText sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Host, &rec.Port, &rec.Open, &rec.ResponseTime, &errText, &rec.ScannedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.Error = errText.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) Close() error {
	return r.db.Close()
}
