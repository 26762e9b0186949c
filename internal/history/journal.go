// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Journal persists submitted lines across sessions.
type Journal interface {
	// Record stores one entry of the current session
	Record(ctx context.Context, e Entry, cwd string) error

	// Recent returns up to limit lines from all sessions, oldest first
	Recent(ctx context.Context, limit int) ([]string, error)

	Close() error
}

// NopJournal discards everything. It is used when persistence is disabled.
type NopJournal struct{}

func (NopJournal) Record(context.Context, Entry, string) error { return nil }

func (NopJournal) Recent(context.Context, int) ([]string, error) { return nil, nil }

func (NopJournal) Close() error { return nil }

// =============================================================================
// SQLITE JOURNAL
// =============================================================================

// ErrJournalClosed is returned after Close.
var ErrJournalClosed = errors.New("history journal is closed")

// SQLiteJournal stores lines in a SQLite database. Every process gets its own
// session id so lines from concurrent shells stay distinguishable.
type SQLiteJournal struct {
	db        *sql.DB
	sessionID string
}

// OpenSQLiteJournal opens (creating if needed) the journal at path.
func OpenSQLiteJournal(path string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=2000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &SQLiteJournal{db: db, sessionID: uuid.NewString()}, nil
}

// SessionID identifies this process's lines.
func (j *SQLiteJournal) SessionID() string {
	return j.sessionID
}

// Record stores one entry.
func (j *SQLiteJournal) Record(ctx context.Context, e Entry, cwd string) error {
	if j.db == nil {
		return ErrJournalClosed
	}
	_, err := j.db.ExecContext(ctx,
		"INSERT INTO lines (session_id, seq, text, cwd, created_at) VALUES (?, ?, ?, ?, ?)",
		j.sessionID, e.Index, e.Text, cwd, e.Time.Unix())
	if err != nil {
		return fmt.Errorf("record history line: %w", err)
	}
	return nil
}

// Recent returns up to limit lines, oldest first.
func (j *SQLiteJournal) Recent(ctx context.Context, limit int) ([]string, error) {
	if j.db == nil {
		return nil, ErrJournalClosed
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := j.db.QueryContext(ctx,
		"SELECT text FROM (SELECT id, text FROM lines ORDER BY id DESC LIMIT ?) ORDER BY id ASC", limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
		lines = append(lines, text)
	}
	return lines, rows.Err()
}

// Close closes the database.
func (j *SQLiteJournal) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
