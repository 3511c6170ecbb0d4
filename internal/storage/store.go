// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/doctalk/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when a message ID is not in the store.
	ErrNotFound = errors.New("message not found")

	// ErrNilMessage is returned by Append for a nil message.
	ErrNilMessage = errors.New("message is nil")
)

// =============================================================================
// HISTORY STORE
// =============================================================================

// HistoryStore is the SQLite-backed transcript. It is safe for concurrent use.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the transcript database at path.
// ":memory:" gives a private in-memory store.
func Open(path string) (*HistoryStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time; one connection also keeps
	// ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
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

	if path != ":memory:" {
		if err := os.Chmod(path, 0600); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not restrict history database permissions")
		}
	}

	return &HistoryStore{db: db, path: path}, nil
}

// Path returns the database location.
func (s *HistoryStore) Path() string {
	return s.path
}

// Close closes the database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// statusRank orders statuses in SQL the way model.Status does.
const statusRank = `CASE %s WHEN 'sent' THEN 1 WHEN 'delivered' THEN 2 WHEN 'read' THEN 3 ELSE 0 END`

// Append stores msg. Appending an ID that already exists overwrites its
// content and keeps its original position; the stored status only moves
// forward.
func (s *HistoryStore) Append(msg *model.Message) error {
	if msg == nil {
		return ErrNilMessage
	}
	_, err := s.db.Exec(`
		INSERT INTO messages (id, role, text, image, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			image = excluded.image,
			status = CASE WHEN `+fmt.Sprintf(statusRank, "excluded.status")+` > `+fmt.Sprintf(statusRank, "messages.status")+`
				THEN excluded.status ELSE messages.status END`,
		msg.ID, string(msg.Role), msg.Text, msg.Image, string(msg.Status), msg.Timestamp.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// UpdateStatus advances the stored status of message id. Transitions that
// would move a status backwards, or touch an assistant message, are
// ignored. It reports whether the row changed.
func (s *HistoryStore) UpdateStatus(id string, status model.Status) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var role, current string
	err = tx.QueryRow("SELECT role, status FROM messages WHERE id = ?", id).Scan(&role, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return false, fmt.Errorf("failed to read message: %w", err)
	}

	r, _ := model.ParseRole(role)
	msg := &model.Message{ID: id, Role: r, Status: model.Status(current)}
	if !msg.Advance(status) {
		return false, nil
	}

	if _, err := tx.Exec("UPDATE messages SET status = ? WHERE id = ?", string(msg.Status), id); err != nil {
		return false, fmt.Errorf("failed to update status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	return true, nil
}

// Clear deletes every message and returns how many were removed.
func (s *HistoryStore) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM messages")
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed messages: %w", err)
	}
	return n, nil
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// List returns the most recent limit messages in chronological order.
// limit <= 0 returns everything.
func (s *HistoryStore) List(limit int) ([]*model.Message, error) {
	query := `SELECT id, role, text, image, status, created_at FROM messages ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*model.Message
	for rows.Next() {
		var (
			m       model.Message
			role    string
			status  string
			created int64
		)
		if err := rows.Scan(&m.ID, &role, &m.Text, &m.Image, &status, &created); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		r, ok := model.ParseRole(role)
		if !ok {
			log.Warn().Str("id", m.ID).Str("role", role).Msg("skipping stored message with unknown role")
			continue
		}
		m.Role = r
		m.Status = model.Status(status)
		m.Timestamp = time.Unix(0, created)
		msgs = append(msgs, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	// Reverse to chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// Count returns the number of stored messages.
func (s *HistoryStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}
