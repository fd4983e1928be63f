// Package session persists saved CLI sessions so a batch invocation can be
// inspected or resumed later.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a session id does not exist.
var ErrNotFound = errors.New("session not found")

// Session is one saved invocation.
type Session struct {
	ID        string
	CreatedAt time.Time
	Model     string
	TaskType  string
	Prompt    string
	Files     []string
}

// Store is a sqlite-backed session store.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	model      TEXT NOT NULL,
	task_type  TEXT NOT NULL,
	prompt     TEXT NOT NULL,
	files      TEXT NOT NULL
);
`

// Open opens (creating if necessary) the session database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating session db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing session schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save persists a session, assigning an id and timestamp when absent.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	files, err := json.Marshal(sess.Files)
	if err != nil {
		return fmt.Errorf("encoding session files: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (id, created_at, model, task_type, prompt, files)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.CreatedAt.Format(time.RFC3339Nano),
		sess.Model, sess.TaskType, sess.Prompt, string(files),
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", sess.ID, err)
	}
	return nil
}

// Get returns the session with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, model, task_type, prompt, files FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return sess, err
}

// List returns the most recent sessions, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, model, task_type, prompt, files
		 FROM sessions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (*Session, error) {
	var sess Session
	var createdAt, files string
	if err := row.Scan(&sess.ID, &createdAt, &sess.Model, &sess.TaskType, &sess.Prompt, &files); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("decoding session timestamp: %w", err)
	}
	sess.CreatedAt = ts
	if err := json.Unmarshal([]byte(files), &sess.Files); err != nil {
		return nil, fmt.Errorf("decoding session files: %w", err)
	}
	return &sess, nil
}
