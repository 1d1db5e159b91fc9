// Package store provides the durable SQLite-backed record of tasks and notes.
//
// The store is the single source of truth. It owns identity assignment and
// timestamps; the API façade and clients only ever echo what the store
// returns. The database runs embedded (ncruces/go-sqlite3) with WAL mode,
// opened once per process and held for the process lifetime.
//
// Ordering contract: rows within a date are returned oldest-first
// (created_at ascending, id as tiebreak for same-second inserts). The
// aggregate read orders by (date, created_at, id) ascending. Both listings
// apply the same direction; no call site overrides it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/jwhitt/daybook/internal/record"
)

// ErrNotFound is returned when an operation references an identity that does
// not exist. Deletes are idempotent and never return it.
var ErrNotFound = errors.New("record not found")

// Store wraps the SQLite connection with task and note operations.
type Store struct {
	conn *sql.DB
	path string

	initOnce sync.Once
	initErr  error
}

// Open creates a new store at the specified path.
//
// The parent directory is created if needed. The connection is configured
// for embedded use: WAL journaling for concurrent reads, a 5 second busy
// timeout, and foreign keys enabled.
//
// The caller MUST call Close() when done, and Init() before the first
// read or write.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s", path)
	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{
		conn: conn,
		path: path,
	}

	if _, err := s.conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := s.conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := s.conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
// Performs a WAL checkpoint to ensure all changes are persisted.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}

	if _, err := s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to checkpoint WAL: %v\n", err)
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.conn = nil
	return nil
}

// Init creates the database schema if it doesn't exist.
//
// The schema is two tables, tasks and notes, each indexed by date. The
// statements are idempotent, and the whole call is additionally guarded by
// a once flag so repeated calls skip the existence checks entirely -- the
// hot path never re-checks the schema.
func (s *Store) Init() error {
	return s.InitContext(context.Background())
}

// InitContext creates the database schema with context support.
func (s *Store) InitContext(ctx context.Context) error {
	s.initOnce.Do(func() {
		// AUTOINCREMENT keeps identities monotonic and never reused
		// after deletion, even for the max rowid.
		schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			date TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			date TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);
		CREATE INDEX IF NOT EXISTS idx_notes_date ON notes(date);
		`

		if _, err := s.conn.ExecContext(ctx, schema); err != nil {
			s.initErr = fmt.Errorf("failed to initialize schema: %w", err)
		}
	})
	return s.initErr
}

// ListTasks returns all tasks whose date equals the given canonical date,
// oldest first. Returns an empty slice (not an error) when the date has no
// tasks.
func (s *Store) ListTasks(ctx context.Context, date string) ([]record.Task, error) {
	query := `
	SELECT id, text, completed, date, created_at, updated_at
	FROM tasks
	WHERE date = ?
	ORDER BY created_at ASC, id ASC
	`

	rows, err := s.conn.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// CreateTask inserts a new task for the given date and returns the full
// canonical row, including the assigned identity and timestamps, so the
// caller can merge it locally without a follow-up read.
//
// Fails before touching the database if text is empty or date is not
// canonical.
func (s *Store) CreateTask(ctx context.Context, text, date string) (record.Task, error) {
	if err := record.ValidateNew(text, date); err != nil {
		return record.Task{}, fmt.Errorf("invalid task: %w", err)
	}

	now := time.Now().UTC()
	ts := now.Format(time.RFC3339)

	query := `
	INSERT INTO tasks (text, completed, date, created_at, updated_at)
	VALUES (?, 0, ?, ?, ?)
	`

	res, err := s.conn.ExecContext(ctx, query, text, date, ts, ts)
	if err != nil {
		return record.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return record.Task{}, fmt.Errorf("failed to read inserted task id: %w", err)
	}

	return record.Task{
		ID:        id,
		Text:      text,
		Completed: false,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetTaskCompletion flips the completed flag on a task and refreshes its
// updated_at timestamp. Text and date are left untouched.
//
// Returns ErrNotFound if the identity does not exist, so a client that
// believes the task exists learns its cache has drifted.
func (s *Store) SetTaskCompletion(ctx context.Context, id int64, completed bool) error {
	query := `
	UPDATE tasks SET completed = ?, updated_at = ?
	WHERE id = ?
	`

	res, err := s.conn.ExecContext(ctx, query, boolToInt(completed), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for task %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	return nil
}

// DeleteTask removes a task by identity, regardless of date.
// Returns nil if the task doesn't exist (idempotent).
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	if _, err := s.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}

// ListNotes returns all notes for the given canonical date, oldest first.
func (s *Store) ListNotes(ctx context.Context, date string) ([]record.Note, error) {
	query := `
	SELECT id, text, date, created_at, updated_at
	FROM notes
	WHERE date = ?
	ORDER BY created_at ASC, id ASC
	`

	rows, err := s.conn.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// CreateNote inserts a new note for the given date and returns the full
// canonical row.
func (s *Store) CreateNote(ctx context.Context, text, date string) (record.Note, error) {
	if err := record.ValidateNew(text, date); err != nil {
		return record.Note{}, fmt.Errorf("invalid note: %w", err)
	}

	now := time.Now().UTC()
	ts := now.Format(time.RFC3339)

	query := `
	INSERT INTO notes (text, date, created_at, updated_at)
	VALUES (?, ?, ?, ?)
	`

	res, err := s.conn.ExecContext(ctx, query, text, date, ts, ts)
	if err != nil {
		return record.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return record.Note{}, fmt.Errorf("failed to read inserted note id: %w", err)
	}

	return record.Note{
		ID:        id,
		Text:      text,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DeleteNote removes a note by identity, regardless of date.
// Returns nil if the note doesn't exist (idempotent).
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	query := `DELETE FROM notes WHERE id = ?`
	if _, err := s.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return nil
}

// ListAll returns every task and note across all dates, each ordered by
// (date, created_at, id) ascending.
//
// The two reads are independent statements with no cross-consistency
// guarantee between the result sets; this is a reporting view, not a
// transactional join.
func (s *Store) ListAll(ctx context.Context) (record.Records, error) {
	taskQuery := `
	SELECT id, text, completed, date, created_at, updated_at
	FROM tasks
	ORDER BY date ASC, created_at ASC, id ASC
	`

	rows, err := s.conn.QueryContext(ctx, taskQuery)
	if err != nil {
		return record.Records{}, fmt.Errorf("failed to query all tasks: %w", err)
	}
	tasks, err := scanTasks(rows)
	rows.Close()
	if err != nil {
		return record.Records{}, err
	}

	noteQuery := `
	SELECT id, text, date, created_at, updated_at
	FROM notes
	ORDER BY date ASC, created_at ASC, id ASC
	`

	rows, err = s.conn.QueryContext(ctx, noteQuery)
	if err != nil {
		return record.Records{}, fmt.Errorf("failed to query all notes: %w", err)
	}
	notes, err := scanNotes(rows)
	rows.Close()
	if err != nil {
		return record.Records{}, err
	}

	return record.Records{Tasks: tasks, Notes: notes}, nil
}

// scanTasks is a helper function to scan multiple tasks from query results.
func scanTasks(rows *sql.Rows) ([]record.Task, error) {
	tasks := []record.Task{}

	for rows.Next() {
		var task record.Task
		var completed int
		var createdAt, updatedAt string

		err := rows.Scan(
			&task.ID,
			&task.Text,
			&completed,
			&task.Date,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		task.Completed = completed != 0

		task.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse task %d created_at: %w", task.ID, err)
		}
		task.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse task %d updated_at: %w", task.ID, err)
		}

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// scanNotes is a helper function to scan multiple notes from query results.
func scanNotes(rows *sql.Rows) ([]record.Note, error) {
	notes := []record.Note{}

	for rows.Next() {
		var note record.Note
		var createdAt, updatedAt string

		err := rows.Scan(
			&note.ID,
			&note.Text,
			&note.Date,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}

		note.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse note %d created_at: %w", note.ID, err)
		}
		note.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse note %d updated_at: %w", note.ID, err)
		}

		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
