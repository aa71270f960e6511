package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one archived briefing run.
type Entry struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Date      string    `json:"date"`
	Summaries int       `json:"summaries"`
	Valid     bool      `json:"valid"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps a history of generated reports in SQLite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL,
	date       TEXT NOT NULL,
	summaries  INTEGER NOT NULL,
	valid      INTEGER NOT NULL,
	content    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_date ON reports(date);
`

// Open opens (creating if needed) the archive database at path.
// Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records one generated report.
func (s *Store) Save(ctx context.Context, runID string, date time.Time, summaries int, valid bool, content string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (run_id, date, summaries, valid, content, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, date.Format("2006-01-02"), summaries, boolToInt(valid), content, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to archive report: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent entries, newest first, without content.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, date, summaries, valid, created_at FROM reports ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var valid int
		var created string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Date, &e.Summaries, &valid, &created); err != nil {
			return nil, err
		}
		e.Valid = valid != 0
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns a single archived report including its content.
func (s *Store) Get(ctx context.Context, id int64) (Entry, error) {
	var e Entry
	var valid int
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, run_id, date, summaries, valid, content, created_at FROM reports WHERE id = ?`, id).
		Scan(&e.ID, &e.RunID, &e.Date, &e.Summaries, &valid, &e.Content, &created)
	if err != nil {
		return Entry{}, err
	}
	e.Valid = valid != 0
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
