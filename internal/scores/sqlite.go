package scores

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps history in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open score database: %w", err)
	}
	// One writer at a time; SSH sessions share the store.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS score_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			played_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_score_history_player ON score_history (player)`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("create score tables: %w", err)
		}
	}
	return nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO score_history (player, score, played_at) VALUES (?, ?, ?)`,
		e.Player, e.Score, e.PlayedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("append score: %w", err)
	}
	return nil
}

func (s *SQLiteStore) History(ctx context.Context, player string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, score, played_at FROM score_history WHERE player = ? ORDER BY score DESC, id ASC`,
		player)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var history []Entry
	for rows.Next() {
		var (
			e  Entry
			ms int64
		)
		if err := rows.Scan(&e.Player, &e.Score, &ms); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.PlayedAt = time.UnixMilli(ms)
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	return history, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, player string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM score_history WHERE player = ?`, player); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}
	return nil
}
