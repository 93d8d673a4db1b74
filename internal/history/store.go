// Package history provides SQLite persistence for what the user searched
// and which results they opened. Result content itself is never stored.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Search is one remembered query.
type Search struct {
	Query   string
	Page    int
	Count   int // times the query was run
	LastRun time.Time
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for file-based databases.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS searches (
		query TEXT PRIMARY KEY,
		page INTEGER NOT NULL DEFAULT 1,
		run_count INTEGER NOT NULL DEFAULT 1,
		last_run INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_searches_last_run ON searches(last_run DESC);

	CREATE TABLE IF NOT EXISTS visited (
		url TEXT PRIMARY KEY,
		visited_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// RecordSearch remembers that query was run starting at page. Running the
// same query again bumps its count and timestamp. Blank queries are ignored.
func (s *Store) RecordSearch(query string, page int, at time.Time) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO searches (query, page, run_count, last_run) VALUES (?, ?, 1, ?)
		ON CONFLICT(query) DO UPDATE SET
			page = excluded.page,
			run_count = run_count + 1,
			last_run = excluded.last_run
	`, query, page, at.UnixNano())
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// RecentSearches returns up to limit searches, most recent first.
func (s *Store) RecentSearches(limit int) ([]Search, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT query, page, run_count, last_run FROM searches
		ORDER BY last_run DESC, query ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query searches: %w", err)
	}
	defer rows.Close()

	var out []Search
	for rows.Next() {
		var sr Search
		var ns int64
		if err := rows.Scan(&sr.Query, &sr.Page, &sr.Count, &ns); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		sr.LastRun = time.Unix(0, ns)
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate searches: %w", err)
	}
	return out, nil
}

// ClearSearches forgets every search and returns how many were removed.
func (s *Store) ClearSearches() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM searches")
	if err != nil {
		return 0, fmt.Errorf("clear searches: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// MarkVisited records that the result at url was opened.
func (s *Store) MarkVisited(url string, at time.Time) error {
	if url == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO visited (url, visited_at) VALUES (?, ?)
		ON CONFLICT(url) DO UPDATE SET visited_at = excluded.visited_at
	`, url, at.UnixNano())
	if err != nil {
		return fmt.Errorf("mark visited: %w", err)
	}
	return nil
}

// Visited reports which of urls have been opened before. URLs that were
// never visited are absent from the returned map.
func (s *Store) Visited(urls []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(urls) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(urls)), ",")
	args := make([]any, len(urls))
	for i, u := range urls {
		args[i] = u
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT url FROM visited WHERE url IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("query visited: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan visited: %w", err)
		}
		out[u] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visited: %w", err)
	}
	return out, nil
}

// VisitedCount returns the number of distinct visited URLs.
func (s *Store) VisitedCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM visited").Scan(&n); err != nil {
		return 0, fmt.Errorf("count visited: %w", err)
	}
	return n, nil
}
