package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore keeps the mapping in a 'preferences' table of an embedded SQLite database or a
// shared PostgreSQL database.
type SQLStore struct {
	db       *sql.DB
	postgres bool
}

const schema = `CREATE TABLE IF NOT EXISTS preferences (
	name       TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

func NewSQLiteStore(path string) (*SQLStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("missing sqlite database path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory (%w)", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database (%w)", err)
	}

	return newSQLStore(db, false)
}

func NewPostgresStore(dsn string) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("missing postgres connection string")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database (%w)", err)
	}

	return newSQLStore(db, true)
}

func newSQLStore(db *sql.DB, postgres bool) (*SQLStore, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database (%w)", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed (%w)", err)
	}

	return &SQLStore{
		db:       db,
		postgres: postgres,
	}, nil
}

func (s *SQLStore) Get(key string) (string, bool, error) {
	var value string

	row := s.db.QueryRow(s.rebind(`SELECT value FROM preferences WHERE name = ?`), key)
	if err := row.Scan(&value); errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("failed to read '%s' (%w)", key, err)
	}

	return value, true, nil
}

func (s *SQLStore) Set(key, value string) error {
	query := `INSERT INTO preferences (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	          ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.Exec(s.rebind(query), key, value); err != nil {
		return fmt.Errorf("failed to write '%s' (%w)", key, err)
	}

	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind converts '?' placeholders to PostgreSQL's positional '$n' form.
func (s *SQLStore) rebind(query string) string {
	if !s.postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
		} else {
			b.WriteRune(ch)
		}
	}

	return b.String()
}
