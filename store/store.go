// Package store implements the persistent key-value stores that hold the email to
// spreadsheet mapping.
package store

import (
	"fmt"
	"strings"
)

type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

const (
	Memory   = "memory"
	File     = "file"
	SQLite   = "sqlite"
	Postgres = "postgres"
	Keyring  = "keyring"
)

// Config selects and locates a store. DSN is interpreted per kind: the JSON file path for
// 'file', the database file for 'sqlite', a connection string for 'postgres' and the file
// backend directory for 'keyring'.
type Config struct {
	Kind     string
	DSN      string
	Password string
}

func Open(conf Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(conf.Kind)) {
	case Memory:
		return NewMemoryStore(), nil

	case File, "":
		if s, err := NewFileStore(conf.DSN); err != nil {
			return nil, err
		} else {
			return s, nil
		}

	case SQLite:
		if s, err := NewSQLiteStore(conf.DSN); err != nil {
			return nil, err
		} else {
			return s, nil
		}

	case Postgres:
		if s, err := NewPostgresStore(conf.DSN); err != nil {
			return nil, err
		} else {
			return s, nil
		}

	case Keyring:
		if s, err := NewKeyringStore(conf.DSN, conf.Password); err != nil {
			return nil, err
		} else {
			return s, nil
		}

	default:
		return nil, fmt.Errorf("unknown store '%s' (expected memory, file, sqlite, postgres or keyring)", conf.Kind)
	}
}
