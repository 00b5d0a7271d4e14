// Package config resolves the application settings from the built-in defaults, an optional
// .env file and CHATERP_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	PREFERENCES = "ChatERP_Prefs.json"
	DATABASE    = "chaterp.db"
	KEYRING     = "keyring"
)

type Config struct {
	Workdir         string
	Credentials     string
	Store           string
	DSN             string
	Endpoint        string
	AccessToken     string
	KeyringPassword string
}

func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom loads the environment file (if it exists) without overriding variables that
// are already set, then resolves the configuration.
func LoadFrom(files ...string) Config {
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	return Config{
		Workdir:         getEnv("CHATERP_WORKDIR", DEFAULT_WORKDIR),
		Credentials:     getEnv("CHATERP_CREDENTIALS", DEFAULT_CREDENTIALS),
		Store:           strings.ToLower(getEnv("CHATERP_STORE", "file")),
		DSN:             getEnv("CHATERP_DSN", ""),
		Endpoint:        getEnv("CHATERP_SHEETS_ENDPOINT", ""),
		AccessToken:     getEnv("CHATERP_ACCESS_TOKEN", ""),
		KeyringPassword: getEnv("CHATERP_KEYRING_PASSWORD", ""),
	}
}

// StoreDSN returns the configured DSN or, if none, the default location for the store kind
// in the work directory. PostgreSQL has no default.
func (c Config) StoreDSN(kind, workdir string) string {
	if c.DSN != "" {
		return c.DSN
	}

	switch kind {
	case "sqlite":
		return filepath.Join(workdir, DATABASE)

	case "keyring":
		return filepath.Join(workdir, KEYRING)

	case "postgres", "memory":
		return ""

	default:
		return filepath.Join(workdir, PREFERENCES)
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}

	return defaultValue
}
