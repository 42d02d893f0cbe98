// Package config resolves runtime configuration from flags, environment
// variables and an optional .env file, in that priority order.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDB      = "AILEARN_DB"
	EnvSession = "AILEARN_SESSION"
	EnvCatalog = "AILEARN_CATALOG"
)

// DefaultSession is the session id used when none is configured. All state
// is keyed per session, so switching ids gives a fresh, independent profile.
const DefaultSession = "local"

// Config carries the resolved settings.
type Config struct {
	// DBPath is the SQLite database file; empty means the XDG default.
	DBPath string
	// Session scopes all persisted state.
	Session string
	// CatalogPath overrides the embedded catalog when set.
	CatalogPath string
}

// Load reads .env (if present) and the environment. Missing .env files are
// not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DBPath:      os.Getenv(EnvDB),
		Session:     os.Getenv(EnvSession),
		CatalogPath: os.Getenv(EnvCatalog),
	}
	if cfg.Session == "" {
		cfg.Session = DefaultSession
	}
	return cfg
}
