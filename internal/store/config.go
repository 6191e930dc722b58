package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Backend names accepted by Config.Backend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config selects and configures the key-value backend.
type Config struct {
	// Backend is one of "sqlite", "redis" or "memory". Default: "sqlite".
	Backend string

	// SQLitePath is the database file. Empty means DefaultDBPath.
	SQLitePath string

	RedisAddr     string // Default: "localhost:6379"
	RedisPassword string
	RedisDB       int

	// KeyPrefix namespaces every key. Only the Redis backend applies it,
	// since a SQLite file already belongs to one application.
	KeyPrefix string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendSQLite,
		RedisAddr: "localhost:6379",
		KeyPrefix: "lingua:",
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if b := os.Getenv("LINGUA_STORE"); b != "" {
		cfg.Backend = strings.ToLower(b)
	}
	if p := os.Getenv("LINGUA_DB"); p != "" {
		cfg.SQLitePath = p
	}
	if a := os.Getenv("LINGUA_REDIS_ADDR"); a != "" {
		cfg.RedisAddr = a
	}
	if p := os.Getenv("LINGUA_REDIS_PASSWORD"); p != "" {
		cfg.RedisPassword = p
	}
	if d := strings.TrimSpace(os.Getenv("LINGUA_REDIS_DB")); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			cfg.RedisDB = n
		}
	}
	if p, ok := os.LookupEnv("LINGUA_KEY_PREFIX"); ok {
		cfg.KeyPrefix = p
	}

	return cfg
}

// Validate checks that the backend is known and has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("LINGUA_REDIS_ADDR is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.Backend)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LINGUA_DB environment variable
// 2. $XDG_DATA_HOME/lingua/lingua.db
// 3. ~/.local/share/lingua/lingua.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LINGUA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lingua", "lingua.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
