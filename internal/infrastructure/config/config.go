package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Storage. DBPath may be ":memory:". ResetContentOnStart drops subjects
	// and questions at boot but keeps answer history.
	DBPath              string
	ResetContentOnStart bool

	// Catalog. An empty CatalogPath disables boot sync. With
	// SyncPurgeHistory, subjects leaving the catalog lose answers and progress.
	CatalogPath      string
	CatalogWorkers   int
	SyncPurgeHistory bool

	// Sessions
	StageSize int
}

// Load reads .env (if present) and the environment. Invalid or missing
// required settings are fatal.
func Load() *Config {
	_ = godotenv.Load()
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from getenv without touching the process.
func FromEnv(getenv func(string) string) (*Config, error) {
	e := env{getenv: getenv}
	cfg := &Config{
		ServerAddress:       e.required("SERVER_ADDRESS"),
		ShutdownTimeout:     e.duration("SHUTDOWN_TIMEOUT"),
		DBPath:              e.get("DB_PATH", "quizcore.db"),
		ResetContentOnStart: e.flag("RESET_CONTENT_ON_START", true),
		CatalogPath:         e.get("CATALOG_PATH", ""),
		CatalogWorkers:      e.positiveInt("CATALOG_WORKERS", 4),
		SyncPurgeHistory:    e.flag("SYNC_PURGE_HISTORY", false),
		StageSize:           e.positiveInt("STAGE_SIZE", 10),
	}
	if e.err != nil {
		return nil, e.err
	}
	return cfg, nil
}

// env keeps the first error so FromEnv reads like a plain field list.
type env struct {
	getenv func(string) string
	err    error
}

func (e *env) fail(format string, args ...any) {
	if e.err == nil {
		e.err = fmt.Errorf(format, args...)
	}
}

func (e *env) required(k string) string {
	v := e.getenv(k)
	if v == "" {
		e.fail("required environment variable %s is not set", k)
	}
	return v
}

func (e *env) duration(k string) time.Duration {
	v := e.required(k)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail("%s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func (e *env) get(k, fallback string) string {
	if v := e.getenv(k); v != "" {
		return v
	}
	return fallback
}

func (e *env) flag(k string, fallback bool) bool {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail("%s=%q is not a valid bool", k, v)
	}
	return b
}

func (e *env) positiveInt(k string, fallback int) int {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		e.fail("%s=%q must be a positive integer", k, v)
	}
	return n
}
