// Package factory wires the application's storage, services and
// dependencies together from configuration.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/memoryxin/battlechess/internal/dependencies/clock"
	"github.com/memoryxin/battlechess/internal/dependencies/random"
	"github.com/memoryxin/battlechess/internal/logging"
	"github.com/memoryxin/battlechess/internal/match"
	"github.com/memoryxin/battlechess/internal/services/auth"
	"github.com/memoryxin/battlechess/internal/storage"
	"github.com/memoryxin/battlechess/internal/storage/memory"
	redisstorage "github.com/memoryxin/battlechess/internal/storage/redis"
	"github.com/memoryxin/battlechess/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSqlite = "sqlite"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.UserStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService *auth.Service
	Pool        *match.Pool
	Audit       *logging.Audit
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "sqlite"
	StorageType string
	// DBPath is the sqlite database file (required if StorageType is "sqlite")
	DBPath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuditWriter receives the user event log (optional)
	// If nil, audit events are discarded
	AuditWriter io.Writer
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.UserStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeSqlite
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSqlite:
		if cfg.DBPath == "" {
			return nil, errors.New("DBPath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	clk := clock.New()

	audit := logging.Nop()
	if cfg.AuditWriter != nil {
		audit = logging.NewAudit(cfg.AuditWriter, clk)
	}

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      random.New(),
		AuthService: auth.New(store, logger),
		Pool:        match.NewPool(),
		Audit:       audit,
	}, nil
}

// Close releases storage resources that hold external handles
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
