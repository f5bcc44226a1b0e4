package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/nest-egg/internal/service"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and locates the backing database.
type Options struct {
	Driver string
	Path   string
	DSN    string
}

// NewStore opens the configured store and brings its schema up to date.
func NewStore(ctx context.Context, opts Options) (service.GoalStore, error) {
	switch strings.ToLower(opts.Driver) {
	case "", DriverSQLite, "sqlite3":
		store, err := NewSQLiteStorage(opts.Path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		slog.Debug("opened sqlite store", "path", opts.Path)
		return store, nil

	case DriverPostgres, "postgresql":
		store, err := NewPostgresStorage(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		slog.Debug("opened postgres store")
		return store, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

var (
	_ service.GoalStore = (*SQLiteStorage)(nil)
	_ service.GoalStore = (*PostgresStorage)(nil)
)
