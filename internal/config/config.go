package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/projection"
	"github.com/Veraticus/nest-egg/internal/storage"
	"github.com/spf13/viper"
)

// DefaultCurrencySymbol prefixes every amount shown to the user.
const DefaultCurrencySymbol = "﷼"

// Config is the typed application configuration.
type Config struct {
	Logging  LoggingConfig
	Currency CurrencyConfig
	Storage  StorageConfig
	Risk     RiskConfig
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// StorageConfig selects the goal store.
type StorageConfig struct {
	Driver  string
	Path    string
	DSN     string
	Timeout time.Duration
}

// RiskConfig holds the band half-widths in percent.
type RiskConfig struct {
	Conservative float64
	Moderate     float64
	High         float64
}

// CurrencyConfig controls money formatting.
type CurrencyConfig struct {
	Symbol string
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("storage.driver", storage.DriverSQLite)
	v.SetDefault("storage.path", defaultDBPath())
	v.SetDefault("storage.timeout", 5*time.Second)
	v.SetDefault("projection.risk.conservative", 1.5)
	v.SetDefault("projection.risk.moderate", 2.5)
	v.SetDefault("projection.risk.high", 6.0)
	v.SetDefault("currency.symbol", DefaultCurrencySymbol)
}

func defaultDBPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "nest", "nest.db")
	}
	return "~/.local/share/nest/nest.db"
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return FromViper(viper.GetViper())
}

// FromViper builds a validated Config from v. It follows this precedence:
// 1. Viper configuration (config file, flags or NEST_ env vars)
// 2. DATABASE_URL for the Postgres DSN
// 3. Default values
func FromViper(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Storage: StorageConfig{
			Driver:  strings.ToLower(v.GetString("storage.driver")),
			Path:    ExpandPath(v.GetString("storage.path")),
			DSN:     v.GetString("storage.dsn"),
			Timeout: v.GetDuration("storage.timeout"),
		},
		Risk: RiskConfig{
			Conservative: v.GetFloat64("projection.risk.conservative"),
			Moderate:     v.GetFloat64("projection.risk.moderate"),
			High:         v.GetFloat64("projection.risk.high"),
		},
		Currency: CurrencyConfig{
			Symbol: v.GetString("currency.symbol"),
		},
	}

	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}

	switch c.Storage.Driver {
	case storage.DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path", common.ErrMissingConfig)
		}
	case storage.DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("%w: storage.dsn (or DATABASE_URL)", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: storage driver %q", common.ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("%w: storage.timeout must be positive", common.ErrInvalidConfig)
	}

	return c.RiskBands().Validate()
}

// RiskBands converts the configured percentages into a band table.
func (c *Config) RiskBands() projection.RiskBands {
	return projection.RiskBandsFromPercent(c.Risk.Conservative, c.Risk.Moderate, c.Risk.High)
}

// StoreOptions maps the storage section onto storage.Options.
func (c *Config) StoreOptions() storage.Options {
	return storage.Options{
		Driver: c.Storage.Driver,
		Path:   c.Storage.Path,
		DSN:    c.Storage.DSN,
	}
}
