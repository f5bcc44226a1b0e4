package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("XDG_DATA_HOME", "")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 5*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, "﷼", cfg.Currency.Symbol)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local/share/nest/nest.db"), cfg.Storage.Path)

	bands := cfg.RiskBands()
	assert.Equal(t, "0.015", bands[model.RiskConservative].String())
	assert.Equal(t, "0.025", bands[model.RiskModerate].String())
	assert.Equal(t, "0.06", bands[model.RiskHigh].String())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("storage.path", "$NEST_TEST_DIR/goals.db")
	v.Set("projection.risk.high", 10)
	v.Set("currency.symbol", "$")
	t.Setenv("NEST_TEST_DIR", "/tmp/nest")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/nest/goals.db", cfg.Storage.Path)
	assert.Equal(t, "0.1", cfg.RiskBands()[model.RiskHigh].String())
	assert.Equal(t, "$", cfg.Currency.Symbol)

	opts := cfg.StoreOptions()
	assert.Equal(t, "sqlite", opts.Driver)
	assert.Equal(t, "/tmp/nest/goals.db", opts.Path)
}

func TestFromViper_PostgresDSNFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://nest@localhost/nest")
	v := viper.New()
	v.Set("storage.driver", "Postgres")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://nest@localhost/nest", cfg.Storage.DSN)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		wantErr error
		set     map[string]any
		name    string
	}{
		{name: "bad level", set: map[string]any{"logging.level": "loud"}, wantErr: common.ErrInvalidConfig},
		{name: "bad format", set: map[string]any{"logging.format": "xml"}, wantErr: common.ErrInvalidConfig},
		{name: "bad driver", set: map[string]any{"storage.driver": "mongodb"}, wantErr: common.ErrInvalidConfig},
		{name: "postgres without dsn", set: map[string]any{"storage.driver": "postgres"}, wantErr: common.ErrMissingConfig},
		{name: "zero timeout", set: map[string]any{"storage.timeout": "0s"}, wantErr: common.ErrInvalidConfig},
		{name: "negative band", set: map[string]any{"projection.risk.moderate": -1}, wantErr: common.ErrInvalidConfig},
		{name: "band of 100 percent", set: map[string]any{"projection.risk.high": 100}, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			v := viper.New()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := FromViper(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("NEST_EXPAND", "value")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "nest.db"), ExpandPath("~/nest.db"))
	assert.Equal(t, "/data/value/nest.db", ExpandPath("/data/$NEST_EXPAND/nest.db"))
}
