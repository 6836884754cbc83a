package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CALBUDGET_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "calbudget", "budget.db"), cfg.Database.Path)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Empty(t, cfg.UI.Timezone)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, filepath.Join(home, ".local", "state", "calbudget", "calbudget.log"), cfg.Log.Path)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "calbudget.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "/tmp/elsewhere.db"

[ui]
currency_symbol = "€"
timezone = "Europe/Rome"

[log]
level = "debug"
`), 0o600))
	t.Setenv("CALBUDGET_CONFIG", path)
	t.Setenv("CALBUDGET_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/elsewhere.db", cfg.Database.Path)
	require.Equal(t, "€", cfg.UI.CurrencySymbol)
	require.Equal(t, "warn", cfg.Log.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, "Europe/Rome", loc.String())
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CALBUDGET_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestLocationFallsBackOnBadZone(t *testing.T) {
	cfg := Config{UI: UIConfig{Timezone: "Mars/Olympus"}}
	loc, err := cfg.Location()
	require.Error(t, err)
	require.Equal(t, time.Local, loc)
}
