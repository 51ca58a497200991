package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AGRIMARKET_BACKEND_URL", "")
	t.Setenv("AGRIMARKET_THEME", "")
	return home
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	setHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", cfg.BackendURL)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.Verbose)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	setHome(t)

	want := Config{
		BackendURL:     "https://agrimarket.example.com/api",
		Theme:          "dark",
		RequestTimeout: 10 * time.Second,
		Verbose:        true,
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFillsMissingFields(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".agrimarket")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"theme": "dark"}`), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "http://localhost:8000/api", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".agrimarket")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte("{not json"), 0644))

	cfg, err := Load()
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestEnvOverrides(t *testing.T) {
	setHome(t)
	t.Setenv("AGRIMARKET_BACKEND_URL", "http://staging:9000/api")
	t.Setenv("AGRIMARKET_THEME", "dark")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://staging:9000/api", cfg.BackendURL)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	setHome(t)
	require.NoError(t, Save(Config{
		BackendURL:     "http://file:8000/api",
		Theme:          "light",
		RequestTimeout: 30 * time.Second,
	}))
	t.Setenv("AGRIMARKET_BACKEND_URL", "http://env:8000/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env:8000/api", cfg.BackendURL)
}

func TestDirUnderHome(t *testing.T) {
	home := setHome(t)

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".agrimarket"), dir)
}
