package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Biz")
	cfg.Storage.Backend = BackendSQLite
	cfg.Simulation.PaymentLatency = 250 * time.Millisecond
	cfg.Categories = []string{"Rent", "Sales"}

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business.Name, got.Business.Name)
	assert.Equal(t, BackendSQLite, got.Storage.Backend)
	assert.Equal(t, cfg.Storage.SQLitePath, got.Storage.SQLitePath)
	assert.Equal(t, 250*time.Millisecond, got.Simulation.PaymentLatency)
	assert.Equal(t, time.Second, got.Simulation.AuthLatency)
	assert.Equal(t, []string{"Rent", "Sales"}, got.Categories)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company")

	assert.Equal(t, "My Company", cfg.Business.Name)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.Storage.Dir)
	assert.Equal(t, time.Second, cfg.Simulation.PaymentLatency)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Categories)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business:\n  name: Partial\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Partial", cfg.Business.Name)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Biz")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "backend: file")
	assert.Contains(t, contents, "payment_latency: 1s")
	assert.Contains(t, contents, "format: console")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BIZLEDGER_STORAGE_BACKEND", "memory")
	t.Setenv("BIZLEDGER_PAYMENT_LATENCY", "0s")
	t.Setenv("BIZLEDGER_AUTH_LATENCY", "not-a-duration")
	t.Setenv("BIZLEDGER_LOG_LEVEL", "debug")

	cfg := Default("Biz")
	ApplyEnv(cfg)

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, time.Duration(0), cfg.Simulation.PaymentLatency)
	assert.Equal(t, time.Second, cfg.Simulation.AuthLatency, "unparseable value ignored")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "data", cfg.Storage.Dir)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadEnvFile(filepath.Join(dir, ".env")), "missing file is fine")

	t.Setenv("BIZLEDGER_DATA_DIR", "")
	os.Unsetenv("BIZLEDGER_DATA_DIR")
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BIZLEDGER_DATA_DIR=/tmp/ledger\n"), 0o644))
	require.NoError(t, LoadEnvFile(path))

	cfg := Default("Biz")
	ApplyEnv(cfg)
	assert.Equal(t, "/tmp/ledger", cfg.Storage.Dir)
}

func TestValidate(t *testing.T) {
	cfg := Default("Biz")
	cfg.Storage.Backend = "postgres"
	cfg.Logging.Format = "xml"
	cfg.Simulation.AuthLatency = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown storage backend "postgres"`)
	assert.Contains(t, err.Error(), `unknown log format "xml"`)
	assert.Contains(t, err.Error(), "latencies")
}
