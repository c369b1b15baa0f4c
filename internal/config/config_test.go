package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "corekeeper.toml")
	content := `
data_dir = "/var/lib/corekeeper"
log_level = "debug"
log_format = "json"
pending_limit = 50
pending_ttl = "90s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/corekeeper", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 50, cfg.PendingLimit)
	assert.Equal(t, 90*time.Second, cfg.PendingTTL.Duration)
	assert.Equal(t, "/var/lib/corekeeper/corekeeper.db", cfg.StatePath())
	assert.Equal(t, "/var/lib/corekeeper/audit.db", cfg.AuditPath())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/override")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override", cfg.DataDir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLogLevel, "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad toml", content: `data_dir = `, wantErr: "failed to read config"},
		{name: "bad duration", content: `pending_ttl = "soon"`, wantErr: "failed to read config"},
		{name: "bad level", content: `log_level = "trace"`, wantErr: "unknown log_level"},
		{name: "bad format", content: `log_format = "xml"`, wantErr: "unknown log_format"},
		{name: "zero pending limit", content: `pending_limit = 0`, wantErr: "pending_limit must be positive"},
		{name: "negative ttl", content: `pending_ttl = "-1s"`, wantErr: "pending_ttl cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "corekeeper.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "nested", "corekeeper.toml")
	cfg := Default()
	cfg.DataDir = "/data"
	cfg.PendingTTL = Duration{time.Hour}

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
