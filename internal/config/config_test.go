package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://fitforworks.app/api/analyze", cfg.Service.AnalyzeURL)
	assert.Equal(t, ":53682", cfg.Auth.CallbackPort)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL())
	assert.False(t, cfg.Logging.DebugMode)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Service.AnalyzeURL, cfg.Service.AnalyzeURL)
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Service.AnalyzeURL = "https://staging.fitforworks.app/api/analyze"
	cfg.Service.Timeout = "45s"
	require.NoError(t, cfg.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.fitforworks.app/api/analyze", loaded.Service.AnalyzeURL)
	assert.Equal(t, 45*time.Second, loaded.RequestTimeout())
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{oops"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FITWORKS_ANALYZE_URL", "http://localhost:9999/analyze")
	t.Setenv("FITWORKS_DEBUG", "1")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/analyze", cfg.Service.AnalyzeURL)
	assert.True(t, cfg.Logging.DebugMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestDirHonorsHomeOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "custom-home")
	t.Setenv("FITWORKS_HOME", override)

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, override, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBadDurationsFallBack(t *testing.T) {
	cfg := Default()
	cfg.Service.Timeout = "soon"
	cfg.Service.ResultCacheTTL = "-5m"

	assert.Equal(t, 90*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL())
}
