package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_PATH", "TANKBEURT_LISTEN", "TANKBEURT_STATIC_DIR", "TANKBEURT_OCR_LANG",
		"TANKBEURT_LOG_LEVEL", "TANKBEURT_LOG_FORMAT", "TANKBEURT_MAX_UPLOAD_MB",
		"TANKBEURT_OCR_PSM", "TANKBEURT_OCR_DPI",
	} {
		t.Setenv(k, "")
	}
	// keep the default tankbeurt.yaml and .env lookups away from the repo
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 16, cfg.MaxUploadMB)
	assert.Equal(t, "nld+eng", cfg.OCR.Lang)
	assert.Equal(t, 6, cfg.OCR.PSM)
	assert.Equal(t, 300, cfg.OCR.DPI)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "listen: \":9000\"\nmax_upload_mb: 4\nocr:\n  lang: eng\n  psm: 4\nlog:\n  level: debug\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("TANKBEURT_OCR_PSM", "11")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, 4, cfg.MaxUploadMB)
	assert.Equal(t, "eng", cfg.OCR.Lang)
	assert.Equal(t, 11, cfg.OCR.PSM)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromConfigPathEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \"127.0.0.1:7000\"\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Listen)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("listen: [unterminated\n"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("bad integer env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TANKBEURT_OCR_DPI", "high")
		_, err := Load("")
		assert.Error(t, err)
	})
}
