package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"PORT", "LOG_LEVEL", "STORAGE_DRIVER", "PDF_RENDERER", "PDF_TIMEOUT", "CONFIG_FILE", "S3_REGION", "UPLOAD_DIR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "./uploads", cfg.Storage.Dir)
	assert.Equal(t, "us-east-1", cfg.Storage.S3Region)
	assert.Equal(t, "direct", cfg.PDF.Renderer)
	assert.Equal(t, 30*time.Second, cfg.PDF.Timeout)
	assert.False(t, cfg.EnvFileLoaded)
}

func TestLoadEnvAndYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PORT", "9090")
	t.Setenv("PDF_TIMEOUT", "45s")
	t.Setenv("STORAGE_DRIVER", "local")

	file := filepath.Join(dir, "ascomp.yaml")
	require.NoError(t, os.WriteFile(file, []byte("storage:\n  driver: s3\n  bucket: reports\npdf:\n  renderer: browser\n"), 0o600))
	t.Setenv("CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.PDF.Timeout)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "reports", cfg.Storage.Bucket)
	assert.Equal(t, "browser", cfg.PDF.Renderer)
}

func TestLoadBadTimeout(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PDF_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PDF_TIMEOUT", "")
	t.Setenv("CONFIG_FILE", "does-not-exist.yaml")
	_, err := Load()
	assert.Error(t, err)
}

func TestConnectNeedsDSN(t *testing.T) {
	err := Connect(&Config{})
	assert.EqualError(t, err, "DB_DSN is not set")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
