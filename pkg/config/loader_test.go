package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadServerConfigYAML(t *testing.T) {
	path := writeTempConfig(t, "formd.yaml", `
port: 3000
staticDir: ./site
logging:
  level: debug
  format: json
`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "./site", cfg.StaticDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Unset fields fall back to defaults.
	assert.Equal(t, DefaultSubmissionLog, cfg.SubmissionLog)
	assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
}

func TestLoadServerConfigJSON(t *testing.T) {
	path := writeTempConfig(t, "formd.json", `{"port": 9090, "submissionLog": "subs.log"}`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "subs.log", cfg.SubmissionLog)
	assert.Equal(t, DefaultStaticDir, cfg.StaticDir)
}

func TestLoadServerConfigErrors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempConfig(t, "empty.yaml", "")
		_, err := LoadServerConfig(path)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		path := writeTempConfig(t, "bad.yaml", "port: [unclosed")
		_, err := LoadServerConfig(path)
		assert.ErrorIs(t, err, ErrInvalidYAML)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeTempConfig(t, "bad.json", "{not json")
		_, err := LoadServerConfig(path)
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LoadServerConfig(t.TempDir())
		assert.Error(t, err)
	})
}

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultSubmissionLog, cfg.SubmissionLog)
	assert.Equal(t, "info", cfg.Logging.Level)
}
