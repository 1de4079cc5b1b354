package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lk", "lk.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_mode: list")
	assert.Contains(t, string(data), "escape_timeout: 25ms")
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_mode: fuzzy\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeFuzzy, cfg.DefaultMode)
	assert.Equal(t, 7, cfg.Rows)
	assert.Equal(t, 25*time.Millisecond, cfg.EscapeTimeout)
	assert.Contains(t, cfg.Ignore, ".git")
}

func TestLoadParsesDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lk.yaml")
	body := "default_mode: list\nrows: 3\nescape_timeout: 80ms\nignore: [vendor]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Rows)
	assert.Equal(t, 80*time.Millisecond, cfg.EscapeTimeout)
	assert.Equal(t, []string{"vendor"}, cfg.Ignore)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"unknown mode": "default_mode: grid\n",
		"zero rows":    "rows: 0\n",
		"not yaml":     "rows: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lk.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSetDefaultModeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lk.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, cfg.SetDefaultMode("fuzzy"))
	require.NoError(t, cfg.Save(path))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeFuzzy, again.DefaultMode)
}

func TestSetDefaultModeRejectsUnknown(t *testing.T) {
	cfg := Default()

	err := cfg.SetDefaultMode("grid")

	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, ModeList, cfg.DefaultMode)
}

func TestOpenLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lk.log")
	t.Setenv(DebugEnv, "1")

	logger, closer := OpenLogger(path)
	logger.Debug("probe", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=probe")
	assert.Contains(t, string(data), "k=v")
}

func TestOpenLoggerFallsBackToDiscard(t *testing.T) {
	logger, closer := OpenLogger(filepath.Join(t.TempDir(), "missing", "lk.log"))
	logger.Info("dropped")
	assert.NoError(t, closer.Close())
}
