package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[string]any

func (m mapSource) Load() (map[string]any, error) { return m, nil }

type failingSource struct{}

func (failingSource) Load() (map[string]any, error) { return nil, errors.New("unreadable") }

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestFromSourcesLayering(t *testing.T) {
	file := mapSource{
		"logging":  map[string]any{"level": "debug", "json": true},
		"dispatch": map[string]any{"metrics": true},
		"script":   map[string]any{"call_limit": int64(10)},
	}
	env := mapSource{
		"logging": map[string]any{"level": "warn"},
	}

	cfg, err := FromSources(file, env)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
	assert.True(t, cfg.Dispatch.Metrics)
	assert.True(t, cfg.Dispatch.RecoverPanics, "unset settings keep their default")
	assert.Equal(t, 10, cfg.Script.CallLimit)
	assert.Equal(t, 1000, cfg.Script.TimeoutMS)
	assert.Equal(t, "default", cfg.Preview.Theme)
}

func TestFromSourcesNil(t *testing.T) {
	cfg, err := FromSources(mapSource(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromSourcesError(t *testing.T) {
	_, err := FromSources(failingSource{})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.Script.CallLimit = -1
	cfg.Preview.Theme = "neon"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrValidationFailed)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "logging.level", ve.Path)
	assert.Contains(t, err.Error(), "script.call_limit")
	assert.Contains(t, err.Error(), "preview.theme")

	_, err = FromSources(mapSource{"preview": map[string]any{"theme": "neon"}})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[dispatch]
recover_panics = false

[preview]
theme = "mono"
`), 0o644))
	t.Setenv("ACTKIT_PREVIEW_DEBOUNCE_MS", "40")
	t.Setenv("ACTKIT_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Dispatch.RecoverPanics)
	assert.Equal(t, "mono", cfg.Preview.Theme)
	assert.Equal(t, 40, cfg.Preview.DebounceMS)
	assert.Equal(t, "error", cfg.Logging.Level)

	d := cfg.DispatcherConfig()
	assert.False(t, d.RecoverFromPanic)
	assert.False(t, d.EnableMetrics)
	assert.True(t, d.LogDispatch)

	assert.Equal(t, zerolog.ErrorLevel, cfg.LoggerConfig().Level)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Preview.Theme)
}
