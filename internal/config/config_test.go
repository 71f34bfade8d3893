package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 0.5, cfg.Tuning.OverscanFactor)
	assert.Equal(t, 50, cfg.Tuning.DebounceMillis)
	assert.Equal(t, 1, cfg.Tuning.DefaultRowHeight)
	assert.True(t, cfg.UISettings.ShowRowNumber)
	assert.NotNil(t, cfg.ColumnWidths)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cs := NewConfigService()

	cfg := DefaultConfig()
	cfg.Tuning.OverscanFactor = 0.75
	cfg.Tuning.DebounceMillis = 120
	cfg.UISettings.WrapCells = true
	cfg.ColumnWidths["name"] = 32

	require.NoError(t, cs.SaveToPath(cfg, path))

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 0.75, loaded.Tuning.OverscanFactor)
	assert.Equal(t, 120, loaded.Tuning.DebounceMillis)
	assert.True(t, loaded.UISettings.WrapCells)
	assert.Equal(t, 32, loaded.ColumnWidths["name"])
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigService()

	cfg, err := cs.LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[tuning]\noverscan_factor = 1.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.Tuning.OverscanFactor)
	// everything the file omits stays at the default
	assert.Equal(t, 50, cfg.Tuning.DebounceMillis)
	assert.Equal(t, 4, cfg.Tuning.MinColumnWidth)
	assert.True(t, cfg.UISettings.ShowRowNumber)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := NewConfigService().LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadSanitizesTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[tuning]
overscan_factor = -2.0
debounce_ms = -10
default_row_height = 0
min_column_width = 0
max_column_width = -5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Tuning.OverscanFactor)
	assert.Equal(t, 0, cfg.Tuning.DebounceMillis)
	assert.Equal(t, 1, cfg.Tuning.DefaultRowHeight)
	assert.Equal(t, 1, cfg.Tuning.MinColumnWidth)
	assert.Equal(t, 1, cfg.Tuning.MaxColumnWidth)
}

func TestDebounceInterval(t *testing.T) {
	tuning := Tuning{DebounceMillis: 75}
	assert.Equal(t, 75*time.Millisecond, tuning.DebounceInterval())
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")
	require.NoError(t, NewConfigService().SaveToPath(DefaultConfig(), path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
