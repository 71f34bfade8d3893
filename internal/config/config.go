package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"gridview/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version      int            `toml:"version"`
	Tuning       Tuning         `toml:"tuning"`
	UISettings   UISettings     `toml:"ui"`
	ColumnWidths map[string]int `toml:"column_widths"` // column id -> saved width
}

// Tuning holds the layout engine's tuning constants. These are knobs, not
// invariants: correctness only requires bounded blank space under bounded
// scroll velocity, so the exact values stay configurable.
type Tuning struct {
	OverscanFactor   float64 `toml:"overscan_factor"`    // extra rows as fraction of visible count
	DebounceMillis   int     `toml:"debounce_ms"`        // geometry change coalescing window
	DefaultRowHeight int     `toml:"default_row_height"` // screen lines per row before measurement
	MinColumnWidth   int     `toml:"min_column_width"`
	MaxColumnWidth   int     `toml:"max_column_width"`
}

// DebounceInterval returns the debounce window as a duration
func (t Tuning) DebounceInterval() time.Duration {
	return time.Duration(t.DebounceMillis) * time.Millisecond
}

// UISettings represents UI-related configuration
type UISettings struct {
	WrapCells     bool `toml:"wrap_cells"`
	ShowRowNumber bool `toml:"show_row_number"`
	SaveWidths    bool `toml:"save_widths"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	gridviewDir := filepath.Join(configDir, "gridview")
	os.MkdirAll(gridviewDir, 0755)

	return &configService{
		filePath: filepath.Join(gridviewDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Tuning: Tuning{
			OverscanFactor:   0.5,
			DebounceMillis:   50,
			DefaultRowHeight: 1,
			MinColumnWidth:   4,
			MaxColumnWidth:   80,
		},
		UISettings: UISettings{
			WrapCells:     false,
			ShowRowNumber: true,
			SaveWidths:    true,
		},
		ColumnWidths: make(map[string]int),
	}
}

// Load loads the configuration from the default path
func (cs *configService) Load() (*Config, error) {
	return cs.LoadFromPath(cs.filePath)
}

// LoadFromPath loads the configuration from a specific file
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(path)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ColumnWidths == nil {
		cfg.ColumnWidths = make(map[string]int)
	}
	cfg.Tuning = sanitizeTuning(cfg.Tuning)

	cs.publishLoaded(path)
	return cfg, nil
}

// Save saves the configuration to the default path
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// SaveToPath saves the configuration to a specific file
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publishLoaded(path string) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path})
	}
}

// sanitizeTuning clamps nonsensical tuning values back to usable ones
// rather than rejecting the file
func sanitizeTuning(t Tuning) Tuning {
	if t.OverscanFactor < 0 {
		t.OverscanFactor = 0
	}
	if t.DebounceMillis < 0 {
		t.DebounceMillis = 0
	}
	if t.DefaultRowHeight < 1 {
		t.DefaultRowHeight = 1
	}
	if t.MinColumnWidth < 1 {
		t.MinColumnWidth = 1
	}
	if t.MaxColumnWidth < t.MinColumnWidth {
		t.MaxColumnWidth = t.MinColumnWidth
	}
	return t
}
