package config

import (
	"fmt"
	"os"
	"path/filepath"

	"dndbridge/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Event shape names accepted by controller.shape
const (
	ShapeDragDrop = "drag-drop"
	ShapeFileDrop = "file-drop"
)

// DefaultURIListInfo is the info value the rendering engine uses for
// text/uri-list payloads.
const DefaultURIListInfo = 2

// Config represents the application configuration structure.
// It selects the event shape of the drag-drop controller, how dropped
// paths are filtered before reaching the application, and logging.
type Config struct {
	Controller struct {
		Shape       string `yaml:"shape"`         // drag-drop or file-drop
		Hover       bool   `yaml:"hover"`         // Emit hover events on motion
		URIListInfo int    `yaml:"uri_list_info"` // Payload info value carrying a URI list
	} `yaml:"controller"`
	Sink struct {
		Accept    []string `yaml:"accept"`     // Glob patterns dropped paths must match
		LogEvents bool     `yaml:"log_events"` // Log every delivered event
	} `yaml:"sink"`
	Log struct {
		Debug bool   `yaml:"debug"` // Log raw signals and transitions
		JSON  bool   `yaml:"json"`  // One JSON object per line
		File  string `yaml:"file"`  // Also append to this file
	} `yaml:"log"`
}

// DefaultPath returns ~/.config/dndbridge/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dndbridge", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.NewConfigError("cannot locate home directory", "", errors.ConfigNotFound, err)
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal over the defaults so unset keys keep their default values
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Controller.Shape = ShapeDragDrop
	cfg.Controller.Hover = false // Motion storms are opt-in
	cfg.Controller.URIListInfo = DefaultURIListInfo

	cfg.Sink.Accept = []string{}
	cfg.Sink.LogEvents = true

	cfg.Log.Debug = false
	cfg.Log.JSON = false
	cfg.Log.File = ""

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	switch c.Controller.Shape {
	case ShapeDragDrop, ShapeFileDrop:
	default:
		return errors.NewConfigError("invalid event shape", "controller.shape", errors.InvalidConfig,
			fmt.Errorf("%q is not one of %s, %s", c.Controller.Shape, ShapeDragDrop, ShapeFileDrop))
	}

	if c.Controller.URIListInfo < 0 {
		return errors.NewConfigError("uri list info must be >= 0", "controller.uri_list_info", errors.InvalidConfig, nil)
	}

	for i, pattern := range c.Sink.Accept {
		if pattern == "" {
			return errors.NewConfigError("empty accept pattern", fmt.Sprintf("sink.accept[%d]", i), errors.InvalidConfig, nil)
		}
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return errors.NewConfigError("invalid accept pattern", fmt.Sprintf("sink.accept[%d]", i), errors.InvalidConfig, err)
		}
	}

	return nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Controller.Hover = true
	cfg.Sink.LogEvents = false
	return cfg
}
