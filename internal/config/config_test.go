package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"dndbridge/internal/config"
	"dndbridge/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
controller:
  shape: file-drop
  hover: true
sink:
  accept: ["*.txt", "/home/**"]
log:
  debug: true
`
	invalidSyntaxYAML = `
controller:
  shape: "drag-drop
  hover: maybe
`
	invalidShapeYAML = `
controller:
  shape: hover-only
`
	invalidPatternYAML = `
sink:
  accept: ["[a"]
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, config.ShapeFileDrop, cfg.Controller.Shape)
		assert.True(t, cfg.Controller.Hover)
		assert.Equal(t, []string{"*.txt", "/home/**"}, cfg.Sink.Accept)
		assert.True(t, cfg.Log.Debug)

		// Unset keys keep their defaults
		assert.Equal(t, config.DefaultURIListInfo, cfg.Controller.URIListInfo)
		assert.True(t, cfg.Sink.LogEvents)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.New(), cfg)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("invalid shape", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidShapeYAML))
		require.Error(t, err)
		var ce *errors.ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "controller.shape", ce.Param())
	})

	t.Run("invalid accept pattern", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidPatternYAML))
		require.Error(t, err)
		var ce *errors.ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "sink.accept[0]", ce.Param())
	})
}

func TestDefaults(t *testing.T) {
	cfg := config.New()
	assert.Equal(t, config.ShapeDragDrop, cfg.Controller.Shape)
	assert.False(t, cfg.Controller.Hover)
	assert.Equal(t, 2, cfg.Controller.URIListInfo)
	assert.Empty(t, cfg.Sink.Accept)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults", func(c *config.Config) {}, false},
		{"file-drop shape", func(c *config.Config) { c.Controller.Shape = config.ShapeFileDrop }, false},
		{"empty shape", func(c *config.Config) { c.Controller.Shape = "" }, true},
		{"negative info", func(c *config.Config) { c.Controller.URIListInfo = -1 }, true},
		{"empty pattern", func(c *config.Config) { c.Sink.Accept = []string{""} }, true},
		{"valid patterns", func(c *config.Config) { c.Sink.Accept = []string{"*.png", "/tmp/**"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.NewTestConfig()
	cfg.Sink.Accept = []string{"*.md"}

	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
