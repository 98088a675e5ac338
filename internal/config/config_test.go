package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "src", cfg.Source.Dir)
	assert.Equal(t, []string{".cpp", ".h"}, cfg.Source.Extensions)
	assert.True(t, cfg.Source.RespectGitignore)
	assert.Equal(t, "src/config.h", cfg.Pins.ConfigFile)
	assert.Nil(t, cfg.Pins.Macros)
	assert.Equal(t, "docs/code-diagrams", cfg.Output.FlowchartsDir)
	assert.Equal(t, "docs/advanced-diagrams", cfg.Output.AdvancedDir)
	assert.Equal(t, "docs/architecture-diagrams/board-wiring.mmd", cfg.Output.WiringFile)
	assert.Equal(t, "_static", cfg.Output.StaticDir)
	assert.Equal(t, "", cfg.Raster.Font)
	assert.Equal(t, 100.0, cfg.Raster.PixelsPerUnit)
	assert.Equal(t, "", cfg.Metrics.Textfile)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	tomlContent := `
[source]
dir = "firmware"
extensions = [".cpp", ".h", ".ino"]
respect_gitignore = false

[pins]
config_file = "firmware/pins.h"
macros = { LORA_CS = "LORA_SS", DHT22 = "HUMIDITY_PIN" }

[output]
static_dir = "site/_static"

[raster]
font = "/usr/share/fonts/DejaVuSans.ttf"
pixels_per_unit = 50

[metrics]
textfile = "/var/lib/node_exporter/firmdiag.prom"
`
	tmpFile := filepath.Join(t.TempDir(), "firmdiag.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "firmware", cfg.Source.Dir)
	assert.Equal(t, []string{".cpp", ".h", ".ino"}, cfg.Source.Extensions)
	assert.False(t, cfg.Source.RespectGitignore)
	assert.Equal(t, "firmware/pins.h", cfg.Pins.ConfigFile)
	assert.Equal(t, "LORA_SS", cfg.Pins.Macros["LORA_CS"])
	assert.Equal(t, "HUMIDITY_PIN", cfg.Pins.Macros["DHT22"])
	assert.Equal(t, "site/_static", cfg.Output.StaticDir)
	assert.Equal(t, "/usr/share/fonts/DejaVuSans.ttf", cfg.Raster.Font)
	assert.Equal(t, 50.0, cfg.Raster.PixelsPerUnit)
	assert.Equal(t, "/var/lib/node_exporter/firmdiag.prom", cfg.Metrics.Textfile)
	// Defaults should still be set for fields not specified in TOML
	assert.Equal(t, "docs/code-diagrams", cfg.Output.FlowchartsDir)
	assert.Equal(t, "docs/architecture-diagrams/board-wiring.mmd", cfg.Output.WiringFile)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/firmdiag.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[invalid toml..."), 0644))

	_, err := Load(tmpFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "firmdiag.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[raster]\npixels_per_unit = -1\n"), 0644))

	_, err := Load(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
	assert.Contains(t, err.Error(), "raster.pixels_per_unit")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty source dir", mutate: func(c *Config) { c.Source.Dir = "" }, wantErr: "source.dir is empty"},
		{name: "extension without dot", mutate: func(c *Config) { c.Source.Extensions = []string{"cpp"} }, wantErr: `"cpp" must start with a dot`},
		{name: "empty pin config", mutate: func(c *Config) { c.Pins.ConfigFile = "" }, wantErr: "pins.config_file is empty"},
		{name: "unknown role", mutate: func(c *Config) { c.Pins.Macros = map[string]string{"BUZZER": "BUZ_PIN"} }, wantErr: `unknown role "BUZZER"`},
		{name: "known role", mutate: func(c *Config) { c.Pins.Macros = map[string]string{"GPS_TX": "GPS_TXD"} }},
		{name: "empty static dir", mutate: func(c *Config) { c.Output.StaticDir = "" }, wantErr: "output.static_dir is empty"},
		{name: "wiring file is a directory", mutate: func(c *Config) { c.Output.WiringFile = "docs/" }, wantErr: "names a directory"},
		{name: "zero scale", mutate: func(c *Config) { c.Raster.PixelsPerUnit = 0 }, wantErr: "raster.pixels_per_unit"},
		{name: "huge scale", mutate: func(c *Config) { c.Raster.PixelsPerUnit = 5000 }, wantErr: "raster.pixels_per_unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
