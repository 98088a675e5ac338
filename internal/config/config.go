package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/julianshen/firmdiag/internal/extract"
)

// Config represents the top-level firmdiag configuration.
type Config struct {
	Source  SourceConfig  `toml:"source"`
	Pins    PinsConfig    `toml:"pins"`
	Output  OutputConfig  `toml:"output"`
	Raster  RasterConfig  `toml:"raster"`
	Metrics MetricsConfig `toml:"metrics"`
}

// SourceConfig selects the firmware files to scan.
type SourceConfig struct {
	Dir              string   `toml:"dir"`
	Extensions       []string `toml:"extensions"`
	RespectGitignore bool     `toml:"respect_gitignore"`
}

// PinsConfig locates the pin configuration header. Macros overrides the
// macro name looked up for a role, keyed by role (e.g. LORA_CS).
type PinsConfig struct {
	ConfigFile string            `toml:"config_file"`
	Macros     map[string]string `toml:"macros"`
}

// OutputConfig holds the destination of each batch.
type OutputConfig struct {
	FlowchartsDir string `toml:"flowcharts_dir"`
	AdvancedDir   string `toml:"advanced_dir"`
	WiringFile    string `toml:"wiring_file"`
	StaticDir     string `toml:"static_dir"`
}

// RasterConfig holds settings for the image batch.
type RasterConfig struct {
	Font          string  `toml:"font"`
	PixelsPerUnit float64 `toml:"pixels_per_unit"`
}

// MetricsConfig enables the node-exporter textfile export when Textfile is set.
type MetricsConfig struct {
	Textfile string `toml:"textfile"`
}

const maxPixelsPerUnit = 1000

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Dir:              "src",
			Extensions:       []string{".cpp", ".h"},
			RespectGitignore: true,
		},
		Pins: PinsConfig{
			ConfigFile: "src/config.h",
		},
		Output: OutputConfig{
			FlowchartsDir: "docs/code-diagrams",
			AdvancedDir:   "docs/advanced-diagrams",
			WiringFile:    "docs/architecture-diagrams/board-wiring.mmd",
			StaticDir:     "_static",
		},
		Raster: RasterConfig{
			PixelsPerUnit: 100,
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file
// is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	var errs []error
	if c.Source.Dir == "" {
		errs = append(errs, errors.New("source.dir is empty"))
	}
	for _, ext := range c.Source.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("source.extensions: %q must start with a dot", ext))
		}
	}
	if c.Pins.ConfigFile == "" {
		errs = append(errs, errors.New("pins.config_file is empty"))
	}

	known := make(map[string]bool)
	for _, pm := range extract.DefaultPinTable() {
		known[string(pm.Role)] = true
	}
	for role := range c.Pins.Macros {
		if !known[role] {
			errs = append(errs, fmt.Errorf("pins.macros: unknown role %q", role))
		}
	}

	for _, out := range []struct{ name, value string }{
		{"output.flowcharts_dir", c.Output.FlowchartsDir},
		{"output.advanced_dir", c.Output.AdvancedDir},
		{"output.wiring_file", c.Output.WiringFile},
		{"output.static_dir", c.Output.StaticDir},
	} {
		if out.value == "" {
			errs = append(errs, fmt.Errorf("%s is empty", out.name))
		}
	}
	if strings.HasSuffix(c.Output.WiringFile, "/") {
		errs = append(errs, fmt.Errorf("output.wiring_file %q names a directory", c.Output.WiringFile))
	}
	if ppu := c.Raster.PixelsPerUnit; ppu <= 0 || ppu > maxPixelsPerUnit {
		errs = append(errs, fmt.Errorf("raster.pixels_per_unit must be in (0, %d], got %g", maxPixelsPerUnit, ppu))
	}
	return errors.Join(errs...)
}
