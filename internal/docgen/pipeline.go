// Package docgen assembles diagram batches and writes them to disk. Each
// batch scans the firmware sources for counts, renders its fixed
// topologies and writes the artifacts plus a summary index.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianshen/firmdiag/internal/diagram"
	"github.com/julianshen/firmdiag/internal/output"
	"github.com/julianshen/firmdiag/internal/raster"
	"github.com/julianshen/firmdiag/internal/scanner"
)

// Config holds all pipeline configuration. Paths are relative to the
// working directory.
type Config struct {
	SourceDir     string
	Scan          scanner.Options
	PinConfig     string
	PinOverrides  map[string]string // role -> macro name
	FlowchartsDir string
	AdvancedDir   string
	WiringFile    string
	StaticDir     string
	Font          string // preferred TTF; empty uses the embedded fonts
	PixelsPerUnit float64
	Palette       diagram.Palette
	Progress      io.Writer // defaults to os.Stderr
}

// DefaultConfig returns the layout of the gateway firmware project.
func DefaultConfig() Config {
	return Config{
		SourceDir:     "src",
		Scan:          scanner.DefaultOptions(),
		PinConfig:     "src/config.h",
		FlowchartsDir: "docs/code-diagrams",
		AdvancedDir:   "docs/advanced-diagrams",
		WiringFile:    "docs/architecture-diagrams/board-wiring.mmd",
		StaticDir:     "_static",
		PixelsPerUnit: raster.DefaultPixelsPerUnit,
		Palette:       diagram.DefaultPalette(),
	}
}

// BatchDir returns the directory the named batch writes to.
func (c Config) BatchDir(name string) (string, bool) {
	switch name {
	case BatchFlowcharts:
		return c.FlowchartsDir, true
	case BatchAdvanced:
		return c.AdvancedDir, true
	case BatchWiring:
		return filepath.Dir(c.WiringFile), true
	case BatchStatic:
		return c.StaticDir, true
	}
	return "", false
}

// ErrUnknownBatch is returned by Run for a batch name it does not know.
var ErrUnknownBatch = errors.New("unknown batch")

// Run executes the named batches in order, or all of them when names is
// empty: build -> assemble -> write. A batch that cannot be built is
// reported and the remaining batches still run; their errors are joined.
func Run(ctx context.Context, cfg Config, names ...string) (*output.Report, error) {
	if len(names) == 0 {
		names = BatchNames()
	}
	for _, name := range names {
		if _, ok := builders[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownBatch, name)
		}
	}
	progress := cfg.Progress
	if progress == nil {
		progress = os.Stderr
	}
	if cfg.Palette == (diagram.Palette{}) {
		cfg.Palette = diagram.DefaultPalette()
	}
	if cfg.PixelsPerUnit == 0 {
		cfg.PixelsPerUnit = raster.DefaultPixelsPerUnit
	}

	report := &output.Report{}
	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		fmt.Fprintf(progress, "firmdiag: building %s...\n", name)
		br, err := runBatch(ctx, cfg, name, progress)
		report.Batches = append(report.Batches, br)
		if err != nil {
			fmt.Fprintf(progress, "firmdiag: %s failed: %v\n", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	fmt.Fprintf(progress, "firmdiag: done.\n")
	return report, errors.Join(errs...)
}

func runBatch(ctx context.Context, cfg Config, name string, progress io.Writer) (output.BatchReport, error) {
	br := output.BatchReport{Name: name}
	j, err := builders[name](ctx, cfg, progress)
	if err != nil {
		br.Error = err.Error()
		return br, err
	}

	batch := Assemble(j.batch, j.stats)
	br.Dir = batch.Dir
	br.FilesScanned = j.stats.FilesScanned
	br.Records = j.stats.RecordCount()
	br.FileErrors = len(j.stats.FileErrors)
	br.FontSource = string(j.fonts)
	br.FontFallback = j.fallback
	if j.table != nil {
		missing := len(j.pins.Missing(j.table))
		br.PinsResolved = len(j.table) - missing
		br.PinsUnresolved = missing
	}

	fmt.Fprintf(progress, "firmdiag: writing %d artifacts to %s...\n", len(batch.Artifacts), batch.Dir)
	res := Write(batch)
	br.Written = res.Written
	for _, f := range append(j.failures, res.Failures...) {
		br.Failures = append(br.Failures, output.Failure{Path: f.Path, Error: f.Err.Error()})
	}
	return br, nil
}
