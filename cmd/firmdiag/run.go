package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/julianshen/firmdiag/internal/config"
	"github.com/julianshen/firmdiag/internal/docgen"
	"github.com/julianshen/firmdiag/internal/metrics"
	"github.com/julianshen/firmdiag/internal/output"
	"github.com/julianshen/firmdiag/internal/scanner"
)

var batchShort = map[string]string{
	docgen.BatchFlowcharts: "Write the main flow, class and sequence diagrams",
	docgen.BatchAdvanced:   "Write the advanced flow, call graph, data flow, state and DOT diagrams",
	docgen.BatchWiring:     "Write the board wiring diagram from the pin configuration",
	docgen.BatchStatic:     "Render the architecture, data flow, voltage reader and logo images",
}

func batchCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: batchShort[name],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatches(cmd, name)
		},
	}
}

// loadConfig loads the config file named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// docgenConfig maps the file configuration onto the pipeline.
func docgenConfig(cfg *config.Config, progress io.Writer) docgen.Config {
	d := docgen.DefaultConfig()
	d.SourceDir = cfg.Source.Dir
	d.Scan = scanner.Options{
		Extensions:       cfg.Source.Extensions,
		RespectGitignore: cfg.Source.RespectGitignore,
	}
	d.PinConfig = cfg.Pins.ConfigFile
	d.PinOverrides = cfg.Pins.Macros
	d.FlowchartsDir = cfg.Output.FlowchartsDir
	d.AdvancedDir = cfg.Output.AdvancedDir
	d.WiringFile = cfg.Output.WiringFile
	d.StaticDir = cfg.Output.StaticDir
	d.Font = cfg.Raster.Font
	d.PixelsPerUnit = cfg.Raster.PixelsPerUnit
	d.Progress = progress
	return d
}

// runBatches runs the named batches (all when none are named), prints the
// report and exports metrics. Per-artifact failures only show up in the
// report unless --strict is set; a batch that could not be built always
// makes the command fail.
func runBatches(cmd *cobra.Command, names ...string) error {
	formatter, ok := output.NewFormatter(reportFlag, isTerminal(cmd.OutOrStdout()))
	if !ok {
		return fmt.Errorf("unknown report format %q", reportFlag)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, runErr := docgen.Run(cmd.Context(), docgenConfig(cfg, cmd.ErrOrStderr()), names...)
	if report == nil {
		return runErr
	}

	out, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if cfg.Metrics.Textfile != "" {
		reg := metrics.NewRegistry()
		reg.Observe(report, time.Now())
		if err := reg.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Printf("WARNING: metrics: %v", err)
		}
	}
	if runErr != nil {
		return runErr
	}
	return strictError(report, strictFlag)
}

// strictError gates the exit status on artifact failures when strict is set.
func strictError(report *output.Report, strict bool) error {
	if !strict {
		return nil
	}
	if _, failed := report.Totals(); failed > 0 {
		return fmt.Errorf("%d artifacts failed", failed)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && output.IsTerminal(f)
}
