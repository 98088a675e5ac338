package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/julianshen/firmdiag/internal/docgen"
	"github.com/julianshen/firmdiag/internal/output"
)

func previewCmd() *cobra.Command {
	var plainFlag bool

	cmd := &cobra.Command{
		Use:       "preview <batch>",
		Short:     "Show the README of a generated batch",
		Long:      `Render the README index written by a batch in the terminal.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: docgen.BatchNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir, ok := docgenConfig(cfg, nil).BatchDir(args[0])
			if !ok {
				return fmt.Errorf("%w %q", docgen.ErrUnknownBatch, args[0])
			}

			path := filepath.Join(dir, docgen.SummaryFile)
			md, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s (run `firmdiag %s` first): %w", path, args[0], err)
			}

			w := cmd.OutOrStdout()
			styled := !plainFlag && isTerminal(w)
			width := 80
			if f, ok := w.(*os.File); ok {
				width = output.TerminalWidth(f)
			}
			rendered, err := output.Preview(string(md), width, styled)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(w, rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&plainFlag, "plain", false, "print the markdown without styling")
	return cmd
}
