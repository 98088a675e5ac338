package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/julianshen/firmdiag/internal/docgen"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string
	reportFlag string
	strictFlag bool
)

func versionString() string {
	return fmt.Sprintf("firmdiag %s (commit: %s, built: %s)", version, commit, date)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "firmdiag",
		Short: "Generate firmware documentation diagrams",
		Long: `firmdiag scans the firmware sources and pin configuration and writes
mermaid, Graphviz and PNG diagrams of the agricultural sensing network,
each batch with a README index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatches(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "firmdiag.toml", "path to config file (missing file uses defaults)")
	rootCmd.PersistentFlags().StringVar(&reportFlag, "report", "text", "run report format: text, json, markdown")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "exit non-zero when any artifact fails to render or write")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}

	rootCmd.AddCommand(versionCmd)
	for _, name := range docgen.BatchNames() {
		rootCmd.AddCommand(batchCmd(name))
	}
	rootCmd.AddCommand(previewCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
