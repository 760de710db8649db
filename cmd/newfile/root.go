package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "newfile",
	Short: "Create consistently named files",
	Long: `newfile - create consistently named files

Names are built from a timestamp, an abbreviation, a title and a suffix,
for example 20250801_0905_CNF_Meeting_notes_v1.txt. Files start empty or
from a template whose text can be rewritten by replacement rules.

Requests can be saved as snapshots and reused later.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("newfile {{.Version}}\n")
}
