package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently created files",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries (0 for all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all history entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if historyClear {
		n, err := a.history.Clear(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, map[string]int64{"cleared": n})
		}
		_, _ = fmt.Fprintf(out, "Cleared %d entries\n", n)
		return nil
	}

	entries, err := a.history.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(out, entries)
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No files created yet")
		return nil
	}
	for _, e := range entries {
		tmpl := ""
		if e.UsedTemplate {
			tmpl = " (template)"
		}
		_, _ = fmt.Fprintf(out, "%s  %s%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.FilePath, tmpl)
	}
	return nil
}
