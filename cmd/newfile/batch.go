package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/newfile/internal/generator"
	"github.com/vmunix/newfile/internal/store"
)

var batchParallel int

var batchCmd = &cobra.Command{
	Use:   "batch <name|id>...",
	Short: "Create one file per snapshot, in parallel",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchParallel, "parallel", "p", 4, "Maximum files created at once")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	snaps := make([]*store.Snapshot, 0, len(args))
	jobs := make([]generator.Job, 0, len(args))
	for _, ref := range args {
		snap, err := resolveSnapshot(a, ref)
		if err != nil {
			return err
		}
		snaps = append(snaps, snap)
		jobs = append(jobs, snap.Job())
	}

	results := a.gen.CreateBatch(cmd.Context(), jobs, batchParallel)

	failed := 0
	for i, res := range results {
		if !res.Success {
			failed++
			continue
		}
		if err := a.store.MarkUsed(snaps[i].ID); err != nil {
			a.log.Warn("mark snapshot used failed", "snapshot", snaps[i].ID, "error", err)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, results); err != nil {
			return err
		}
	} else {
		for i, res := range results {
			_, _ = fmt.Fprintf(out, "%s: ", snaps[i].Name)
			printResult(out, res)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files not created", failed, len(results))
	}
	return nil
}
