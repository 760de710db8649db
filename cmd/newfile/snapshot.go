package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/newfile/internal/naming"
	"github.com/vmunix/newfile/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"snap"},
	Short:   "Manage saved requests",
}

var (
	snapListFavorites bool
	snapListSort      string
	snapListDesc      bool
	snapListLimit     int
)

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotShow,
}

var (
	snapSaveFlags       requestFlags
	snapSaveTags        []string
	snapSaveDescription string
	snapSaveFavorite    bool
)

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a request as a snapshot",
	Long: `Save a request as a snapshot. Fields not given as flags come from the
config's last-used values and defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshotSave,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:     "delete <name|id>",
	Aliases: []string{"rm"},
	Short:   "Delete a snapshot",
	Args:    cobra.ExactArgs(1),
	RunE:    runSnapshotDelete,
}

var (
	snapSearchFavorites bool
	snapSearchLimit     int
)

var snapshotSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search snapshots by name, components, description or tags",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotSearch,
}

var snapshotUseCmd = &cobra.Command{
	Use:   "use <name|id>",
	Short: "Create a file from a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotUse,
}

var snapshotFavoriteCmd = &cobra.Command{
	Use:   "favorite <name|id>",
	Short: "Toggle a snapshot's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotFavorite,
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export <file> [name|id...]",
	Short: "Export snapshots to a .json or .yaml file (all when none given)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSnapshotExport,
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import snapshots from a .json or .yaml file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotImport,
}

func init() {
	snapshotListCmd.Flags().BoolVar(&snapListFavorites, "favorites", false, "Only favorites")
	snapshotListCmd.Flags().StringVar(&snapListSort, "sort", "name", "Sort by name, created, modified, usage or last_used")
	snapshotListCmd.Flags().BoolVar(&snapListDesc, "desc", false, "Sort descending")
	snapshotListCmd.Flags().IntVar(&snapListLimit, "limit", 0, "Maximum results (0 for all)")

	snapSaveFlags.register(snapshotSaveCmd)
	snapshotSaveCmd.Flags().StringSliceVar(&snapSaveTags, "tag", nil, "Tag (repeatable)")
	snapshotSaveCmd.Flags().StringVar(&snapSaveDescription, "description", "", "Description")
	snapshotSaveCmd.Flags().BoolVar(&snapSaveFavorite, "favorite", false, "Mark as favorite")

	snapshotSearchCmd.Flags().BoolVar(&snapSearchFavorites, "favorites", false, "Only favorites")
	snapshotSearchCmd.Flags().IntVar(&snapSearchLimit, "limit", 0, "Maximum results (0 for all)")

	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotListCmd, snapshotShowCmd, snapshotSaveCmd, snapshotDeleteCmd,
		snapshotSearchCmd, snapshotUseCmd, snapshotFavoriteCmd, snapshotExportCmd, snapshotImportCmd)
}

// resolveSnapshot finds ref by ID or name and suggests close names on a miss.
func resolveSnapshot(a *app, ref string) (*store.Snapshot, error) {
	snap, err := a.store.Resolve(ref)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	msg := fmt.Sprintf("snapshot %q not found", ref)
	if names, serr := a.store.Suggest(ref, 3); serr == nil && len(names) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(names, ", "))
	}
	return nil, fmt.Errorf("%s: %w", msg, store.ErrNotFound)
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	sort, err := store.ParseSortField(snapListSort)
	if err != nil {
		return err
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	snaps, err := a.store.List(store.Filter{
		Favorites: snapListFavorites,
		Sort:      sort,
		Desc:      snapListDesc,
		Limit:     snapListLimit,
	})
	if err != nil {
		return err
	}
	return printSnapshots(cmd.OutOrStdout(), snaps)
}

func printSnapshots(w io.Writer, snaps []*store.Snapshot) error {
	if jsonOutput {
		if snaps == nil {
			snaps = []*store.Snapshot{}
		}
		return printJSON(w, snaps)
	}
	if len(snaps) == 0 {
		_, _ = fmt.Fprintln(w, "No snapshots")
		return nil
	}

	_, _ = fmt.Fprintf(w, "%-3s %-24s %-40s %5s  %s\n", "", "NAME", "FILE", "USED", "LAST USED")
	for _, s := range snaps {
		fav := ""
		if s.Favorite {
			fav = "*"
		}
		name, err := naming.GenerateFileName(s.ToRequest(), s.Flags)
		if err != nil {
			name = "(" + err.Error() + ")"
		}
		last := "-"
		if s.LastUsed != nil {
			last = s.LastUsed.Format("2006-01-02 15:04")
		}
		_, _ = fmt.Fprintf(w, "%-3s %-24s %-40s %5d  %s\n", fav, truncate(s.Name, 24), truncate(name, 40), s.UsageCount, last)
	}
	return nil
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := resolveSnapshot(a, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, snap)
	}
	printSnapshot(out, snap)
	return nil
}

func printSnapshot(w io.Writer, s *store.Snapshot) {
	var parts []string
	for _, p := range []struct {
		on   bool
		name string
	}{
		{s.Flags.DateTime, "date"}, {s.Flags.Abbreviation, "abbreviation"},
		{s.Flags.Title, "title"}, {s.Flags.Suffix, "suffix"},
	} {
		if p.on {
			parts = append(parts, p.name)
		}
	}

	_, _ = fmt.Fprintf(w, "Name:         %s\n", s.Name)
	_, _ = fmt.Fprintf(w, "ID:           %s\n", s.ID)
	_, _ = fmt.Fprintf(w, "Abbreviation: %s\n", s.Request.Abbreviation)
	_, _ = fmt.Fprintf(w, "Title:        %s\n", s.Request.Title)
	_, _ = fmt.Fprintf(w, "Suffix:       %s\n", s.Request.Suffix)
	_, _ = fmt.Fprintf(w, "Extension:    %s\n", s.Request.Extension)
	_, _ = fmt.Fprintf(w, "Output:       %s\n", s.Request.OutputPath)
	if s.Request.TemplatePath != "" {
		_, _ = fmt.Fprintf(w, "Template:     %s\n", s.Request.TemplatePath)
	}
	_, _ = fmt.Fprintf(w, "Components:   %s\n", joinOrDash(parts))
	_, _ = fmt.Fprintf(w, "Tags:         %s\n", joinOrDash(s.Tags))
	if s.Description != "" {
		_, _ = fmt.Fprintf(w, "Description:  %s\n", s.Description)
	}
	_, _ = fmt.Fprintf(w, "Favorite:     %s\n", yesNo(s.Favorite))
	_, _ = fmt.Fprintf(w, "Used:         %d\n", s.UsageCount)
	if len(s.Rules) > 0 {
		_, _ = fmt.Fprintln(w, "Rules:")
		for i, r := range s.Rules {
			_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, r)
		}
	}
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	req, flags, err := snapSaveFlags.request(cmd, a.cfg)
	if err != nil {
		return err
	}
	rules, err := snapSaveFlags.rules(a.cfg)
	if err != nil {
		return err
	}

	snap := store.NewSnapshot(args[0], req, flags, rules)
	snap.Tags = snapSaveTags
	snap.Description = snapSaveDescription
	snap.Favorite = snapSaveFavorite

	if err := a.store.Save(snap); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("a snapshot named %q already exists", snap.Name)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, snap)
	}
	_, _ = fmt.Fprintf(out, "Saved snapshot %q (%s)\n", snap.Name, snap.ID)
	return nil
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := resolveSnapshot(a, args[0])
	if err != nil {
		return err
	}
	if err := a.store.Delete(snap.ID); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, map[string]string{"deleted": snap.ID})
	}
	_, _ = fmt.Fprintf(out, "Deleted snapshot %q\n", snap.Name)
	return nil
}

func runSnapshotSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	snaps, err := a.store.Search(args[0], store.SearchOptions{
		Favorites: snapSearchFavorites,
		Limit:     snapSearchLimit,
	})
	if err != nil {
		return err
	}
	return printSnapshots(cmd.OutOrStdout(), snaps)
}

func runSnapshotUse(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := resolveSnapshot(a, args[0])
	if err != nil {
		return err
	}

	res := a.gen.Run(cmd.Context(), snap.Job())
	if res.Success {
		if err := a.store.MarkUsed(snap.ID); err != nil {
			a.log.Warn("mark snapshot used failed", "snapshot", snap.ID, "error", err)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, res); err != nil {
			return err
		}
	} else {
		printResult(out, res)
	}
	if !res.Success {
		return errors.New("file not created")
	}
	return nil
}

func runSnapshotFavorite(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := resolveSnapshot(a, args[0])
	if err != nil {
		return err
	}
	fav, err := a.store.ToggleFavorite(snap.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, map[string]any{"id": snap.ID, "favorite": fav})
	}
	if fav {
		_, _ = fmt.Fprintf(out, "%q is now a favorite\n", snap.Name)
	} else {
		_, _ = fmt.Fprintf(out, "%q is no longer a favorite\n", snap.Name)
	}
	return nil
}

func runSnapshotExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	path, refs := args[0], args[1:]
	out := cmd.OutOrStdout()
	if len(refs) == 0 {
		n, err := a.store.ExportAll(path)
		if err != nil {
			return err
		}
		return reportExport(out, path, n)
	}

	var snaps []*store.Snapshot
	for _, ref := range refs {
		snap, err := resolveSnapshot(a, ref)
		if err != nil {
			return err
		}
		snaps = append(snaps, snap)
	}

	if err := store.Export(path, snaps); err != nil {
		return err
	}
	return reportExport(out, path, len(snaps))
}

func reportExport(w io.Writer, path string, n int) error {
	if jsonOutput {
		return printJSON(w, map[string]any{"file": path, "exported": n})
	}
	_, _ = fmt.Fprintf(w, "Exported %d snapshot(s) to %s\n", n, path)
	return nil
}

func runSnapshotImport(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	imported, err := a.store.ImportFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, imported)
	}
	_, _ = fmt.Fprintf(out, "Imported %d snapshot(s)\n", len(imported))
	for _, s := range imported {
		_, _ = fmt.Fprintf(out, "  %s\n", s.Name)
	}
	return nil
}
