package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/newfile/internal/config"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage preset values for abbreviations, titles, suffixes and extensions",
}

var presetListAll bool

var presetListCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List presets",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPresetList,
}

var (
	presetAddDescription string
	presetAddFavorite    bool
)

var presetAddCmd = &cobra.Command{
	Use:   "add <kind> <value>",
	Short: "Add a preset",
	Args:  cobra.ExactArgs(2),
	RunE:  runPresetAdd,
}

var presetRemoveCmd = &cobra.Command{
	Use:     "remove <kind> <value>",
	Aliases: []string{"rm"},
	Short:   "Remove a preset",
	Args:    cobra.ExactArgs(2),
	RunE:    runPresetRemove,
}

func init() {
	presetListCmd.Flags().BoolVar(&presetListAll, "all", false, "Include disabled presets")
	presetAddCmd.Flags().StringVar(&presetAddDescription, "description", "", "Description")
	presetAddCmd.Flags().BoolVar(&presetAddFavorite, "favorite", false, "Mark as favorite")

	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd, presetAddCmd, presetRemoveCmd)
}

func runPresetList(cmd *cobra.Command, args []string) error {
	kinds := config.Kinds
	if len(args) > 0 {
		k, err := config.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []config.Kind{k}
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		m := make(map[config.Kind][]config.PresetItem, len(kinds))
		for _, k := range kinds {
			m[k] = cfg.Presets.List(k, presetListAll)
		}
		return printJSON(out, m)
	}

	for _, k := range kinds {
		_, _ = fmt.Fprintf(out, "%s:\n", k)
		items := cfg.Presets.List(k, presetListAll)
		if len(items) == 0 {
			_, _ = fmt.Fprintln(out, "  (none)")
		}
		for _, item := range items {
			mark := " "
			if item.Favorite {
				mark = "*"
			}
			line := fmt.Sprintf("  %s %s", mark, item.Value)
			if item.Description != "" {
				line += "  - " + item.Description
			}
			if item.Disabled {
				line += " (disabled)"
			}
			_, _ = fmt.Fprintln(out, line)
		}
	}
	return nil
}

func runPresetAdd(cmd *cobra.Command, args []string) error {
	kind, err := config.ParseKind(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	item, err := a.cfg.Presets.Add(kind, args[1], presetAddDescription)
	if err != nil {
		return err
	}
	if presetAddFavorite {
		if err := a.cfg.Presets.SetFavorite(kind, item.Value, true); err != nil {
			return err
		}
	}
	path, err := a.saveConfig()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q to %s\n", kind, item.Value, path)
	return nil
}

func runPresetRemove(cmd *cobra.Command, args []string) error {
	kind, err := config.ParseKind(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.Presets.Remove(kind, args[1]); err != nil {
		return err
	}
	path, err := a.saveConfig()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %q from %s\n", kind, args[1], path)
	return nil
}
