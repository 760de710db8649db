package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/newfile/internal/replace"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show and reorder the configured replacement rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List replacement rules in the order they run",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesMoveCmd = &cobra.Command{
	Use:   "move <n> up|down",
	Short: "Move rule n one place earlier or later",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return []string{"up", "down"}, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runRulesMove,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd, rulesMoveCmd)
}

func runRulesList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, cfg.Replacements)
	}
	if len(cfg.Replacements) == 0 {
		_, _ = fmt.Fprintln(out, "No replacement rules configured")
		return nil
	}
	for i, r := range cfg.Replacements {
		state := ""
		if !r.Enabled {
			state = " (disabled)"
		}
		_, _ = fmt.Fprintf(out, "%2d. %s%s\n", i+1, r, state)
	}
	return nil
}

func runRulesMove(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid rule number %q", args[0])
	}

	var move func([]replace.Rule, int) bool
	switch args[1] {
	case "up":
		move = replace.MoveUp
	case "down":
		move = replace.MoveDown
	default:
		return fmt.Errorf("invalid direction %q (want up or down)", args[1])
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if !move(a.cfg.Replacements, n-1) {
		return fmt.Errorf("cannot move rule %d %s (%d rules configured)", n, args[1], len(a.cfg.Replacements))
	}
	path, err := a.saveConfig()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved rule %d %s in %s\n", n, args[1], path)
	return nil
}
