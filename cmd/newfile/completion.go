package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/newfile/internal/config"
	"github.com/vmunix/newfile/internal/store"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for newfile.

Bash:
  $ source <(newfile completion bash)

Zsh:
  $ newfile completion zsh > "${fpath[1]}/_newfile"

Fish:
  $ newfile completion fish > ~/.config/fish/completions/newfile.fish

PowerShell:
  PS> newfile completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, c := range []*cobra.Command{snapshotShowCmd, snapshotDeleteCmd, snapshotUseCmd, snapshotFavoriteCmd} {
		c.ValidArgsFunction = completeSnapshotNames(1)
	}
	batchCmd.ValidArgsFunction = completeSnapshotNames(-1)
	for _, c := range []*cobra.Command{presetListCmd, presetAddCmd, presetRemoveCmd} {
		c.ValidArgsFunction = completePresetKinds
	}
}

// completeSnapshotNames offers saved snapshot names for up to limit
// positional arguments; a negative limit means any number.
func completeSnapshotNames(limit int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if limit >= 0 && len(args) >= limit {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		a, err := newApp(true)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer a.Close()

		snaps, err := a.store.List(store.Filter{})
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var names []string
		for _, s := range snaps {
			if strings.HasPrefix(strings.ToLower(s.Name), strings.ToLower(toComplete)) {
				names = append(names, s.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func completePresetKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	kinds := make([]string, len(config.Kinds))
	for i, k := range config.Kinds {
		kinds[i] = string(k)
	}
	return kinds, cobra.ShellCompDirectiveNoFileComp
}
