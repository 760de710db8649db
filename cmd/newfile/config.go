package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/newfile/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config syntax, presets, replacement rules and environment variable substitution.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configTestCmd, configPathCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		p, err := config.Discover()
		if err != nil {
			return err
		}
		path = p
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	_, _ = fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		_, _ = fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			_, _ = fmt.Fprintf(w, "  - %s\n", m)
		}
		_, _ = fmt.Fprintln(w)
	}

	for _, section := range e.Sections() {
		_, _ = fmt.Fprintf(w, "Errors in [%s]:\n", section)
		for _, p := range e.Problems(section) {
			if p.Setting == "" {
				_, _ = fmt.Fprintf(w, "  - %s\n", p.Message)
				continue
			}
			_, _ = fmt.Fprintf(w, "  - %s: %s\n", p.Setting, p.Message)
		}
		_, _ = fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "Configuration Summary:")
	_, _ = fmt.Fprintf(w, "  Log level:  %s\n", cfg.General.LogLevel)
	_, _ = fmt.Fprintf(w, "  Database:   %s\n", cfg.General.Database)
	_, _ = fmt.Fprintf(w, "  Output:     %s\n", cfg.Defaults.OutputPath)
	_, _ = fmt.Fprintf(w, "  Extension:  %s\n", cfg.Defaults.Extension)
	if cfg.Defaults.TemplatePath != "" {
		_, _ = fmt.Fprintf(w, "  Template:   %s\n", cfg.Defaults.TemplatePath)
	}
	for _, k := range config.Kinds {
		_, _ = fmt.Fprintf(w, "  %-11s %d\n", string(k)+":", len(cfg.Presets.List(k, true)))
	}
	_, _ = fmt.Fprintf(w, "  Rules:      %d\n", len(cfg.Replacements))
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	_, path, err := loadConfig()
	if err != nil {
		return err
	}
	if path == "" {
		path = "(none, using defaults; create one with 'newfile config init')"
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
