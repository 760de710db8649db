package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/newfile/internal/generator"
	"github.com/vmunix/newfile/internal/store"
	"github.com/vmunix/newfile/internal/validate"
)

var createFlags requestFlags

var (
	createRemember bool
	createSaveAs   string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new file",
	Long: `Create a new file named from the request components.

Existing files are never overwritten. With --template the template is copied,
and replacement rules (from the config, --rules or --replace) rewrite its text.`,
	Example: `  newfile create -a CNF -t "Meeting notes" -s v1
  newfile create -t Report -e .md --template report.md -r "{{date}}=YYYYMMDD"`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

var previewFlags requestFlags

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the file that create would make",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

var validateFlags requestFlags

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a request without creating anything",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

var checkCmd = &cobra.Command{
	Use:   "check [folder]",
	Short: "Check that files can be created in a folder",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	createFlags.register(createCmd)
	createCmd.Flags().BoolVar(&createRemember, "remember", false, "Store the request as last-used values in the config")
	createCmd.Flags().StringVar(&createSaveAs, "save-as", "", "Also save the request as a snapshot with this name")
	previewFlags.register(previewCmd)
	validateFlags.register(validateCmd)

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(checkCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	req, flags, err := createFlags.request(cmd, a.cfg)
	if err != nil {
		return err
	}
	rules, err := createFlags.rules(a.cfg)
	if err != nil {
		return err
	}

	job := generator.Job{Request: req, Flags: flags, Rules: rules}
	if createSaveAs != "" {
		snap := store.NewSnapshot(createSaveAs, req, flags, rules)
		if err := a.store.Save(snap); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		job.SnapshotID = snap.ID
	}

	// the snapshot is saved first so a taken name fails before any file is
	// written, and so the history entry can point at it
	res := a.gen.Run(cmd.Context(), job)
	if !res.Success && job.SnapshotID != "" {
		if err := a.store.Delete(job.SnapshotID); err != nil {
			a.log.Warn("discard snapshot failed", "snapshot", job.SnapshotID, "error", err)
		}
	}
	if res.Success && job.SnapshotID != "" {
		if err := a.store.MarkUsed(job.SnapshotID); err != nil {
			a.log.Warn("mark snapshot used failed", "snapshot", job.SnapshotID, "error", err)
		}
	}
	if res.Success && createRemember {
		a.cfg.Remember(req, rules)
		if _, err := a.saveConfig(); err != nil {
			return err
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

func runPreview(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	req, flags, err := previewFlags.request(cmd, a.cfg)
	if err != nil {
		return err
	}

	p, err := a.gen.Preview(req, flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, p)
	}
	_, _ = fmt.Fprintf(out, "Name:    %s\n", p.FileName)
	_, _ = fmt.Fprintf(out, "Path:    %s\n", p.FilePath)
	_, _ = fmt.Fprintf(out, "Exists:  %s\n", yesNo(p.Exists))
	if !p.Validation.IsValid() || len(p.Validation.Warnings) > 0 {
		_, _ = fmt.Fprintln(out, "Validation:")
		printValidation(out, p.Validation)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	req, flags, err := validateFlags.request(cmd, a.cfg)
	if err != nil {
		return err
	}
	rules, err := validateFlags.rules(a.cfg)
	if err != nil {
		return err
	}

	v := a.gen.ValidateRequest(req, flags)
	for i := range rules {
		if err := rules[i].Validate(); err != nil {
			v.AddWarning(fmt.Sprintf("rule %d (%s): %v", i+1, rules[i].String(), err))
		}
	}

	return reportValidation(cmd, v)
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	} else if cfg, _, err := loadConfig(); err == nil {
		dir = cfg.NewRequest().OutputPath
	}

	v := validate.FolderExists(dir)
	if v.IsValid() {
		v.Merge(validate.WritePermission(dir))
	}
	return reportValidation(cmd, v)
}

func reportValidation(cmd *cobra.Command, v *validate.Result) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, v); err != nil {
			return err
		}
	} else if v.IsValid() {
		_, _ = fmt.Fprintln(out, "OK")
		printValidation(out, v)
	} else {
		_, _ = fmt.Fprintln(out, "Invalid:")
		printValidation(out, v)
	}
	if !v.IsValid() {
		return errors.New("validation failed")
	}
	return nil
}
