package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/newfile/internal/config"
	"github.com/vmunix/newfile/internal/naming"
	"github.com/vmunix/newfile/internal/replace"
)

// requestFlags binds the request fields shared by create, preview,
// validate and snapshot save.
type requestFlags struct {
	abbreviation string
	title        string
	suffix       string
	extension    string
	output       string
	template     string
	date         string

	noDate         bool
	noAbbreviation bool
	noTitle        bool
	noSuffix       bool

	rulesFile    string
	replacements []string
	noRules      bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.abbreviation, "abbr", "a", "", "Abbreviation component")
	fs.StringVarP(&f.title, "title", "t", "", "Title component")
	fs.StringVarP(&f.suffix, "suffix", "s", "", "Suffix component")
	fs.StringVarP(&f.extension, "ext", "e", "", "File extension (default from config)")
	fs.StringVarP(&f.output, "output", "o", "", "Output folder (default from config)")
	fs.StringVar(&f.template, "template", "", "Template file to copy")
	fs.StringVar(&f.date, "date", "", `Timestamp, e.g. "2025-08-01 09:05" (default now)`)

	fs.BoolVar(&f.noDate, "no-date", false, "Leave the timestamp out of the name")
	fs.BoolVar(&f.noAbbreviation, "no-abbr", false, "Leave the abbreviation out of the name")
	fs.BoolVar(&f.noTitle, "no-title", false, "Leave the title out of the name")
	fs.BoolVar(&f.noSuffix, "no-suffix", false, "Leave the suffix out of the name")

	fs.StringVar(&f.rulesFile, "rules", "", "TOML file of replacement rules for the template")
	fs.StringArrayVarP(&f.replacements, "replace", "r", nil, "Replacement rule FIND=REPLACE (repeatable)")
	fs.BoolVar(&f.noRules, "no-rules", false, "Ignore replacement rules from the config")
}

// request builds a request from the config's last-used values and defaults,
// overridden by any flag given on the command line.
func (f *requestFlags) request(cmd *cobra.Command, cfg *config.Config) (*naming.Request, naming.Flags, error) {
	req := cfg.NewRequest()
	changed := cmd.Flags().Changed

	if changed("abbr") {
		req.Abbreviation = f.abbreviation
	}
	if changed("title") {
		req.Title = f.title
	}
	if changed("suffix") {
		req.Suffix = f.suffix
	}
	if changed("ext") {
		req.Extension = f.extension
	}
	if changed("output") {
		req.OutputPath = f.output
	}
	if changed("template") {
		req.TemplatePath = f.template
	}
	if f.date != "" {
		t, err := parseDate(f.date)
		if err != nil {
			return nil, naming.Flags{}, err
		}
		req.DateTime = t
	}

	flags := cfg.Flags()
	if f.noDate {
		flags.DateTime = false
	}
	if f.noAbbreviation {
		flags.Abbreviation = false
	}
	if f.noTitle {
		flags.Title = false
	}
	if f.noSuffix {
		flags.Suffix = false
	}
	return req, flags, nil
}

// rules returns the rule list: a --rules file replaces the configured rules,
// --replace rules are appended.
func (f *requestFlags) rules(cfg *config.Config) ([]replace.Rule, error) {
	var rules []replace.Rule
	switch {
	case f.rulesFile != "":
		loaded, err := config.LoadRules(f.rulesFile)
		if err != nil {
			return nil, err
		}
		rules = loaded
	case !f.noRules:
		rules = append(rules, cfg.Replacements...)
	}

	for _, arg := range f.replacements {
		r, err := parseReplace(arg)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// parseReplace parses FIND=REPLACE. The first '=' separates the two.
func parseReplace(arg string) (replace.Rule, error) {
	find, repl, ok := strings.Cut(arg, "=")
	if !ok {
		return replace.Rule{}, fmt.Errorf("invalid replacement %q: expected FIND=REPLACE", arg)
	}
	r := replace.NewRule(find, repl)
	if err := r.Validate(); err != nil {
		return replace.Rule{}, fmt.Errorf("invalid replacement %q: %w", arg, err)
	}
	return r, nil
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	naming.DefaultDateLayout,
	"2006-01-02",
}

// parseDate accepts the timestamp layouts above in local time, or "now".
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "now") {
		return time.Now(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD HH:MM", s)
}
