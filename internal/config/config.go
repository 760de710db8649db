// Package config handles TOML settings loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/vmunix/newfile/internal/naming"
	"github.com/vmunix/newfile/internal/replace"
)

// Config is the root configuration structure.
type Config struct {
	General      GeneralConfig    `toml:"general"`
	Defaults     DefaultsConfig   `toml:"defaults"`
	Components   ComponentsConfig `toml:"components"`
	Presets      PresetsConfig    `toml:"presets"`
	Last         LastConfig       `toml:"last"`
	Replacements []replace.Rule   `toml:"replacements"`
}

type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
	Database string `toml:"database"`
}

// DefaultsConfig seeds new requests when nothing was used before.
type DefaultsConfig struct {
	OutputPath   string `toml:"output_path"`
	TemplatePath string `toml:"template_path,omitempty"`
	Extension    string `toml:"extension"`
}

// ComponentsConfig selects the parts of generated names. Unset keys are true.
type ComponentsConfig struct {
	DateTime     bool `toml:"date_time"`
	Abbreviation bool `toml:"abbreviation"`
	Title        bool `toml:"title"`
	Suffix       bool `toml:"suffix"`
}

// LastConfig holds the values of the most recent request.
type LastConfig struct {
	Abbreviation string `toml:"abbreviation,omitempty"`
	Title        string `toml:"title,omitempty"`
	Suffix       string `toml:"suffix,omitempty"`
	Extension    string `toml:"extension,omitempty"`
	OutputPath   string `toml:"output_path,omitempty"`
	TemplatePath string `toml:"template_path,omitempty"`
}

// ruleEntry mirrors replace.Rule with optional flags so that omitted keys
// can take their defaults.
type ruleEntry struct {
	ID            string `toml:"id"`
	Search        string `toml:"search"`
	Replace       string `toml:"replace"`
	Enabled       *bool  `toml:"enabled"`
	CaseSensitive bool   `toml:"case_sensitive"`
	Regex         bool   `toml:"regex"`
	Dynamic       *bool  `toml:"dynamic"`
	Description   string `toml:"description"`
}

// rawConfig is the decoded file before defaults are applied.
type rawConfig struct {
	General      GeneralConfig    `toml:"general"`
	Defaults     DefaultsConfig   `toml:"defaults"`
	Components   ComponentsConfig `toml:"components"`
	Presets      PresetsConfig    `toml:"presets"`
	Last         LastConfig       `toml:"last"`
	Replacements []ruleEntry      `toml:"replacements"`
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}

	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var raw rawConfig
	md, err := toml.Decode(content, &raw)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := &Config{
		General:  raw.General,
		Defaults: raw.Defaults,
		Presets:  raw.Presets,
		Last:     raw.Last,
	}
	cfg.Components = components(raw.Components, md)
	cfg.Replacements = rules(raw.Replacements)
	cfg.applyDefaults(md)

	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{Components: ComponentsConfig{DateTime: true, Abbreviation: true, Title: true, Suffix: true}}
	cfg.applyDefaults(toml.MetaData{})
	return cfg
}

func components(c ComponentsConfig, md toml.MetaData) ComponentsConfig {
	defined := func(key string) bool { return md.IsDefined("components", key) }
	if !defined("date_time") {
		c.DateTime = true
	}
	if !defined("abbreviation") {
		c.Abbreviation = true
	}
	if !defined("title") {
		c.Title = true
	}
	if !defined("suffix") {
		c.Suffix = true
	}
	return c
}

func rules(entries []ruleEntry) []replace.Rule {
	out := make([]replace.Rule, 0, len(entries))
	for _, e := range entries {
		r := replace.Rule{
			ID:            e.ID,
			SearchText:    e.Search,
			Enabled:       e.Enabled == nil || *e.Enabled,
			CaseSensitive: e.CaseSensitive,
			UseRegex:      e.Regex,
			Description:   e.Description,
		}
		r.SetReplaceText(e.Replace)
		if e.Dynamic != nil {
			r.UseDynamic = *e.Dynamic
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		out = append(out, r)
	}
	return out
}

func (c *Config) applyDefaults(md toml.MetaData) {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.Database == "" {
		c.General.Database = DefaultDatabasePath()
	}
	if c.Defaults.Extension == "" {
		c.Defaults.Extension = ".txt"
	}
	if c.Defaults.OutputPath == "" {
		if wd, err := os.Getwd(); err == nil {
			c.Defaults.OutputPath = wd
		}
	}
	c.Presets.fillDefaults(md)
}

// Flags returns the enabled name components.
func (c *Config) Flags() naming.Flags {
	return naming.Flags{
		DateTime:     c.Components.DateTime,
		Abbreviation: c.Components.Abbreviation,
		Title:        c.Components.Title,
		Suffix:       c.Components.Suffix,
	}
}

// NewRequest returns a request seeded from the last-used values, falling
// back to the configured defaults.
func (c *Config) NewRequest() *naming.Request {
	pick := func(last, def string) string {
		if strings.TrimSpace(last) != "" {
			return last
		}
		return def
	}
	return &naming.Request{
		Abbreviation: c.Last.Abbreviation,
		Title:        c.Last.Title,
		Suffix:       c.Last.Suffix,
		Extension:    pick(c.Last.Extension, c.Defaults.Extension),
		OutputPath:   pick(c.Last.OutputPath, c.Defaults.OutputPath),
		TemplatePath: pick(c.Last.TemplatePath, c.Defaults.TemplatePath),
	}
}

// Remember stores req and its rules as the last-used values.
func (c *Config) Remember(req *naming.Request, rules []replace.Rule) {
	c.Last = LastConfig{
		Abbreviation: req.Abbreviation,
		Title:        req.Title,
		Suffix:       req.Suffix,
		Extension:    req.Extension,
		OutputPath:   req.OutputPath,
		TemplatePath: req.TemplatePath,
	}
	if rules != nil {
		c.Replacements = rules
	}
}

// DefaultDatabasePath returns the XDG-compliant default database path.
func DefaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./newfile.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "newfile", "newfile.db")
}
