// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/vmunix/newfile/internal/validate"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.General.LogLevel] {
		errs = append(errs, fmt.Sprintf("general.log_level: must be one of debug, info, warn, error; got %q", c.General.LogLevel))
	}

	if r := validate.Extension(c.Defaults.Extension); !r.IsValid() {
		errs = append(errs, fmt.Sprintf("defaults.extension: %s", strings.Join(r.Errors, "; ")))
	}
	if c.Defaults.OutputPath != "" {
		if r := validate.FolderPath(c.Defaults.OutputPath); !r.IsValid() {
			errs = append(errs, fmt.Sprintf("defaults.output_path: %s", strings.Join(r.Errors, "; ")))
		}
	}

	for _, kind := range Kinds {
		seen := map[string]bool{}
		for i, item := range c.Presets.List(kind, true) {
			key := strings.ToLower(strings.TrimSpace(item.Value))
			switch {
			case key == "":
				errs = append(errs, fmt.Sprintf("presets.%s[%d].value: required", kind, i))
			case seen[key]:
				errs = append(errs, fmt.Sprintf("presets.%s[%d].value: duplicate %q", kind, i, item.Value))
			}
			seen[key] = true
		}
	}

	for i, r := range c.Replacements {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("replacements[%d]: %v", i, err))
		}
	}

	return errs
}
