package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig matches any *ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid newfile configuration")

// ConfigError reports everything wrong with a newfile config file: ${VAR}
// references that could not be resolved and settings that failed
// validation. Validation messages have the form "section.key: problem",
// for example "defaults.extension: ..." or "replacements[2]: ...".
type ConfigError struct {
	Path    string
	Missing []string
	Errors  []string
}

// Problem is one validation message split into its setting and text.
type Problem struct {
	Section string // general, defaults, presets, replacements, ...
	Setting string // key within the section, may be empty
	Message string
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	parts := []string{fmt.Sprintf("newfile config %s:", e.Path)}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing environment variables: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		parts = append(parts, "validation failed:")
		for _, section := range e.Sections() {
			parts = append(parts, fmt.Sprintf("  [%s]", section))
			for _, p := range e.Problems(section) {
				if p.Setting == "" {
					parts = append(parts, "    - "+p.Message)
					continue
				}
				parts = append(parts, fmt.Sprintf("    - %s: %s", p.Setting, p.Message))
			}
		}
	}
	return strings.Join(parts, "\n")
}

// Is lets callers test for ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// HasErrors returns true if there are any errors.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

// Sections lists the config sections with validation problems, in the order
// they were reported.
func (e *ConfigError) Sections() []string {
	var out []string
	seen := map[string]bool{}
	for _, msg := range e.Errors {
		s := parseProblem(msg).Section
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Problems returns the validation problems reported for section.
func (e *ConfigError) Problems(section string) []Problem {
	var out []Problem
	for _, msg := range e.Errors {
		if p := parseProblem(msg); p.Section == section {
			out = append(out, p)
		}
	}
	return out
}

func parseProblem(msg string) Problem {
	key, text, ok := strings.Cut(msg, ": ")
	if !ok || strings.ContainsAny(key, " \t") {
		return Problem{Section: "config", Message: msg}
	}
	i := strings.IndexAny(key, ".[")
	if i < 0 {
		return Problem{Section: key, Message: text}
	}
	return Problem{Section: key[:i], Setting: strings.TrimPrefix(key[i:], "."), Message: text}
}
