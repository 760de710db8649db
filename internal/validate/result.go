// Package validate provides file-name, path and input checks that report
// problems as accumulated messages instead of failing fast.
package validate

import (
	"strings"
)

// Result accumulates validation errors and warnings.
// A Result is valid when it holds no errors; warnings never block.
type Result struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Success returns an empty, valid result.
func Success() *Result {
	return &Result{}
}

// Failure returns a result holding the given error messages.
// Blank messages are dropped.
func Failure(msgs ...string) *Result {
	r := &Result{}
	for _, m := range msgs {
		r.AddError(m)
	}
	return r
}

// AddError records an error message. Blank messages are ignored.
func (r *Result) AddError(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	r.Errors = append(r.Errors, msg)
}

// AddWarning records a warning message. Blank messages are ignored.
func (r *Result) AddWarning(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	r.Warnings = append(r.Warnings, msg)
}

// IsValid reports whether no errors were recorded.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// HasErrors returns true if there are any errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Merge appends all messages of other into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Err returns r as an error when it holds errors, nil otherwise.
func (r *Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return r
}

func (r *Result) Error() string {
	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		return ""
	}

	var parts []string

	if len(r.Errors) > 0 {
		parts = append(parts, "errors:")
		for _, e := range r.Errors {
			parts = append(parts, "  - "+e)
		}
	}

	if len(r.Warnings) > 0 {
		parts = append(parts, "warnings:")
		for _, w := range r.Warnings {
			parts = append(parts, "  - "+w)
		}
	}

	return strings.Join(parts, "\n")
}

// Combine merges independent results into one. The combined result is valid
// only if every input is valid; warnings are carried over.
func Combine(results ...*Result) *Result {
	out := &Result{}
	for _, r := range results {
		out.Merge(r)
	}
	return out
}
