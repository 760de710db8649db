// Package naming builds file names from request components and checks that
// a request can be materialized.
package naming

import (
	"fmt"
	"strings"
	"time"
)

// Request describes one file to create.
type Request struct {
	DateTime     time.Time `json:"date_time" yaml:"date_time"`
	Abbreviation string    `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
	Title        string    `json:"title,omitempty" yaml:"title,omitempty"`
	Suffix       string    `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Extension    string    `json:"extension" yaml:"extension"`
	OutputPath   string    `json:"output_path" yaml:"output_path"`
	TemplatePath string    `json:"template_path,omitempty" yaml:"template_path,omitempty"`
}

// Flags selects which components appear in a generated name.
type Flags struct {
	DateTime     bool `json:"date_time" toml:"date_time" yaml:"date_time"`
	Abbreviation bool `json:"abbreviation" toml:"abbreviation" yaml:"abbreviation"`
	Title        bool `json:"title" toml:"title" yaml:"title"`
	Suffix       bool `json:"suffix" toml:"suffix" yaml:"suffix"`
}

// DefaultFlags enables every component.
func DefaultFlags() Flags {
	return Flags{DateTime: true, Abbreviation: true, Title: true, Suffix: true}
}

// Time returns the request's timestamp, or the current time if unset.
func (r *Request) Time() time.Time {
	if r.DateTime.IsZero() {
		return time.Now()
	}
	return r.DateTime
}

// HasTemplate reports whether a template path is set.
func (r *Request) HasTemplate() bool {
	return strings.TrimSpace(r.TemplatePath) != ""
}

// Validate checks the request's own invariants without touching the
// filesystem and returns the first violation.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Abbreviation) == "" && strings.TrimSpace(r.Title) == "" {
		return ErrNameOrTitleRequired
	}
	if strings.TrimSpace(r.Extension) == "" {
		return ErrExtensionRequired
	}
	if strings.TrimSpace(r.OutputPath) == "" {
		return ErrOutputPathRequired
	}
	return nil
}

// Clone returns a copy of r.
func (r *Request) Clone() *Request {
	c := *r
	return &c
}

// String summarizes the request for logs and listings.
func (r *Request) String() string {
	var parts []string
	for _, s := range []string{r.Abbreviation, r.Title, r.Suffix} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return fmt.Sprintf("%s - %s%s", r.Time().Format("2006-01-02 15:04"), strings.Join(parts, "_"), NormalizeExtension(r.Extension))
}
