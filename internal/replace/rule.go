// Package replace applies ordered find/replace rules to template text.
package replace

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rule is one find/replace step. Rules run in list order.
type Rule struct {
	ID            string    `json:"id" toml:"id" yaml:"id"`
	SearchText    string    `json:"search_text" toml:"search" yaml:"search_text"`
	ReplaceText   string    `json:"replace_text" toml:"replace" yaml:"replace_text"`
	Enabled       bool      `json:"enabled" toml:"enabled" yaml:"enabled"`
	CaseSensitive bool      `json:"case_sensitive" toml:"case_sensitive" yaml:"case_sensitive"`
	UseRegex      bool      `json:"use_regex" toml:"regex" yaml:"use_regex"`
	UseDynamic    bool      `json:"use_dynamic" toml:"dynamic" yaml:"use_dynamic"`
	Description   string    `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at" toml:"-" yaml:"created_at"`
}

// NewRule returns an enabled rule with a fresh ID. Dynamic expansion is
// switched on when replaceText contains a date/time token.
func NewRule(searchText, replaceText string) Rule {
	r := Rule{
		ID:         uuid.NewString(),
		SearchText: searchText,
		Enabled:    true,
		CreatedAt:  time.Now(),
	}
	r.SetReplaceText(replaceText)
	return r
}

// SetReplaceText sets the replacement and adjusts UseDynamic: a token turns
// it on, blank text turns it off, anything else leaves it alone.
func (r *Rule) SetReplaceText(text string) {
	r.ReplaceText = text
	switch {
	case HasDynamicToken(text):
		r.UseDynamic = true
	case strings.TrimSpace(text) == "":
		r.UseDynamic = false
	}
}

// Validate reports whether the rule can be applied.
func (r *Rule) Validate() error {
	if strings.TrimSpace(r.SearchText) == "" {
		return ErrEmptySearch
	}
	if r.UseRegex && !r.UseDynamic {
		if _, err := regexp.Compile(r.SearchText); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
	}
	return nil
}

// Clone returns a copy of r with a new ID and creation time.
func (r *Rule) Clone() Rule {
	c := *r
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	return c
}

func (r Rule) String() string {
	var mode []string
	if r.UseRegex {
		mode = append(mode, "regex")
	}
	if r.CaseSensitive {
		mode = append(mode, "case-sensitive")
	}
	if r.UseDynamic {
		mode = append(mode, "dynamic")
	}
	if !r.Enabled {
		mode = append(mode, "disabled")
	}

	s := fmt.Sprintf("%q -> %q", r.SearchText, r.ReplaceText)
	if len(mode) > 0 {
		s += " [" + strings.Join(mode, ", ") + "]"
	}
	return s
}

// MoveUp swaps rules[i] with its predecessor. It reports false when i is
// out of range or already first.
func MoveUp(rules []Rule, i int) bool {
	if i <= 0 || i >= len(rules) {
		return false
	}
	rules[i-1], rules[i] = rules[i], rules[i-1]
	return true
}

// MoveDown swaps rules[i] with its successor. It reports false when i is
// out of range or already last.
func MoveDown(rules []Rule, i int) bool {
	if i < 0 || i >= len(rules)-1 {
		return false
	}
	rules[i], rules[i+1] = rules[i+1], rules[i]
	return true
}
