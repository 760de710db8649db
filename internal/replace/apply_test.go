package replace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		rules   []Rule
		want    string
	}{
		{
			name:    "literal case-insensitive by default",
			content: "Hello hello HELLO",
			rules:   []Rule{{SearchText: "hello", ReplaceText: "bye", Enabled: true}},
			want:    "bye bye bye",
		},
		{
			name:    "literal case-sensitive",
			content: "Hello hello HELLO",
			rules:   []Rule{{SearchText: "hello", ReplaceText: "bye", Enabled: true, CaseSensitive: true}},
			want:    "Hello bye HELLO",
		},
		{
			name:    "literal metacharacters are not patterns",
			content: "cost: $1.00 (approx)",
			rules:   []Rule{{SearchText: "$1.00 (approx)", ReplaceText: "$2", Enabled: true}},
			want:    "cost: $2",
		},
		{
			name:    "regex replacement is literal",
			content: "v1.2 and V3.4",
			rules:   []Rule{{SearchText: `v(\d)\.(\d)`, ReplaceText: "version $1-$2", Enabled: true, UseRegex: true}},
			want:    "version $1-$2 and version $1-$2",
		},
		{
			name:    "regex keeps dollar words",
			content: "cost: PRICE_42",
			rules:   []Rule{{SearchText: `PRICE_\d+`, ReplaceText: "$PRICE USD", Enabled: true, UseRegex: true}},
			want:    "cost: $PRICE USD",
		},
		{
			name:    "regex case-sensitive",
			content: "v1 V2",
			rules:   []Rule{{SearchText: `v\d`, ReplaceText: "x", Enabled: true, UseRegex: true, CaseSensitive: true}},
			want:    "x V2",
		},
		{
			name:    "regex does not expand tokens",
			content: "date: {d}",
			rules:   []Rule{{SearchText: `\{d\}`, ReplaceText: "YYYYMMDD_HHMM", Enabled: true, UseRegex: true}},
			want:    "date: YYYYMMDD_HHMM",
		},
		{
			name:    "dynamic",
			content: "Created {{DATE}} due {{due}}",
			rules: []Rule{
				{SearchText: " {{date}} ", ReplaceText: " YYYYMMDD_HHMM ", Enabled: true, UseDynamic: true},
				{SearchText: "{{due}}", ReplaceText: "YYYYMMDD_HHMM+60", Enabled: true, UseDynamic: true},
			},
			want: "Created 20250115_1030 due 20250115_1130",
		},
		{
			name:    "disabled and blank rules skipped",
			content: "abc",
			rules: []Rule{
				{SearchText: "a", ReplaceText: "x", Enabled: false},
				{SearchText: "  ", ReplaceText: "y", Enabled: true},
				{SearchText: "c", ReplaceText: "z", Enabled: true},
			},
			want: "abz",
		},
		{
			name:    "rules are cumulative",
			content: "one",
			rules: []Rule{
				{SearchText: "one", ReplaceText: "two", Enabled: true},
				{SearchText: "two", ReplaceText: "three", Enabled: true},
			},
			want: "three",
		},
		{
			name:    "no rules",
			content: "unchanged",
			want:    "unchanged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := Apply(tt.content, tt.rules, baseTime)
			assert.Empty(t, skipped)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_InvalidRegexSkipped(t *testing.T) {
	rules := []Rule{
		{SearchText: "([", ReplaceText: "x", Enabled: true, UseRegex: true},
		{SearchText: "world", ReplaceText: "there", Enabled: true},
	}

	got, skipped := Apply("hello world", rules, baseTime)
	assert.Equal(t, "hello there", got)
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], ErrInvalidPattern)
}

func TestApply_BadOffsetSkipped(t *testing.T) {
	rules := []Rule{
		{SearchText: "{d}", ReplaceText: "YYYYMMDD_HHMM+99999999999999999999", Enabled: true, UseDynamic: true},
		{SearchText: "{e}", ReplaceText: "YYYYMMDD_HHMM", Enabled: true, UseDynamic: true},
	}

	got, skipped := Apply("{d} {e}", rules, baseTime)
	assert.Equal(t, "{d} 20250115_1030", got)
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], ErrOffsetOutOfRange)
}

func TestApply_ZeroBaseUsesNow(t *testing.T) {
	rules := []Rule{{SearchText: "@", ReplaceText: "YYYYMMDD_HHMM", Enabled: true, UseDynamic: true}}

	got, _ := Apply("@", rules, time.Time{})
	ts, err := time.ParseInLocation("20060102_1504", got, time.Local)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, 2*time.Minute)
}

func TestApply_DoesNotMutateRules(t *testing.T) {
	rules := []Rule{{SearchText: "a", ReplaceText: "b", Enabled: true}}
	_, _ = Apply("a", rules, baseTime)
	assert.Equal(t, Rule{SearchText: "a", ReplaceText: "b", Enabled: true}, rules[0])
}
