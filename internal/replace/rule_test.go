package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRule(t *testing.T) {
	r := NewRule("{{date}}", "YYYYMMDD_HHMM")
	assert.NotEmpty(t, r.ID)
	assert.True(t, r.Enabled)
	assert.True(t, r.UseDynamic)
	assert.False(t, r.CreatedAt.IsZero())

	plain := NewRule("foo", "bar")
	assert.False(t, plain.UseDynamic)
	assert.NotEqual(t, r.ID, plain.ID)
}

func TestRule_SetReplaceText(t *testing.T) {
	r := NewRule("x", "plain")
	r.SetReplaceText("at YYYYMMDD_HHMMSS")
	assert.True(t, r.UseDynamic)

	r.SetReplaceText("still dynamic unless cleared")
	assert.True(t, r.UseDynamic)

	r.SetReplaceText("  ")
	assert.False(t, r.UseDynamic)

	r.SetReplaceText("user kept it off")
	assert.False(t, r.UseDynamic)
}

func TestRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr error
	}{
		{"literal", Rule{SearchText: "a"}, nil},
		{"blank", Rule{SearchText: "  "}, ErrEmptySearch},
		{"regex ok", Rule{SearchText: `\d+`, UseRegex: true}, nil},
		{"regex bad", Rule{SearchText: `([`, UseRegex: true}, ErrInvalidPattern},
		{"bad pattern ignored when literal", Rule{SearchText: `([`}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRule_Clone(t *testing.T) {
	r := NewRule("a", "b")
	r.Description = "swap"
	c := r.Clone()
	assert.NotEqual(t, r.ID, c.ID)
	assert.Equal(t, r.SearchText, c.SearchText)
	assert.Equal(t, "swap", c.Description)
}

func TestRule_String(t *testing.T) {
	r := Rule{SearchText: "a", ReplaceText: "b", Enabled: true}
	assert.Equal(t, `"a" -> "b"`, r.String())

	r.UseRegex = true
	r.Enabled = false
	assert.Equal(t, `"a" -> "b" [regex, disabled]`, r.String())
}

func TestMoveUpDown(t *testing.T) {
	rules := []Rule{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	assert.True(t, MoveUp(rules, 2))
	assert.Equal(t, []string{"1", "3", "2"}, ids(rules))

	assert.False(t, MoveUp(rules, 0))
	assert.False(t, MoveUp(rules, 3))

	assert.True(t, MoveDown(rules, 0))
	assert.Equal(t, []string{"3", "1", "2"}, ids(rules))

	assert.False(t, MoveDown(rules, 2))
	assert.False(t, MoveDown(rules, -1))
}

func ids(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.ID
	}
	return out
}
