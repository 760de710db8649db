package replace

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Apply runs the enabled rules over content in list order, each rule seeing
// the output of the previous one. Dynamic tokens expand against base, or the
// current time when base is zero. A rule that cannot be applied is skipped
// and reported in the returned errors; the remaining rules still run.
func Apply(content string, rules []Rule, base time.Time) (string, []error) {
	if base.IsZero() {
		base = time.Now()
	}

	var skipped []error
	for i := range rules {
		r := &rules[i]
		if !r.Enabled || strings.TrimSpace(r.SearchText) == "" {
			continue
		}

		out, err := applyRule(content, r, base)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("rule %d (%s): %w", i+1, r.SearchText, err))
			continue
		}
		content = out
	}
	return content, skipped
}

func applyRule(content string, r *Rule, base time.Time) (string, error) {
	switch {
	case r.UseDynamic:
		repl, err := ExpandDynamic(strings.TrimSpace(r.ReplaceText), base)
		if err != nil {
			return "", err
		}
		return replaceLiteral(content, strings.TrimSpace(r.SearchText), repl, r.CaseSensitive), nil

	case r.UseRegex:
		expr := r.SearchText
		if !r.CaseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		return re.ReplaceAllLiteralString(content, r.ReplaceText), nil

	default:
		return replaceLiteral(content, r.SearchText, r.ReplaceText, r.CaseSensitive), nil
	}
}

func replaceLiteral(content, search, repl string, caseSensitive bool) string {
	if search == "" {
		return content
	}
	if caseSensitive {
		return strings.ReplaceAll(content, search, repl)
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(search))
	return re.ReplaceAllLiteralString(content, repl)
}
