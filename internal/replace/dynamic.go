package replace

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Layouts produced by dynamic tokens.
const (
	minuteLayout = "20060102_1504"
	secondLayout = "20060102_150405"
)

// maxOffsetMinutes bounds token offsets to roughly a century either way.
const maxOffsetMinutes = 100 * 366 * 24 * 60

// dynamicToken matches YYYYMMDD_HHMM and YYYYMMDD_HHMMSS, each optionally
// followed by a signed offset in minutes. The seconds form is preferred.
var dynamicToken = regexp.MustCompile(`YYYYMMDD_HHMM(SS)?([+-]\d+)?`)

// HasDynamicToken reports whether text contains a date/time token.
func HasDynamicToken(text string) bool {
	return dynamicToken.MatchString(text)
}

// ExpandDynamic replaces every date/time token in text with base shifted by
// the token's offset. Each token is evaluated independently against base.
//
//	YYYYMMDD_HHMM+30   -> 20250115_1100  (base 2025-01-15 10:30)
//	YYYYMMDD_HHMMSS-1  -> 20250115_102900
func ExpandDynamic(text string, base time.Time) (string, error) {
	var firstErr error

	out := dynamicToken.ReplaceAllStringFunc(text, func(tok string) string {
		m := dynamicToken.FindStringSubmatch(tok)

		t := base
		if m[2] != "" {
			mins, err := strconv.Atoi(m[2])
			if err != nil || mins > maxOffsetMinutes || mins < -maxOffsetMinutes {
				if firstErr == nil {
					firstErr = fmt.Errorf("%w: %s", ErrOffsetOutOfRange, m[2])
				}
				return tok
			}
			t = t.Add(time.Duration(mins) * time.Minute)
		}

		if m[1] != "" {
			return t.Format(secondLayout)
		}
		return t.Format(minuteLayout)
	})

	if firstErr != nil {
		return text, firstErr
	}
	return out, nil
}
