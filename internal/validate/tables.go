package validate

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length limits, counted in characters.
const (
	MaxFileNameLength  = 255
	MaxPathLength      = 260
	MaxExtensionLength = 10
)

// illegalNameChars are characters not allowed in file names on Windows.
// Path separators are included so a component can never introduce a directory.
const illegalNameChars = `<>:"|?*/\`

// illegalPathChars are characters not allowed anywhere in a path.
// The colon is absent because it follows a drive letter.
const illegalPathChars = `<>"|?*`

// reservedNames are the classic Windows device names.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsIllegalNameRune reports whether r may not appear in a file name.
func IsIllegalNameRune(r rune) bool {
	return unicode.IsControl(r) || strings.ContainsRune(illegalNameChars, r)
}

// IsIllegalPathRune reports whether r may not appear in a path.
func IsIllegalPathRune(r rune) bool {
	return unicode.IsControl(r) || strings.ContainsRune(illegalPathChars, r)
}

// IllegalRunes returns the distinct runes of s rejected by pred, in order of
// first appearance.
func IllegalRunes(s string, pred func(rune) bool) []rune {
	var out []rune
	seen := map[rune]bool{}
	for _, r := range s {
		if pred(r) && !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// StripIllegalNameRunes removes every rune that may not appear in a file name.
func StripIllegalNameRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if IsIllegalNameRune(r) {
			return -1
		}
		return r
	}, s)
}

// IsReservedName reports whether name, with its extension removed, is a
// reserved device name. The match is case-insensitive.
func IsReservedName(name string) bool {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return reservedNames[strings.ToUpper(base)]
}

// Length returns the length of s in characters.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

func quoteRunes(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		if unicode.IsControl(r) {
			parts[i] = fmt.Sprintf("%U", r)
			continue
		}
		parts[i] = fmt.Sprintf("'%c'", r)
	}
	return strings.Join(parts, ", ")
}
