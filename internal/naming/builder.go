package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/vmunix/newfile/internal/validate"
)

// DefaultDateLayout renders the date/time component as yyyyMMdd_HHmm.
const DefaultDateLayout = "20060102_1504"

// separator joins name components.
const separator = "_"

var underscoreRun = regexp.MustCompile(`_{2,}`)

// FormatDateTime formats t with layout, or DefaultDateLayout when layout is empty.
func FormatDateTime(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// CleanComponent makes s safe to embed in a file name. Illegal characters
// are dropped, runs of Unicode whitespace become a single underscore and
// underscores are collapsed and trimmed. Cleaning is stable: cleaning twice
// equals cleaning once.
func CleanComponent(s string) string {
	s = strings.Join(strings.FieldsFunc(s, unicode.IsSpace), separator)
	s = validate.StripIllegalNameRunes(s)
	s = underscoreRun.ReplaceAllString(s, separator)
	// normalize last; stripping can leave combining marks next to a new base
	return norm.NFC.String(strings.Trim(s, separator))
}

// NormalizeExtension lower-cases ext, strips illegal characters and ensures
// exactly one leading dot. A blank extension normalizes to "".
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = validate.StripIllegalNameRunes(ext)
	ext = strings.TrimFunc(ext, func(r rune) bool { return r == '.' || unicode.IsSpace(r) })
	if ext == "" {
		return ""
	}
	return "." + ext
}

// components returns the cleaned, enabled, non-blank parts of the name in
// their fixed order.
func components(req *Request, f Flags) []string {
	var parts []string
	if f.DateTime {
		parts = append(parts, FormatDateTime(req.Time(), DefaultDateLayout))
	}
	for _, c := range []struct {
		on  bool
		val string
	}{
		{f.Abbreviation, req.Abbreviation},
		{f.Title, req.Title},
		{f.Suffix, req.Suffix},
	} {
		if !c.on {
			continue
		}
		if cleaned := CleanComponent(c.val); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return parts
}

// split builds the name stem and normalized extension.
func split(req *Request, f Flags) (stem, ext string, err error) {
	if req == nil {
		return "", "", ErrNilRequest
	}

	ext = NormalizeExtension(req.Extension)
	if validate.Length(ext) >= validate.MaxFileNameLength {
		return "", "", fmt.Errorf("%w: %d characters", ErrExtensionTooLong, validate.Length(ext))
	}

	stem = strings.Join(components(req, f), separator)
	if stem == "" {
		return "", "", ErrNoComponents
	}
	return stem, ext, nil
}

// truncate shortens stem to at most n characters, dropping a dangling
// separator left by the cut.
func truncate(stem string, n int) string {
	r := []rune(stem)
	if len(r) <= n {
		return stem
	}
	cut := strings.TrimRight(string(r[:n]), separator)
	if cut == "" {
		return string(r[:n])
	}
	return cut
}

// GenerateFileName assembles the file name for req:
//
//	{yyyyMMdd_HHmm}_{abbreviation}_{title}_{suffix}{.ext}
//
// Disabled or blank components are omitted along with their separator.
// Names longer than validate.MaxFileNameLength are truncated before the
// extension.
func GenerateFileName(req *Request, f Flags) (string, error) {
	stem, ext, err := split(req, f)
	if err != nil {
		return "", err
	}
	return truncate(stem, validate.MaxFileNameLength-validate.Length(ext)) + ext, nil
}

// GenerateFullPath joins the output path with the generated name. When the
// result would exceed validate.MaxPathLength the name is shortened; the
// directory and extension are kept intact.
func GenerateFullPath(req *Request, f Flags) (string, error) {
	stem, ext, err := split(req, f)
	if err != nil {
		return "", err
	}

	name := truncate(stem, validate.MaxFileNameLength-validate.Length(ext)) + ext
	full := filepath.Join(req.OutputPath, name)
	if validate.Length(full) <= validate.MaxPathLength {
		return full, nil
	}

	dirLen := validate.Length(filepath.Join(req.OutputPath, "x")) - 1
	room := validate.MaxPathLength - dirLen - validate.Length(ext)
	if room < 1 {
		return "", fmt.Errorf("%w: %s leaves no room for a file name", ErrPathTooLong, req.OutputPath)
	}
	return filepath.Join(req.OutputPath, truncate(stem, room)+ext), nil
}

// IsValidFileName reports whether name can be used as a file name.
func IsValidFileName(name string) bool {
	return validate.FileName(name).IsValid()
}

// IsValidPath reports whether path is syntactically usable.
func IsValidPath(path string) bool {
	return validate.PathProblem(path) == ""
}
