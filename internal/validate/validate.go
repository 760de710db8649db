package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileName checks that name is usable as a single file name.
func FileName(name string) *Result {
	if strings.TrimSpace(name) == "" {
		return Failure("file name is empty")
	}

	if Length(name) > MaxFileNameLength {
		return Failure(fmt.Sprintf("file name is too long: at most %d characters allowed", MaxFileNameLength))
	}

	if bad := IllegalRunes(name, IsIllegalNameRune); len(bad) > 0 {
		return Failure("file name contains illegal characters: " + quoteRunes(bad))
	}

	if IsReservedName(name) {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		return Failure(fmt.Sprintf("%q is a reserved file name on Windows", base))
	}

	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return Failure("file name cannot start or end with a dot")
	}

	return Success()
}

// PathProblem returns a description of what makes path syntactically
// unusable, or "" when it is acceptable. The filesystem is only consulted
// to confirm that an explicit volume (drive letter) exists.
func PathProblem(path string) string {
	if strings.TrimSpace(path) == "" {
		return "path is empty"
	}

	if Length(path) > MaxPathLength {
		return fmt.Sprintf("path is too long: at most %d characters allowed", MaxPathLength)
	}

	if bad := IllegalRunes(path, IsIllegalPathRune); len(bad) > 0 {
		return "path contains illegal characters: " + quoteRunes(bad)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Sprintf("path is malformed: %v", err)
	}

	if vol := filepath.VolumeName(abs); vol != "" {
		if _, err := os.Stat(vol + string(filepath.Separator)); err != nil {
			return fmt.Sprintf("drive %q not found", vol)
		}
	}

	return ""
}

// FolderPath checks that path is a syntactically valid folder path.
func FolderPath(path string) *Result {
	if problem := PathProblem(path); problem != "" {
		return Failure(problem)
	}
	return Success()
}

// FolderExists checks that path is valid and names an existing directory.
func FolderExists(path string) *Result {
	if r := FolderPath(path); !r.IsValid() {
		return r
	}

	info, err := os.Stat(path)
	if err != nil {
		return Failure(fmt.Sprintf("folder does not exist: %s", path))
	}
	if !info.IsDir() {
		return Failure(fmt.Sprintf("not a folder: %s", path))
	}

	return Success()
}

// FilePath checks the directory and name parts of path and that the file exists.
func FilePath(path string) *Result {
	if strings.TrimSpace(path) == "" {
		return Failure("file path is empty")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if r := FolderPath(dir); !r.IsValid() {
			return r
		}
	}

	if r := FileName(filepath.Base(path)); !r.IsValid() {
		return r
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Failure(fmt.Sprintf("file does not exist: %s", path))
	}

	return Success()
}

// FileExists is FilePath under the name callers reach for when only
// existence matters.
func FileExists(path string) *Result {
	return FilePath(path)
}

// TextRules bounds a free-text field. Lengths apply to the trimmed input;
// MaxLength 0 means unbounded.
type TextRules struct {
	Required  bool
	MinLength int
	MaxLength int
}

// TextInput checks a user-supplied text field against rules.
func TextInput(input, field string, rules TextRules) *Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		if rules.Required {
			return Failure(fmt.Sprintf("%s is required", field))
		}
		return Success()
	}

	n := Length(trimmed)
	if n < rules.MinLength {
		return Failure(fmt.Sprintf("%s must be at least %d characters", field, rules.MinLength))
	}
	if rules.MaxLength > 0 && n > rules.MaxLength {
		return Failure(fmt.Sprintf("%s must be at most %d characters", field, rules.MaxLength))
	}

	return Success()
}

// Extension checks a file extension. A missing leading dot is implied.
func Extension(ext string) *Result {
	if strings.TrimSpace(ext) == "" {
		return Failure("file extension is required")
	}

	clean := strings.TrimSpace(ext)
	if !strings.HasPrefix(clean, ".") {
		clean = "." + clean
	}

	if bad := IllegalRunes(clean, IsIllegalNameRune); len(bad) > 0 {
		return Failure("file extension contains illegal characters: " + quoteRunes(bad))
	}

	if Length(clean) > MaxExtensionLength {
		return Failure(fmt.Sprintf("file extension is too long: at most %d characters allowed", MaxExtensionLength))
	}

	if strings.Trim(clean, ".") == "" {
		return Failure("file extension must contain more than dots")
	}

	return Success()
}

// WritePermission probes whether files can be created in dir by creating
// and deleting a uniquely named temporary file.
func WritePermission(dir string) *Result {
	probe := filepath.Join(dir, "newfile_write_probe_"+uuid.NewString()+".tmp")

	if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return Failure(fmt.Sprintf("no permission to create files in %s", dir))
		}
		return Failure(fmt.Sprintf("cannot verify folder access: %v", err))
	}

	if err := os.Remove(probe); err != nil {
		return Failure(fmt.Sprintf("cannot verify folder access: %v", err))
	}

	return Success()
}

// CreationRequest runs the field-level checks for a file creation form.
func CreationRequest(abbreviation, title, suffix, extension, outputPath, templatePath string) *Result {
	results := []*Result{
		TextInput(abbreviation, "abbreviation", TextRules{MinLength: 1, MaxLength: 20}),
		TextInput(title, "title", TextRules{Required: true, MinLength: 1, MaxLength: 100}),
		TextInput(suffix, "suffix", TextRules{MinLength: 1, MaxLength: 50}),
		Extension(extension),
		FolderExists(outputPath),
	}

	if strings.TrimSpace(templatePath) != "" {
		results = append(results, FileExists(templatePath))
	}

	return Combine(results...)
}

// CleanFileName strips illegal characters from a whole file name, collapses
// whitespace and renames reserved device names by appending "_file".
func CleanFileName(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	cleaned := StripIllegalNameRunes(name)
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if IsReservedName(cleaned) {
		ext := filepath.Ext(cleaned)
		cleaned = strings.TrimSuffix(cleaned, ext) + "_file" + ext
	}

	return cleaned
}
