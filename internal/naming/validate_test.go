package naming

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		DateTime:     fixedTime,
		Abbreviation: "CNF",
		Title:        "Test File",
		Suffix:       "v1",
		Extension:    "txt",
		OutputPath:   t.TempDir(),
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	r := ValidateRequest(validRequest(t))
	assert.True(t, r.IsValid(), r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestValidateRequest_MissingOutputPath(t *testing.T) {
	req := validRequest(t)
	req.OutputPath = filepath.Join(req.OutputPath, "does", "not", "exist")

	r := ValidateRequest(req)
	require.False(t, r.IsValid())
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "does not exist")
}

func TestValidateRequest_AccumulatesErrors(t *testing.T) {
	req := &Request{
		DateTime:     fixedTime,
		OutputPath:   " ",
		TemplatePath: filepath.Join(t.TempDir(), "missing.tmpl"),
	}

	r := ValidateRequest(req)
	require.False(t, r.IsValid())
	joined := strings.Join(r.Errors, "\n")
	assert.Contains(t, joined, "output path is required")
	assert.Contains(t, joined, "template file does not exist")
	assert.Contains(t, joined, "abbreviation or title is required")
	assert.Contains(t, joined, "extension is required")
}

func TestValidateRequest_InvalidPaths(t *testing.T) {
	req := validRequest(t)
	req.OutputPath = "bad|dir"
	req.TemplatePath = "tmpl?.txt"

	r := ValidateRequest(req)
	require.Len(t, r.Errors, 2)
	assert.Contains(t, r.Errors[0], "output path is invalid")
	assert.Contains(t, r.Errors[1], "template path is invalid")
}

func TestValidateRequest_TemplateIsDirectory(t *testing.T) {
	req := validRequest(t)
	req.TemplatePath = t.TempDir()

	r := ValidateRequest(req)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "template file does not exist")
}

func TestValidateRequest_FileAlreadyExists(t *testing.T) {
	req := validRequest(t)
	existing := filepath.Join(req.OutputPath, "20250801_0905_CNF_Test_File_v1.txt")
	require.NoError(t, os.WriteFile(existing, []byte(" "), 0o644))

	r := ValidateRequest(req)
	require.False(t, r.IsValid())
	assert.Equal(t, []string{"file already exists: 20250801_0905_CNF_Test_File_v1.txt"}, r.Errors)

	r = ValidateRequestWithFlags(req, Flags{Title: true, Suffix: true})
	assert.True(t, r.IsValid(), "different flags yield a different name")
}

func TestValidateRequest_GenerationFailure(t *testing.T) {
	req := validRequest(t)
	req.Extension = strings.Repeat("x", 300)

	r := ValidateRequest(req)
	require.False(t, r.IsValid())
	assert.Contains(t, strings.Join(r.Errors, "\n"), "file name generation failed")
	assert.NotEmpty(t, r.Warnings, "overlong extension is also reported as a warning")
}

func TestValidateRequest_ReservedName(t *testing.T) {
	req := validRequest(t)
	req.Abbreviation = ""
	req.Suffix = ""
	req.Title = "CON"

	r := ValidateRequestWithFlags(req, Flags{Title: true})
	require.False(t, r.IsValid())
	assert.Contains(t, r.Errors[0], "generated file name is invalid")
}

func TestValidateRequest_Nil(t *testing.T) {
	assert.False(t, ValidateRequest(nil).IsValid())
}
