package naming

import (
	"fmt"
	"os"
	"strings"

	"github.com/vmunix/newfile/internal/validate"
)

// ValidateRequest checks req with every component enabled.
func ValidateRequest(req *Request) *validate.Result {
	return ValidateRequestWithFlags(req, DefaultFlags())
}

// ValidateRequestWithFlags checks that req can be materialized: the output
// folder exists, the template (if any) exists, and the generated name is
// legal and not already taken. Problems accumulate; a failure to generate
// the name is reported as a single entry.
func ValidateRequestWithFlags(req *Request, f Flags) *validate.Result {
	if req == nil {
		return validate.Failure(ErrNilRequest.Error())
	}

	r := validate.Success()
	outputOK := false

	switch out := req.OutputPath; {
	case strings.TrimSpace(out) == "":
		r.AddError(ErrOutputPathRequired.Error())
	case !IsValidPath(out):
		r.AddError(fmt.Sprintf("output path is invalid: %s", validate.PathProblem(out)))
	default:
		if info, err := os.Stat(out); err != nil || !info.IsDir() {
			r.AddError(fmt.Sprintf("output path does not exist: %s", out))
		} else {
			outputOK = true
		}
	}

	if req.HasTemplate() {
		tmpl := req.TemplatePath
		if !IsValidPath(tmpl) {
			r.AddError(fmt.Sprintf("template path is invalid: %s", validate.PathProblem(tmpl)))
		} else if info, err := os.Stat(tmpl); err != nil || info.IsDir() {
			r.AddError(fmt.Sprintf("template file does not exist: %s", tmpl))
		}
	}

	if strings.TrimSpace(req.Abbreviation) == "" && strings.TrimSpace(req.Title) == "" {
		r.AddError(ErrNameOrTitleRequired.Error())
	}

	if strings.TrimSpace(req.Extension) == "" {
		r.AddError(ErrExtensionRequired.Error())
	} else if ext := validate.Extension(req.Extension); !ext.IsValid() {
		for _, msg := range ext.Errors {
			r.AddWarning(msg)
		}
	}

	name, err := GenerateFileName(req, f)
	if err != nil {
		r.AddError(fmt.Sprintf("file name generation failed: %v", err))
		return r
	}

	if !IsValidFileName(name) {
		r.AddError(fmt.Sprintf("generated file name is invalid: %s", name))
	}

	if full, err := GenerateFullPath(req, f); err != nil {
		r.AddError(fmt.Sprintf("file name generation failed: %v", err))
	} else if _, err := os.Lstat(full); outputOK && err == nil {
		r.AddError(fmt.Sprintf("file already exists: %s", name))
	}

	return r
}
