package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmunix/newfile/internal/generator"
	"github.com/vmunix/newfile/internal/validate"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, r *generator.Result) {
	if !r.Success {
		_, _ = fmt.Fprintf(w, "Failed: %s\n", r.ErrorMessage)
		return
	}
	_, _ = fmt.Fprintf(w, "Created %s\n", r.FilePath)
	if r.UsedTemplate {
		_, _ = fmt.Fprintf(w, "  from template (%d bytes)\n", r.FileSize)
	}
}

func printValidation(w io.Writer, v *validate.Result) {
	for _, e := range v.Errors {
		_, _ = fmt.Fprintf(w, "  error:   %s\n", e)
	}
	for _, warn := range v.Warnings {
		_, _ = fmt.Fprintf(w, "  warning: %s\n", warn)
	}
}

// truncate shortens s to n runes for table output.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func joinOrDash(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
