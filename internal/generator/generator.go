// Package generator materializes files from naming requests: it validates,
// computes the target path, writes empty or template content (optionally
// rewritten by replacement rules) and reports a Result.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmunix/newfile/internal/naming"
	"github.com/vmunix/newfile/internal/replace"
	"github.com/vmunix/newfile/internal/validate"
)

//go:generate mockgen -destination=mocks/history.go -package=mocks . HistoryRecorder

// HistoryRecorder receives every successful creation.
type HistoryRecorder interface {
	RecordCreation(ctx context.Context, r *Result) error
}

// utf8BOM is preserved across substitution.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Generator creates files. It holds no per-call state and is safe for
// concurrent use.
type Generator struct {
	history HistoryRecorder // nil if not configured
	now     func() time.Time
	content map[string]string
	log     *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithHistory records successful creations in h.
func WithHistory(h HistoryRecorder) Option {
	return func(g *Generator) { g.history = h }
}

// WithClock overrides the time source used for requests without a date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithDefaultContent sets the content written for a new file with the given
// extension when no template is used.
func WithDefaultContent(ext, content string) Option {
	return func(g *Generator) { g.content[naming.NormalizeExtension(ext)] = content }
}

// New creates a generator. Text files get a single space so they are never
// zero bytes.
func New(log *slog.Logger, opts ...Option) *Generator {
	if log == nil {
		log = slog.Default()
	}
	g := &Generator{
		now:     time.Now,
		content: map[string]string{".txt": " "},
		log:     log.With("component", "generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Job is one file to create.
type Job struct {
	Request *naming.Request
	Flags   naming.Flags

	// Rules rewrite template text. Without rules a template is copied verbatim.
	Rules []replace.Rule

	// Base anchors dynamic tokens; zero falls back to the request date.
	Base time.Time

	// SnapshotID is passed through to the Result and history.
	SnapshotID string
}

// CreateFile creates the file described by req.
func (g *Generator) CreateFile(ctx context.Context, req *naming.Request, flags naming.Flags) *Result {
	return g.Run(ctx, Job{Request: req, Flags: flags})
}

// CreateFileWithReplacements creates the file described by req, rewriting
// template text with rules. Dynamic tokens expand against base when given,
// otherwise against the request's date.
func (g *Generator) CreateFileWithReplacements(ctx context.Context, req *naming.Request, rules []replace.Rule, base *time.Time, flags naming.Flags) *Result {
	job := Job{Request: req, Flags: flags, Rules: rules}
	if base != nil {
		job.Base = *base
	}
	return g.Run(ctx, job)
}

// Run executes job: validate, compute the path, write content, publish
// without overwriting, record history. It never returns nil.
func (g *Generator) Run(ctx context.Context, job Job) *Result {
	if job.Request == nil {
		return failure(fmt.Errorf("%w: %w", ErrValidation, naming.ErrNilRequest))
	}
	if err := ctx.Err(); err != nil {
		return failure(err)
	}

	req := g.stamp(job.Request)

	if v := naming.ValidateRequestWithFlags(req, job.Flags); !v.IsValid() {
		msg := strings.Join(v.Errors, "; ")
		err := fmt.Errorf("%w: %s", ErrValidation, msg)
		if g.exists(req, job.Flags) {
			err = fmt.Errorf("%w: %w", ErrAlreadyExists, err)
		}
		g.log.Info("validation failed", "request", req.String(), "errors", v.Errors)
		return &Result{ErrorMessage: msg, SnapshotID: job.SnapshotID, Err: err}
	}

	path, err := naming.GenerateFullPath(req, job.Flags)
	if err != nil {
		return failure(err)
	}
	name := filepath.Base(path)

	if _, err := os.Lstat(path); err == nil {
		return failure(fmt.Errorf("%w: %s", ErrAlreadyExists, name))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return failure(fmt.Errorf("create directory: %w", err))
	}

	res := &Result{FilePath: path, FileName: name, SnapshotID: job.SnapshotID}

	var size int64
	if req.HasTemplate() {
		res.UsedTemplate = true
		size, err = g.fromTemplate(req, job, path)
	} else {
		size, err = publish(path, strings.NewReader(g.content[naming.NormalizeExtension(req.Extension)]))
	}
	if err != nil {
		g.log.Error("create failed", "path", path, "error", err)
		return failure(err)
	}

	res.Success = true
	res.FileSize = size
	g.log.Info("file created", "path", path, "size", size, "template", res.UsedTemplate)

	if g.history != nil {
		if err := g.history.RecordCreation(ctx, res); err != nil {
			g.log.Warn("record history failed", "path", path, "error", err)
		}
	}

	return res
}

// stamp returns a copy of req with a concrete date so that the name and
// dynamic tokens agree.
func (g *Generator) stamp(req *naming.Request) *naming.Request {
	req = req.Clone()
	if req.DateTime.IsZero() {
		req.DateTime = g.now()
	}
	return req
}

func (g *Generator) exists(req *naming.Request, flags naming.Flags) bool {
	path, err := naming.GenerateFullPath(req, flags)
	if err != nil {
		return false
	}
	_, err = os.Lstat(path)
	return err == nil
}

func (g *Generator) fromTemplate(req *naming.Request, job Job, dst string) (int64, error) {
	if len(job.Rules) == 0 {
		src, err := os.Open(req.TemplatePath)
		if err != nil {
			return 0, fmt.Errorf("%w: open template: %w", ErrIO, err)
		}
		defer func() { _ = src.Close() }()
		return publish(dst, src)
	}

	data, err := os.ReadFile(req.TemplatePath)
	if err != nil {
		return 0, fmt.Errorf("%w: read template: %w", ErrIO, err)
	}

	bom := bytes.HasPrefix(data, utf8BOM)
	if bom {
		data = data[len(utf8BOM):]
	}

	base := job.Base
	if base.IsZero() {
		base = req.DateTime
	}

	text, skipped := replace.Apply(string(data), job.Rules, base)
	for _, err := range skipped {
		g.log.Warn("replacement rule skipped", "template", req.TemplatePath, "error", err)
	}

	var r io.Reader = strings.NewReader(text)
	if bom {
		r = io.MultiReader(bytes.NewReader(utf8BOM), r)
	}
	return publish(dst, r)
}

// FileName returns the name req would produce.
func (g *Generator) FileName(req *naming.Request, flags naming.Flags) (string, error) {
	if req == nil {
		return "", naming.ErrNilRequest
	}
	return naming.GenerateFileName(g.stamp(req), flags)
}

// FullFilePath returns the path req would produce.
func (g *Generator) FullFilePath(req *naming.Request, flags naming.Flags) (string, error) {
	if req == nil {
		return "", naming.ErrNilRequest
	}
	return naming.GenerateFullPath(g.stamp(req), flags)
}

// FileExists reports whether the path req would produce is taken.
func (g *Generator) FileExists(req *naming.Request, flags naming.Flags) bool {
	if req == nil {
		return false
	}
	return g.exists(g.stamp(req), flags)
}

// ValidateRequest checks req as Run would.
func (g *Generator) ValidateRequest(req *naming.Request, flags naming.Flags) *validate.Result {
	if req == nil {
		return naming.ValidateRequestWithFlags(nil, flags)
	}
	return naming.ValidateRequestWithFlags(g.stamp(req), flags)
}

// Preview describes what Run would create without touching the filesystem
// beyond existence checks.
type Preview struct {
	FileName   string           `json:"file_name"`
	FilePath   string           `json:"file_path"`
	Exists     bool             `json:"exists"`
	Validation *validate.Result `json:"validation"`
}

// Preview computes the target of req.
func (g *Generator) Preview(req *naming.Request, flags naming.Flags) (*Preview, error) {
	if req == nil {
		return nil, naming.ErrNilRequest
	}
	req = g.stamp(req)

	path, err := naming.GenerateFullPath(req, flags)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Lstat(path)

	return &Preview{
		FileName:   filepath.Base(path),
		FilePath:   path,
		Exists:     statErr == nil,
		Validation: naming.ValidateRequestWithFlags(req, flags),
	}, nil
}
