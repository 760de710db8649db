package generator_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/newfile/internal/generator"
	"github.com/vmunix/newfile/internal/generator/mocks"
	"github.com/vmunix/newfile/internal/naming"
	"github.com/vmunix/newfile/internal/replace"
	"go.uber.org/mock/gomock"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedTime = time.Date(2025, 8, 1, 9, 5, 0, 0, time.Local)

func newRequest(t *testing.T, ext string) *naming.Request {
	t.Helper()
	return &naming.Request{
		DateTime:     fixedTime,
		Abbreviation: "CNF",
		Title:        "Test File",
		Suffix:       "v1",
		Extension:    ext,
		OutputPath:   t.TempDir(),
	}
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCreateFile_TxtGetsSingleSpace(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "txt")

	res := g.CreateFile(context.Background(), req, naming.DefaultFlags())
	require.True(t, res.Success, res.ErrorMessage)
	assert.Equal(t, "20250801_0905_CNF_Test_File_v1.txt", res.FileName)
	assert.Equal(t, filepath.Join(req.OutputPath, res.FileName), res.FilePath)
	assert.Equal(t, int64(1), res.FileSize)
	assert.False(t, res.UsedTemplate)
	assert.NoError(t, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, " ", string(data))
}

func TestCreateFile_OtherExtensionsEmpty(t *testing.T) {
	g := generator.New(testLogger())

	for _, ext := range []string{"md", ".LOG", "docx"} {
		t.Run(ext, func(t *testing.T) {
			res := g.CreateFile(context.Background(), newRequest(t, ext), naming.DefaultFlags())
			require.True(t, res.Success, res.ErrorMessage)
			assert.Equal(t, int64(0), res.FileSize)

			info, err := os.Stat(res.FilePath)
			require.NoError(t, err)
			assert.Equal(t, int64(0), info.Size())
		})
	}
}

func TestCreateFile_DefaultContentOverride(t *testing.T) {
	g := generator.New(testLogger(), generator.WithDefaultContent("md", "# \n"))

	res := g.CreateFile(context.Background(), newRequest(t, "md"), naming.DefaultFlags())
	require.True(t, res.Success, res.ErrorMessage)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "# \n", string(data))
}

func TestCreateFile_TemplateCopiedVerbatim(t *testing.T) {
	content := "\xEF\xBB\xBFline one\r\nYYYYMMDD_HHMM\x00binary\n"
	g := generator.New(testLogger())
	req := newRequest(t, "md")
	req.TemplatePath = writeTemplate(t, content)

	res := g.CreateFile(context.Background(), req, naming.DefaultFlags())
	require.True(t, res.Success, res.ErrorMessage)
	assert.True(t, res.UsedTemplate)
	assert.Equal(t, int64(len(content)), res.FileSize)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestCreateFileWithReplacements(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "md")
	req.TemplatePath = writeTemplate(t, "# {{title}}\ncreated {{now}}\nreview {{review}}\n")

	rules := []replace.Rule{
		replace.NewRule("{{title}}", "Quarterly Plan"),
		replace.NewRule("{{now}}", "YYYYMMDD_HHMM"),
		replace.NewRule("{{review}}", "YYYYMMDD_HHMM+1440"),
	}

	res := g.CreateFileWithReplacements(context.Background(), req, rules, nil, naming.DefaultFlags())
	require.True(t, res.Success, res.ErrorMessage)
	assert.True(t, res.UsedTemplate)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	want := "# Quarterly Plan\ncreated 20250801_0905\nreview 20250802_0905\n"
	assert.Equal(t, want, string(data))
	assert.Equal(t, int64(len(want)), res.FileSize)
}

func TestCreateFileWithReplacements_ExplicitBase(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "txt")
	req.TemplatePath = writeTemplate(t, "at @")

	base := time.Date(2025, 1, 15, 10, 30, 0, 0, time.Local)
	rules := []replace.Rule{replace.NewRule("@", "YYYYMMDD_HHMMSS-30")}

	res := g.CreateFileWithReplacements(context.Background(), req, rules, &base, naming.DefaultFlags())
	require.True(t, res.Success, res.ErrorMessage)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "at 20250115_100000", string(data))
}

func TestCreateFileWithReplacements_KeepsBOM(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "txt")
	req.TemplatePath = writeTemplate(t, "\xEF\xBB\xBFhello NAME")

	res := g.CreateFileWithReplacements(context.Background(), req, []replace.Rule{replace.NewRule("name", "world")}, nil, naming.DefaultFlags())
	require.True(t, res.Success, res.ErrorMessage)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFhello world", string(data))
}

func TestCreateFileWithReplacements_BadRuleSkipped(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "txt")
	req.TemplatePath = writeTemplate(t, "hello world")

	bad := replace.NewRule("([", "x")
	bad.UseRegex = true
	rules := []replace.Rule{bad, replace.NewRule("world", "there")}

	res := g.CreateFileWithReplacements(context.Background(), req, rules, nil, naming.DefaultFlags())
	require.True(t, res.Success, res.ErrorMessage)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "hello there", string(data))
}

func TestCreateFileWithReplacements_NoTemplateIgnoresRules(t *testing.T) {
	g := generator.New(testLogger())
	rules := []replace.Rule{replace.NewRule(" ", "x")}

	res := g.CreateFileWithReplacements(context.Background(), newRequest(t, "txt"), rules, nil, naming.DefaultFlags())
	require.True(t, res.Success, res.ErrorMessage)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, " ", string(data))
}

func TestCreateFile_MissingOutputPath(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "txt")
	req.OutputPath = filepath.Join(req.OutputPath, "missing")

	res := g.CreateFile(context.Background(), req, naming.DefaultFlags())
	assert.False(t, res.Success)
	assert.Contains(t, res.ErrorMessage, "does not exist")
	assert.ErrorIs(t, res.Err, generator.ErrValidation)

	_, err := os.Stat(req.OutputPath)
	assert.True(t, errors.Is(err, os.ErrNotExist), "nothing is created")
}

func TestCreateFile_SecondCallFails(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "md")
	req.TemplatePath = writeTemplate(t, "original")

	first := g.CreateFile(context.Background(), req, naming.DefaultFlags())
	require.True(t, first.Success, first.ErrorMessage)

	req.TemplatePath = writeTemplate(t, "replacement")
	second := g.CreateFile(context.Background(), req, naming.DefaultFlags())
	assert.False(t, second.Success)
	assert.Contains(t, second.ErrorMessage, "file already exists")
	assert.ErrorIs(t, second.Err, generator.ErrAlreadyExists)

	data, err := os.ReadFile(first.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestCreateFile_NilRequest(t *testing.T) {
	res := generator.New(testLogger()).CreateFile(context.Background(), nil, naming.DefaultFlags())
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, generator.ErrValidation)
	assert.NotEmpty(t, res.ErrorMessage)
}

func TestCreateFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := newRequest(t, "txt")
	res := generator.New(testLogger()).CreateFile(ctx, req, naming.DefaultFlags())
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, context.Canceled)

	entries, err := os.ReadDir(req.OutputPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateFile_UsesClockForUndatedRequests(t *testing.T) {
	clock := func() time.Time { return time.Date(2030, 12, 31, 23, 59, 0, 0, time.Local) }
	g := generator.New(testLogger(), generator.WithClock(clock))
	req := newRequest(t, "txt")
	req.DateTime = time.Time{}

	res := g.CreateFile(context.Background(), req, naming.DefaultFlags())
	require.True(t, res.Success, res.ErrorMessage)
	assert.Equal(t, "20301231_2359_CNF_Test_File_v1.txt", res.FileName)
	assert.True(t, req.DateTime.IsZero(), "caller's request is not modified")
}

func TestCreateFile_NoTempFilesLeft(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "txt")

	res := g.CreateFile(context.Background(), req, naming.DefaultFlags())
	require.True(t, res.Success)

	entries, err := os.ReadDir(req.OutputPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, res.FileName, entries[0].Name())
}

func TestCreateFile_RecordsHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryRecorder(ctrl)

	var recorded *generator.Result
	history.EXPECT().
		RecordCreation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *generator.Result) error {
			recorded = r
			return nil
		})

	g := generator.New(testLogger(), generator.WithHistory(history))
	res := g.Run(context.Background(), generator.Job{
		Request:    newRequest(t, "txt"),
		Flags:      naming.DefaultFlags(),
		SnapshotID: "snap-1",
	})

	require.True(t, res.Success, res.ErrorMessage)
	require.NotNil(t, recorded)
	assert.Equal(t, res.FilePath, recorded.FilePath)
	assert.Equal(t, "snap-1", recorded.SnapshotID)
}

func TestCreateFile_HistoryFailureIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryRecorder(ctrl)
	history.EXPECT().
		RecordCreation(gomock.Any(), gomock.Any()).
		Return(errors.New("database is locked"))

	g := generator.New(testLogger(), generator.WithHistory(history))
	res := g.CreateFile(context.Background(), newRequest(t, "txt"), naming.DefaultFlags())
	assert.True(t, res.Success, res.ErrorMessage)
}

func TestCreateFile_FailureNotRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryRecorder(ctrl)
	history.EXPECT().RecordCreation(gomock.Any(), gomock.Any()).Times(0)

	req := newRequest(t, "txt")
	req.Title = ""
	req.Abbreviation = ""

	g := generator.New(testLogger(), generator.WithHistory(history))
	res := g.CreateFile(context.Background(), req, naming.DefaultFlags())
	assert.False(t, res.Success)
}

func TestGenerator_PathHelpers(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "txt")

	name, err := g.FileName(req, naming.DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, "20250801_0905_CNF_Test_File_v1.txt", name)

	path, err := g.FullFilePath(req, naming.DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(req.OutputPath, name), path)

	assert.False(t, g.FileExists(req, naming.DefaultFlags()))
	assert.True(t, g.ValidateRequest(req, naming.DefaultFlags()).IsValid())

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	assert.True(t, g.FileExists(req, naming.DefaultFlags()))
	assert.False(t, g.ValidateRequest(req, naming.DefaultFlags()).IsValid())

	_, err = g.FileName(nil, naming.DefaultFlags())
	assert.ErrorIs(t, err, naming.ErrNilRequest)
	assert.False(t, g.FileExists(nil, naming.DefaultFlags()))
}

func TestGenerator_Preview(t *testing.T) {
	g := generator.New(testLogger())
	req := newRequest(t, "md")

	p, err := g.Preview(req, naming.DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, "20250801_0905_CNF_Test_File_v1.md", p.FileName)
	assert.False(t, p.Exists)
	assert.True(t, p.Validation.IsValid())

	entries, err := os.ReadDir(req.OutputPath)
	require.NoError(t, err)
	assert.Empty(t, entries, "preview does not write")
}
