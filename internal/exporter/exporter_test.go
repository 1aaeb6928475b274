package exporter_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"nbexport/internal/converter"
	"nbexport/internal/exporter"
	"nbexport/internal/notebook"
	"nbexport/internal/testsupport"
)

type call struct {
	input     string
	outputDir string
}

// fakeConverter writes <stem>.html on success and records every invocation.
type fakeConverter struct {
	calls []call
	fail  map[string]string
}

func (f *fakeConverter) Convert(ctx context.Context, inputPath, outputDir string) converter.Result {
	f.calls = append(f.calls, call{input: inputPath, outputDir: outputDir})
	if stderr, ok := f.fail[filepath.Base(inputPath)]; ok {
		return converter.Result{OK: false, Diagnostic: stderr, ExitCode: 1}
	}
	report := filepath.Join(outputDir, notebook.ReportName(inputPath))
	if err := os.WriteFile(report, []byte("<html></html>"), 0o644); err != nil {
		return converter.Result{Diagnostic: err.Error(), ExitCode: -1, Err: err}
	}
	return converter.Result{OK: true}
}

func newTestExporter(t *testing.T, conv converter.Converter) (*exporter.Exporter, exporter.Roots, *bytes.Buffer) {
	t.Helper()
	base := t.TempDir()
	roots := exporter.Roots{
		Notebooks: filepath.Join(base, "notebooks"),
		Reports:   filepath.Join(base, "reports"),
	}
	var out bytes.Buffer
	return exporter.New(roots, conv, &out), roots, &out
}

func TestExportAllSkipsCheckpointsAndMirrorsLayout(t *testing.T) {
	conv := &fakeConverter{}
	exp, roots, out := newTestExporter(t, conv)
	testsupport.WriteNotebooks(t, roots.Notebooks,
		"eda/01.ipynb",
		"eda/.ipynb_checkpoints/01-checkpoint.ipynb",
	)

	summary, err := exp.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll returned error: %v", err)
	}
	if summary != (exporter.Summary{Succeeded: 1, Failed: 0}) {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	wantCalls := []call{{
		input:     filepath.Join(roots.Notebooks, "eda", "01.ipynb"),
		outputDir: filepath.Join(roots.Reports, "eda"),
	}}
	if !reflect.DeepEqual(conv.calls, wantCalls) {
		t.Fatalf("unexpected converter calls: got %+v want %+v", conv.calls, wantCalls)
	}
	if files := testsupport.ListFiles(t, roots.Reports); !reflect.DeepEqual(files, []string{"eda/01.html"}) {
		t.Fatalf("unexpected reports: %v", files)
	}

	wantOut := "Exporting: 01.ipynb -> " + filepath.Join(roots.Reports, "eda") + "/\n" +
		"  OK: 01.html\n"
	if out.String() != wantOut {
		t.Fatalf("unexpected status output:\n%s\nwant:\n%s", out.String(), wantOut)
	}
}

func TestExportAllCountsEveryEligibleNotebook(t *testing.T) {
	conv := &fakeConverter{fail: map[string]string{"bad.ipynb": "kernel not found\n"}}
	exp, roots, out := newTestExporter(t, conv)
	testsupport.WriteNotebooks(t, roots.Notebooks,
		"a/b/c.ipynb",
		"a/bad.ipynb",
		"root.ipynb",
		"a/.ipynb_checkpoints/c-checkpoint.ipynb",
		"a/notes.txt",
	)

	discovered, err := exp.Discover()
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}

	summary, err := exp.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll returned error: %v", err)
	}
	if summary.Total() != len(discovered) || len(conv.calls) != len(discovered) {
		t.Fatalf("expected one attempt per notebook: summary=%+v calls=%d discovered=%d", summary, len(conv.calls), len(discovered))
	}
	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", summary.ExitCode())
	}
	for _, c := range conv.calls {
		if strings.Contains(c.input, notebook.CheckpointDir) {
			t.Fatalf("checkpoint passed to converter: %s", c.input)
		}
	}
	if !strings.Contains(out.String(), "  ERROR: kernel not found\n") {
		t.Fatalf("expected verbatim stderr in output, got %q", out.String())
	}
	want := []string{"a/b/c.html", "root.html"}
	if files := testsupport.ListFiles(t, roots.Reports); !reflect.DeepEqual(files, want) {
		t.Fatalf("unexpected reports: got %v want %v", files, want)
	}
}

func TestExportAllFollowsSymlinkedNotebooksRoot(t *testing.T) {
	conv := &fakeConverter{}
	exp, roots, _ := newTestExporter(t, conv)
	target := filepath.Join(filepath.Dir(roots.Notebooks), "shared")
	testsupport.WriteNotebooks(t, target, "eda/01.ipynb")
	if err := os.Symlink(target, roots.Notebooks); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	summary, err := exp.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll returned error: %v", err)
	}
	if summary != (exporter.Summary{Succeeded: 1}) {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	wantCalls := []call{{
		input:     filepath.Join(roots.Notebooks, "eda", "01.ipynb"),
		outputDir: filepath.Join(roots.Reports, "eda"),
	}}
	if !reflect.DeepEqual(conv.calls, wantCalls) {
		t.Fatalf("unexpected converter calls: got %+v want %+v", conv.calls, wantCalls)
	}
	if files := testsupport.ListFiles(t, roots.Reports); !reflect.DeepEqual(files, []string{"eda/01.html"}) {
		t.Fatalf("unexpected reports: %v", files)
	}
}

func TestExportAllIsRepeatable(t *testing.T) {
	conv := &fakeConverter{fail: map[string]string{"2.ipynb": "boom"}}
	exp, roots, _ := newTestExporter(t, conv)
	testsupport.WriteNotebooks(t, roots.Notebooks, "x/1.ipynb", "x/2.ipynb", "y/3.ipynb")

	first, err := exp.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := exp.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical summaries, got %+v and %+v", first, second)
	}
}

func TestExportAllMissingNotebooksDir(t *testing.T) {
	conv := &fakeConverter{}
	exp, roots, out := newTestExporter(t, conv)

	summary, err := exp.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll returned error: %v", err)
	}
	if summary.Total() != 0 || summary.ExitCode() != 0 {
		t.Fatalf("expected empty successful summary, got %+v", summary)
	}
	if out.Len() != 0 || len(conv.calls) != 0 {
		t.Fatalf("expected no work, got output %q and %d calls", out.String(), len(conv.calls))
	}
	if _, err := os.Stat(roots.Reports); !os.IsNotExist(err) {
		t.Fatalf("expected reports dir to stay absent, stat err=%v", err)
	}
}

func TestExportAllStopsWhenCancelled(t *testing.T) {
	conv := &fakeConverter{}
	exp, roots, _ := newTestExporter(t, conv)
	testsupport.WriteNotebooks(t, roots.Notebooks, "1.ipynb", "2.ipynb")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exp.ExportAll(ctx); err == nil {
		t.Fatal("expected cancellation error")
	}
	if len(conv.calls) != 0 {
		t.Fatalf("expected no conversions after cancellation, got %d", len(conv.calls))
	}
}

func TestExportFileReportsConverterFailure(t *testing.T) {
	conv := &fakeConverter{fail: map[string]string{"01.ipynb": "kernel not found"}}
	exp, roots, out := newTestExporter(t, conv)
	path := testsupport.WriteNotebooks(t, roots.Notebooks, "01.ipynb")[0]
	outDir := filepath.Join(roots.Reports, "deep", "er")

	if exp.ExportFile(context.Background(), path, outDir) {
		t.Fatal("expected failure")
	}
	info, err := os.Stat(outDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected output dir to be created, err=%v", err)
	}
	want := "Exporting: 01.ipynb -> " + outDir + "/\n  ERROR: kernel not found\n"
	if out.String() != want {
		t.Fatalf("unexpected output %q want %q", out.String(), want)
	}
}

func TestExportFileOutputDirCollision(t *testing.T) {
	conv := &fakeConverter{}
	exp, roots, out := newTestExporter(t, conv)
	path := testsupport.WriteNotebooks(t, roots.Notebooks, "01.ipynb")[0]
	blocker := filepath.Join(roots.Reports, "taken")
	if err := os.MkdirAll(roots.Reports, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	if exp.ExportFile(context.Background(), path, filepath.Join(blocker, "sub")) {
		t.Fatal("expected failure when output dir cannot be created")
	}
	if len(conv.calls) != 0 {
		t.Fatal("converter should not run without an output directory")
	}
	if !strings.Contains(out.String(), "  ERROR: create output directory:") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestExportNotebookChoosesOutputDir(t *testing.T) {
	conv := &fakeConverter{}
	exp, roots, _ := newTestExporter(t, conv)
	inside := testsupport.WriteNotebooks(t, roots.Notebooks, "eda/01.ipynb")[0]
	outside := testsupport.WriteNotebooks(t, t.TempDir(), "scratch.ipynb")[0]

	if !exp.ExportNotebook(context.Background(), inside) {
		t.Fatal("expected inside export to succeed")
	}
	if !exp.ExportNotebook(context.Background(), outside) {
		t.Fatal("expected outside export to succeed")
	}
	want := []string{"eda/01.html", "scratch.html"}
	if files := testsupport.ListFiles(t, roots.Reports); !reflect.DeepEqual(files, want) {
		t.Fatalf("unexpected reports: got %v want %v", files, want)
	}
}
