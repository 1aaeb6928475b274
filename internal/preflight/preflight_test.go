package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nbexport/internal/config"
	"nbexport/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputDir_WillBeCreated(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reports", "nested")
	result := CheckOutputDir("Reports directory", target)
	if !result.Passed {
		t.Fatalf("expected pass for creatable dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("check must not create the directory, stat err=%v", err)
	}
}

func TestCheckOutputDir_BlockedByFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "reports")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckOutputDir("Reports directory", filepath.Join(blocker, "eda"))
	if result.Passed {
		t.Fatal("expected failure when a file blocks the reports dir")
	}
}

func TestCheckNotebooksDir_MissingIsOptional(t *testing.T) {
	result := CheckNotebooksDir("Notebooks directory", filepath.Join(t.TempDir(), "notebooks"))
	if result.Passed || !result.Optional {
		t.Fatalf("expected optional failure, got %+v", result)
	}
	if Failed([]Result{result}) {
		t.Fatal("optional failures must not fail the run")
	}
}

func TestCheckConverter(t *testing.T) {
	binDir := t.TempDir()
	script := testsupport.WriteExecutable(t, binDir, "jupyter", `[ "$1" = "nbconvert" ] && [ "$2" = "--version" ] && { echo "7.16.4"; exit 0; }; exit 2`)
	cfg := config.Default().Converter
	cfg.Binary = script

	result := CheckConverter(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected converter check to pass, got: %s", result.Detail)
	}
	if result.Name != "Converter (nbconvert)" || !strings.Contains(result.Detail, "7.16.4") {
		t.Fatalf("unexpected result: %+v", result)
	}

	cfg.Binary = filepath.Join(binDir, "missing")
	if result := CheckConverter(context.Background(), cfg); result.Passed {
		t.Fatal("expected failure for missing converter")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ReadyProject(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithNotebooks("eda/01.ipynb"),
		testsupport.WithConverterScript(`echo "7.16.4"`),
	)

	results := RunAll(context.Background(), cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if Failed(results) {
		t.Fatal("expected no failures")
	}
}

func TestRunAll_IncludesLogDirWhenConfigured(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithConverterScript("exit 0"))
	cfg.Logging.File = filepath.Join(testsupport.BaseDir(cfg), "logs", "nbexport.log")

	results := RunAll(context.Background(), cfg)
	found := false
	for _, r := range results {
		if r.Name == "Log directory" {
			found = true
			if !r.Passed {
				t.Errorf("log directory check failed: %s", r.Detail)
			}
		}
	}
	if !found {
		t.Fatal("expected log directory check in results")
	}
}
