package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nbexport/internal/testsupport"
)

type cliTestEnv struct {
	baseDir   string
	notebooks string
	reports   string
}

// setupCLITestEnv isolates HOME and the working directory so no user config
// is picked up, and points the project root at a fresh temp directory.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("NBEXPORT_PROJECT_ROOT", base)
	t.Setenv("NBEXPORT_CONVERTER", "")
	t.Chdir(base)

	return &cliTestEnv{
		baseDir:   base,
		notebooks: filepath.Join(base, "notebooks"),
		reports:   filepath.Join(base, "reports"),
	}
}

// useConverter installs a stub converter script and selects it via the
// environment.
func (e *cliTestEnv) useConverter(t *testing.T, body string) string {
	t.Helper()
	script := testsupport.WriteExecutable(t, filepath.Join(e.baseDir, "bin"), "jupyter", body)
	t.Setenv("NBEXPORT_CONVERTER", script)
	return script
}

// htmlConverter mimics nbconvert: $4 is the notebook and $6 the output dir.
// Notebooks whose name contains "bad" fail with a kernel error.
const htmlConverter = `if [ "$2" = "--version" ]; then echo "7.16.4"; exit 0; fi
case "$4" in
*bad*) echo "kernel not found" >&2; exit 1;;
esac
name=$(basename "$4" .ipynb)
echo "<html></html>" > "$6/$name.html"`

func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	code := run(context.Background(), cmd, &stderr)
	return stdout.String(), stderr.String(), code
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}
