package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"nbexport/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory per test. The
// notebooks and reports directories are not created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ProjectRoot = base
	cfgVal.Paths.NotebooksDir = filepath.Join(base, "notebooks")
	cfgVal.Paths.ReportsDir = filepath.Join(base, "reports")
	cfgVal.Converter.Binary = "jupyter"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithNotebooks writes empty notebook fixtures under the notebooks directory.
func WithNotebooks(rels ...string) ConfigOption {
	return func(b *configBuilder) {
		WriteNotebooks(b.t, b.cfg.Paths.NotebooksDir, rels...)
	}
}

// WithConverterScript installs an executable shell script named "jupyter" in
// a private bin directory, prepends it to PATH, and points the config at it.
// The script receives the converter arguments unchanged.
func WithConverterScript(body string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		target := WriteExecutable(b.t, binDir, "jupyter", body)
		b.cfg.Converter.Binary = target
		PrependPath(b.t, binDir)
	}
}

// WriteExecutable writes a /bin/sh script and returns its path.
func WriteExecutable(t testing.TB, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	script := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(target, script, 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// PrependPath puts dir at the front of PATH for the duration of the test.
func PrependPath(t testing.TB, dir string) {
	t.Helper()
	oldPath := os.Getenv("PATH")
	newPath := dir
	if oldPath != "" {
		newPath = dir + string(os.PathListSeparator) + oldPath
	}
	if err := os.Setenv("PATH", newPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.ProjectRoot
}
