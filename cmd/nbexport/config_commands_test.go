package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, code := runCLI(t, "config", "validate")
	if code != 0 {
		t.Fatalf("config validate: exit %d", code)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "Reports directory: "+env.reports)
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(env.baseDir, "nbexport.toml")
	out, _, code = runCLI(t, "config", "init", "--path", target)
	if code != 0 {
		t.Fatalf("config init: exit %d", code)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// The project-local file is now discovered from the working directory.
	out, _, code = runCLI(t, "config", "validate")
	if code != 0 {
		t.Fatalf("config validate after init: exit %d", code)
	}
	requireContains(t, out, "Config path: "+target)

	_, errOut, code := runCLI(t, "config", "init", "--path", target)
	if code != 1 {
		t.Fatalf("expected refusal to overwrite, got exit %d", code)
	}
	requireContains(t, errOut, "already exists")

	if _, _, code := runCLI(t, "config", "init", "--path", target, "--overwrite"); code != 0 {
		t.Fatalf("config init --overwrite: exit %d", code)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "bad.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, errOut, code := runCLI(t, "--config", path)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if errOut == "" {
		t.Fatal("expected a config error on stderr")
	}
}
