package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"nbexport/internal/config"
	"nbexport/internal/deps"
)

// CheckConverter verifies the converter binary resolves on PATH and that its
// subcommand answers --version.
func CheckConverter(ctx context.Context, cfg config.Converter) Result {
	name := "Converter"
	probe := []string{"--version"}
	if sub := strings.TrimSpace(cfg.Subcommand); sub != "" {
		name = "Converter (" + sub + ")"
		probe = []string{sub, "--version"}
	}
	status := deps.CheckBinaries(ctx, []deps.Requirement{{
		Name:        name,
		Command:     cfg.Binary,
		Description: "Renders notebooks to " + strings.ToUpper(cfg.Format),
		ProbeArgs:   probe,
	}})[0]

	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}
	detail := status.Path
	if status.Version != "" {
		detail = fmt.Sprintf("%s (version %s)", status.Path, status.Version)
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckNotebooksDir verifies the notebooks directory can be listed. A missing
// directory is reported but optional: batch runs treat it as empty.
func CheckNotebooksDir(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (does not exist; nothing to export)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckOutputDir verifies the directory is writable, or, when it does not
// exist yet, that its nearest existing ancestor is.
func CheckOutputDir(name, path string) Result {
	existing, err := nearestExisting(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if existing == filepath.Clean(path) {
		return CheckDirectoryAccess(name, path)
	}
	access := CheckDirectoryAccess(name, existing)
	if !access.Passed {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot be created under %s)", path, access.Detail)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func nearestExisting(path string) (string, error) {
	current := filepath.Clean(path)
	for {
		_, err := os.Stat(current)
		if err == nil {
			return current, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", current, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing ancestor for %s", path)
		}
		current = parent
	}
}

func parentDir(path string) string {
	return filepath.Dir(filepath.Clean(path))
}
