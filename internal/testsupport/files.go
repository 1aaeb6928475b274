package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// MinimalNotebook is the smallest valid nbformat 4 document.
const MinimalNotebook = `{"cells": [], "metadata": {}, "nbformat": 4, "nbformat_minor": 5}`

// WriteNotebooks creates each slash-separated relative path under root with
// minimal notebook content, creating parent directories as needed.
func WriteNotebooks(t testing.TB, root string, rels ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(MinimalNotebook), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		paths = append(paths, path)
	}
	return paths
}

// ListFiles returns every regular file under root as slash-separated
// relative paths. A missing root yields nil.
func ListFiles(t testing.TB, root string) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return files
}
