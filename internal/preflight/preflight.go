package preflight

import (
	"context"

	"nbexport/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional checks are informational and do not fail "nbexport check".
	Optional bool
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckConverter(ctx, cfg.Converter)}
	results = append(results, CheckNotebooksDir("Notebooks directory", cfg.Paths.NotebooksDir))
	results = append(results, CheckOutputDir("Reports directory", cfg.Paths.ReportsDir))
	if cfg.Logging.File != "" {
		results = append(results, CheckOutputDir("Log directory", parentDir(cfg.Logging.File)))
	}
	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
