package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nbexport/internal/config"
	"nbexport/internal/converter"
	"nbexport/internal/logging"
	"nbexport/internal/notebook"
)

// Roots names the source and output trees of an export run.
type Roots struct {
	Notebooks string
	Reports   string
}

// Summary counts the outcomes of a batch run.
type Summary struct {
	Succeeded int
	Failed    int
}

// Total returns the number of attempted exports.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed
}

// ExitCode returns 0 when nothing failed and 1 otherwise.
func (s Summary) ExitCode() int {
	if s.Failed == 0 {
		return 0
	}
	return 1
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger attaches a logger for exporter diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logging.NewComponentLogger(logger, "exporter")
	}
}

// WithDiscovery overrides the notebook discovery options.
func WithDiscovery(opts notebook.Options) Option {
	return func(e *Exporter) {
		e.discovery = opts
	}
}

// Exporter drives a Converter over notebooks and reports progress to out.
type Exporter struct {
	roots     Roots
	conv      converter.Converter
	out       io.Writer
	discovery notebook.Options
	logger    *slog.Logger
}

// New constructs an Exporter. Status lines are written to out.
func New(roots Roots, conv converter.Converter, out io.Writer, opts ...Option) *Exporter {
	if out == nil {
		out = io.Discard
	}
	e := &Exporter{
		roots:     roots,
		conv:      conv,
		out:       out,
		discovery: notebook.Options{Sort: true},
		logger:    logging.NewComponentLogger(nil, "exporter"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromConfig builds an Exporter using the configured roots and discovery rules.
func NewFromConfig(cfg *config.Config, conv converter.Converter, out io.Writer, logger *slog.Logger) *Exporter {
	return New(
		Roots{Notebooks: cfg.Paths.NotebooksDir, Reports: cfg.Paths.ReportsDir},
		conv,
		out,
		WithLogger(logger),
		WithDiscovery(notebook.Options{
			Extension:   cfg.Discovery.Extension,
			ExcludeDirs: cfg.Discovery.ExcludeDirs,
			Sort:        cfg.Discovery.Sort,
		}),
	)
}

// Roots returns the source and output trees.
func (e *Exporter) Roots() Roots {
	return e.roots
}

// OutputDirFor returns where the report for path belongs: the mirrored
// directory when path lies under the notebooks root, the reports root otherwise.
func (e *Exporter) OutputDirFor(path string) string {
	dir, _ := notebook.MirrorDir(e.roots.Notebooks, e.roots.Reports, path)
	return dir
}

// Discover lists the notebooks a batch run would export.
func (e *Exporter) Discover() ([]notebook.Notebook, error) {
	return notebook.Discover(e.roots.Notebooks, e.discovery)
}

// ExportFile converts one notebook into outputDir and reports whether the
// converter succeeded. Failures are printed, never returned.
func (e *Exporter) ExportFile(ctx context.Context, path, outputDir string) bool {
	logger := logging.WithContext(ctx, e.logger).With(logging.Notebook(path))

	mkdirErr := os.MkdirAll(outputDir, 0o755)
	fmt.Fprintf(e.out, "Exporting: %s -> %s/\n", filepath.Base(path), outputDir)
	if mkdirErr != nil {
		logger.Error("output directory unavailable", logging.String("dir", outputDir), logging.Error(mkdirErr))
		fmt.Fprintf(e.out, "  ERROR: create output directory: %v\n", mkdirErr)
		return false
	}

	result := e.conv.Convert(ctx, path, outputDir)
	if !result.OK {
		diagnostic := result.Diagnostic
		if strings.TrimSpace(diagnostic) == "" && result.Err != nil {
			diagnostic = result.Err.Error()
		}
		fmt.Fprintf(e.out, "  ERROR: %s\n", diagnostic)
		return false
	}

	fmt.Fprintf(e.out, "  OK: %s\n", notebook.ReportName(path))
	return true
}

// ExportNotebook exports a single notebook into the directory chosen by
// OutputDirFor.
func (e *Exporter) ExportNotebook(ctx context.Context, path string) bool {
	return e.ExportFile(ctx, path, e.OutputDirFor(path))
}

// ExportAll exports every discovered notebook into its mirrored directory.
// The returned error is non-nil only when discovery fails or ctx is
// cancelled; the summary then covers the notebooks attempted so far.
func (e *Exporter) ExportAll(ctx context.Context) (Summary, error) {
	logger := logging.WithContext(ctx, e.logger)

	notebooks, err := e.Discover()
	if err != nil {
		return Summary{}, err
	}
	if len(notebooks) == 0 {
		logger.Warn("no notebooks found", logging.String("dir", e.roots.Notebooks))
	}

	var summary Summary
	for _, nb := range notebooks {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outputDir := filepath.Join(e.roots.Reports, filepath.Dir(nb.Rel))
		if e.ExportFile(ctx, nb.Path, outputDir) {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	logger.Info("batch finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}
