package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"nbexport/internal/converter"
	"nbexport/internal/exporter"
	"nbexport/internal/logging"
	"nbexport/internal/runlock"
)

// runExportAll converts every discovered notebook and prints the batch summary.
func runExportAll(cmd *cobra.Command, ctx *commandContext) error {
	session, err := ctx.newExportSession(cmd)
	if err != nil {
		return err
	}
	defer session.close()

	roots := session.exporter.Roots()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Exporting notebooks from %s to %s\n\n", roots.Notebooks, roots.Reports)

	summary, err := session.exporter.ExportAll(session.ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nDone: %d exported, %d failed\n", summary.Succeeded, summary.Failed)
	if code := summary.ExitCode(); code != 0 {
		return exitError{code: code}
	}
	return nil
}

// runExportSingle converts one notebook. A missing path is reported before
// anything touches the filesystem.
func runExportSingle(cmd *cobra.Command, ctx *commandContext, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: %s not found\n", path)
			return exitError{code: 1}
		}
		return fmt.Errorf("inspect notebook: %w", err)
	}

	session, err := ctx.newExportSession(cmd)
	if err != nil {
		return err
	}
	defer session.close()

	if !session.exporter.ExportNotebook(session.ctx, path) {
		return exitError{code: 1}
	}
	return nil
}

type exportSession struct {
	ctx      context.Context
	exporter *exporter.Exporter
	lock     *runlock.Lock
	closeLog func() error
}

func (s *exportSession) close() {
	_ = s.lock.Release()
	_ = s.closeLog()
}

// newExportSession wires logger, converter, and exporter for one run and
// takes the reports lock.
func (c *commandContext) newExportSession(cmd *cobra.Command) (*exportSession, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	runCtx, logger, closeLog, err := c.newLogger(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	conv, err := converter.New(cfg.Converter, converter.WithLogger(logger))
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		_ = closeLog()
		if errors.Is(err, runlock.ErrHeld) {
			return nil, fmt.Errorf("another nbexport run is writing to %s", cfg.Paths.ReportsDir)
		}
		return nil, err
	}

	logging.WithContext(runCtx, logger).Debug("export session started",
		logging.String("notebooks_dir", cfg.Paths.NotebooksDir),
		logging.String("reports_dir", cfg.Paths.ReportsDir),
		logging.String("converter", conv.Binary()),
	)

	return &exportSession{
		ctx:      runCtx,
		exporter: exporter.NewFromConfig(cfg, conv, cmd.OutOrStdout(), logger),
		lock:     lock,
		closeLog: closeLog,
	}, nil
}
