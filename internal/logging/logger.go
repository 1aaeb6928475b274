package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nbexport/internal/config"
)

// Options describes logger construction parameters.
//
// OutputPaths accepts "stdout", "stderr", or file paths. Stdout and Stderr
// replace the process streams when set, which lets commands route logs to
// cobra's configured writers.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	Development bool
	Stdout      io.Writer
	Stderr      io.Writer
}

// New constructs a slog logger using the provided options. Log files named in
// OutputPaths stay open for the life of the process; use Open to close them.
func New(opts Options) (*slog.Logger, error) {
	logger, _, err := Open(opts)
	return logger, err
}

// Open constructs a slog logger like New and also returns a function that
// closes any log files it opened.
func Open(opts Options) (*slog.Logger, func() error, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "json" && format != "console" {
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	outputWriter, files, err := openWriters(defaultSlice(opts.OutputPaths, []string{"stderr"}), opts)
	if err != nil {
		return nil, nil, err
	}

	addSource := opts.Development || level <= slog.LevelDebug

	var handler slog.Handler
	if format == "json" {
		handler = newJSONHandler(outputWriter, levelVar, addSource)
	} else {
		handler = newConsoleHandler(outputWriter, levelVar, addSource)
	}

	return slog.New(handler), closeFiles(files), nil
}

// NewFromConfig creates a logger using application config values. Logs always
// go to stderr; logging.file adds a second, appended destination. The returned
// function closes the log file and must be called once logging is done.
func NewFromConfig(cfg *config.Config, stderr io.Writer) (*slog.Logger, func() error, error) {
	if cfg == nil {
		return Open(Options{Level: "warn", Format: "console", Stderr: stderr})
	}

	outputs := []string{"stderr"}
	if path := strings.TrimSpace(cfg.Logging.File); path != "" {
		outputs = append(outputs, path)
	}

	return Open(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
		Stderr:      stderr,
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	case "warn", "":
		return slog.LevelWarn
	default:
		return slog.LevelWarn
	}
}

func defaultSlice(value []string, fallback []string) []string {
	if len(value) == 0 {
		return append([]string(nil), fallback...)
	}
	return append([]string(nil), value...)
}

func openWriters(paths []string, opts Options) (io.Writer, []*os.File, error) {
	seen := map[string]struct{}{}
	var writers []io.Writer
	var files []*os.File

	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout":
			writers = append(writers, fallbackWriter(opts.Stdout, os.Stdout))
		case "stderr":
			writers = append(writers, fallbackWriter(opts.Stderr, os.Stderr))
		default:
			if err := ensureLogDir(trimmed); err != nil {
				_ = closeFiles(files)()
				return nil, nil, fmt.Errorf("create log directory for %s: %w", trimmed, err)
			}
			file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				_ = closeFiles(files)()
				return nil, nil, fmt.Errorf("open log file %s: %w", trimmed, err)
			}
			writers = append(writers, file)
			files = append(files, file)
		}
	}

	switch len(writers) {
	case 0:
		return fallbackWriter(opts.Stderr, os.Stderr), files, nil
	case 1:
		return writers[0], files, nil
	default:
		return io.MultiWriter(writers...), files, nil
	}
}

func closeFiles(files []*os.File) func() error {
	return func() error {
		var errs []error
		for _, f := range files {
			if err := f.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close log file %s: %w", f.Name(), err))
			}
		}
		return errors.Join(errs...)
	}
}

func fallbackWriter(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
