package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"nbexport/internal/config"
	"nbexport/internal/logging"
)

// Converter renders one notebook into outputDir.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputDir string) Result
}

// Result reports the outcome of one conversion.
type Result struct {
	// OK is true when the tool exited with status zero.
	OK bool
	// Diagnostic is the tool's standard error, or a description of why the
	// tool could not be run.
	Diagnostic string
	// ExitCode is the tool's exit status, or -1 when it never exited normally.
	ExitCode int
	// Err is set when the tool could not be started or was interrupted.
	Err error
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stdout, stderr io.Writer) error
}

// Option configures the client.
type Option func(*NBConvert)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *NBConvert) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger attaches a logger for converter diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *NBConvert) {
		c.logger = logging.NewComponentLogger(logger, "converter")
	}
}

// NBConvert invokes `<binary> <subcommand> --to <format> <input> --output-dir <dir>`.
type NBConvert struct {
	binary     string
	subcommand string
	format     string
	extraArgs  []string
	timeout    time.Duration
	exec       Executor
	logger     *slog.Logger
}

// New constructs an nbconvert-backed converter from configuration.
func New(cfg config.Converter, opts ...Option) (*NBConvert, error) {
	binary := strings.TrimSpace(cfg.Binary)
	if binary == "" {
		return nil, errors.New("converter binary required")
	}
	format := strings.TrimSpace(cfg.Format)
	if format == "" {
		format = "html"
	}
	c := &NBConvert{
		binary:     binary,
		subcommand: strings.TrimSpace(cfg.Subcommand),
		format:     format,
		extraArgs:  append([]string(nil), cfg.ExtraArgs...),
		timeout:    cfg.Timeout(),
		exec:       commandExecutor{},
		logger:     logging.NewComponentLogger(nil, "converter"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Binary returns the executable the converter runs.
func (c *NBConvert) Binary() string {
	return c.binary
}

// Args returns the argument list used to convert inputPath into outputDir.
func (c *NBConvert) Args(inputPath, outputDir string) []string {
	args := make([]string, 0, 6+len(c.extraArgs))
	if c.subcommand != "" {
		args = append(args, c.subcommand)
	}
	args = append(args, "--to", c.format, inputPath, "--output-dir", outputDir)
	return append(args, c.extraArgs...)
}

// Convert runs the tool once and blocks until it exits.
func (c *NBConvert) Convert(ctx context.Context, inputPath, outputDir string) Result {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := c.Args(inputPath, outputDir)
	logger := logging.WithContext(ctx, c.logger).With(logging.Notebook(inputPath))
	logger.Debug("running converter", logging.String("binary", c.binary), logging.Any("args", args))

	var stdout, stderr bytes.Buffer
	started := time.Now()
	err := c.exec.Run(runCtx, c.binary, args, &stdout, &stderr)
	elapsed := time.Since(started)

	if out := strings.TrimSpace(stdout.String()); out != "" {
		logger.Debug("converter stdout", logging.String("output", out))
	}

	if err == nil {
		logger.Info("converter finished", logging.Duration("elapsed", elapsed))
		return Result{OK: true, Diagnostic: stderr.String(), ExitCode: 0}
	}

	result := Result{Diagnostic: stderr.String(), ExitCode: -1}
	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		result.Err = ctx.Err()
	case runCtx.Err() != nil:
		result.Err = fmt.Errorf("converter timed out after %s: %w", c.timeout, runCtx.Err())
		result.Diagnostic = appendDiagnostic(result.Diagnostic, result.Err.Error())
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.Err = fmt.Errorf("run %s: %w", c.binary, err)
		result.Diagnostic = appendDiagnostic(result.Diagnostic, result.Err.Error())
	}

	logger.Warn("converter failed",
		logging.Int("exit_code", result.ExitCode),
		logging.Duration("elapsed", elapsed),
		logging.Error(err),
	)
	return result
}

func appendDiagnostic(existing, msg string) string {
	if strings.TrimSpace(existing) == "" {
		return msg
	}
	if !strings.HasSuffix(existing, "\n") {
		existing += "\n"
	}
	return existing + msg
}

// waitDelay bounds how long Run keeps waiting on the output pipes after the
// process group has been killed.
const waitDelay = 5 * time.Second

type commandExecutor struct{}

// Run starts the tool in its own process group. nbconvert launches kernels
// and wrapper scripts fork, so cancellation kills the whole group rather than
// only the direct child.
func (commandExecutor) Run(ctx context.Context, binary string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
	cmd.WaitDelay = waitDelay
	return cmd.Run()
}
