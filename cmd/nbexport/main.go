package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, newRootCommand(), os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command tree and maps its error to a process exit code.
// Errors not already reported on stdout are printed to errOut.
func run(ctx context.Context, cmd *cobra.Command, errOut io.Writer) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(errOut, err)
	}
	return 1
}

// exitError ends the process with code after the command already reported
// the problem on stdout.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
