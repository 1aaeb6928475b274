package deps

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const probeTimeout = 15 * time.Second

// Requirement defines an external dependency nbexport relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// ProbeArgs, when set, are passed to Command to confirm it actually runs
	// (e.g. "nbconvert --version"). A non-zero exit marks it unavailable.
	ProbeArgs []string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, checkBinary(ctx, req))
	}
	return results
}

func checkBinary(ctx context.Context, req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Path = path
	if len(req.ProbeArgs) == 0 {
		status.Available = true
		return status
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	var out bytes.Buffer
	probe := exec.CommandContext(probeCtx, path, req.ProbeArgs...) //nolint:gosec
	probe.Stdout = &out
	probe.Stderr = &out
	if err := probe.Run(); err != nil {
		status.Detail = fmt.Sprintf("%s %s failed: %s", cmd, strings.Join(req.ProbeArgs, " "), firstLine(out.String(), err.Error()))
		return status
	}
	status.Available = true
	status.Version = firstLine(out.String(), "")
	return status
}

func firstLine(text, fallback string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
