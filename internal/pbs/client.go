package pbs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"sarpipe/internal/logging"
)

var commandContext = exec.CommandContext

// JobHandle is the opaque identifier the queue returns on submission.
// Dependents reference it through afterok dependencies; nothing else may
// interpret its contents.
type JobHandle string

// ErrSubmission marks a queue rejection. It is fatal for the rejected
// job's dependents; no retry is attempted.
var ErrSubmission = errors.New("batch submission rejected")

// Submitter accepts a job script and its upstream dependencies and
// returns the handle the queue assigned.
type Submitter interface {
	Submit(ctx context.Context, scriptPath string, dependencies []JobHandle) (JobHandle, error)
}

// QsubClient submits scripts through the qsub command line.
type QsubClient struct {
	binary string
	logger *slog.Logger
}

// NewQsubClient constructs the production queue client.
func NewQsubClient(logger *slog.Logger) *QsubClient {
	return &QsubClient{binary: "qsub", logger: logging.NewComponentLogger(logger, "pbs")}
}

// Submit runs qsub for the script, wiring afterok dependencies, and
// returns the trimmed job identifier from the queue's stdout.
func (c *QsubClient) Submit(ctx context.Context, scriptPath string, dependencies []JobHandle) (JobHandle, error) {
	if strings.TrimSpace(scriptPath) == "" {
		return "", errors.New("script path required")
	}

	args := make([]string, 0, 3)
	if len(dependencies) > 0 {
		tokens := make([]string, 0, len(dependencies))
		for _, dep := range dependencies {
			if dep != "" {
				tokens = append(tokens, string(dep))
			}
		}
		if len(tokens) > 0 {
			args = append(args, "-W", "depend=afterok:"+strings.Join(tokens, ":"))
		}
	}
	args = append(args, filepath.Base(scriptPath))

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	cmd.Dir = filepath.Dir(scriptPath)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: qsub %s: %v", ErrSubmission, filepath.Base(scriptPath), err)
	}

	handle := JobHandle(strings.TrimSpace(strings.SplitN(string(output), "\n", 2)[0]))
	if handle == "" {
		return "", fmt.Errorf("%w: qsub returned no job identifier", ErrSubmission)
	}
	c.logger.Debug("job submitted",
		logging.String("script", filepath.Base(scriptPath)),
		logging.String("handle", string(handle)),
		logging.Int("dependencies", len(dependencies)))
	return handle, nil
}

var _ Submitter = (*QsubClient)(nil)
