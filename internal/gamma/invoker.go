package gamma

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"sarpipe/internal/logging"
)

var commandContext = exec.CommandContext

// UnitLogs names the three per-unit capture files for one invocation
// batch: the teed command transcript, captured stdout, and captured
// stderr.
type UnitLogs struct {
	Command string
	Out     string
	Err     string
}

// UnitError marks a toolkit invocation that failed for one scene or pair.
type UnitError struct {
	Program string
	Unit    string
	Err     error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Program, e.Unit, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

// IsUnitError reports whether err is a per-unit processing failure that
// should be collated rather than propagated.
func IsUnitError(err error) bool {
	var unitErr *UnitError
	return errors.As(err, &unitErr)
}

// Invoker runs external toolkit programs.
type Invoker struct {
	binDir string
	logger *slog.Logger
}

// Option configures the invoker.
type Option func(*Invoker)

// WithBinDir resolves programs relative to the toolkit bin directory
// instead of PATH.
func WithBinDir(dir string) Option {
	return func(inv *Invoker) {
		inv.binDir = strings.TrimSpace(dir)
	}
}

// NewInvoker constructs an invoker.
func NewInvoker(logger *slog.Logger, opts ...Option) *Invoker {
	inv := &Invoker{logger: logging.NewComponentLogger(logger, "gamma")}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// LogsFor derives the per-unit log paths for a unit name in a directory.
func LogsFor(dir, unit string) UnitLogs {
	return UnitLogs{
		Command: filepath.Join(dir, unit+".cmd"),
		Out:     filepath.Join(dir, unit+".out"),
		Err:     filepath.Join(dir, unit+".err"),
	}
}

// Run executes one toolkit program for a unit. The rendered command line
// is appended to the unit's command log before execution; stdout and
// stderr stream into the unit's output and error logs. A non-zero exit
// returns a UnitError wrapping the exit status.
func (inv *Invoker) Run(ctx context.Context, unit string, logs UnitLogs, program string, args ...string) error {
	if strings.TrimSpace(program) == "" {
		return errors.New("program required")
	}
	binary := program
	if inv.binDir != "" {
		binary = filepath.Join(inv.binDir, program)
	}

	rendered := program
	if len(args) > 0 {
		rendered += " " + strings.Join(args, " ")
	}
	if err := appendLine(logs.Command, rendered); err != nil {
		return err
	}

	outFile, err := openLog(logs.Out)
	if err != nil {
		return err
	}
	defer outFile.Close()
	errFile, err := openLog(logs.Err)
	if err != nil {
		return err
	}
	defer errFile.Close()

	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = outFile
	cmd.Stderr = errFile

	inv.logger.Debug("invoking toolkit program",
		logging.String("program", program),
		logging.String("unit", unit))

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &UnitError{Program: program, Unit: unit, Err: err}
	}
	return nil
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open unit log %s: %w", path, err)
	}
	return file, nil
}

func appendLine(path, line string) error {
	file, err := openLog(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append command log: %w", err)
	}
	return nil
}
