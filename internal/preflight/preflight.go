// Package preflight checks the run environment before any stage starts:
// directory access, toolkit binaries, and the queue submission command.
package preflight

import (
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"sarpipe/internal/config"
	"sarpipe/internal/sensors"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks applicable to the configured platform.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Project directory", cfg.Paths.ProjectDir),
		CheckDirectoryAccess("Raw archive", cfg.Paths.RawDataDir),
	}

	if sensor, err := sensors.Lookup(cfg.Sensor); err != nil {
		results = append(results, Result{Name: "Sensor family", Detail: err.Error()})
	} else {
		results = append(results, CheckBinary("SLC procedure", sensor.Procedure(), cfg.Paths.ToolkitBin))
	}

	if cfg.Platform == config.PlatformBatchCluster {
		results = append(results, CheckBinary("Queue submission", cfg.QsubBinary(), ""))
	}

	return results
}

// CheckDirectoryAccess verifies a directory exists and is fully accessible.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "path not configured"}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not accessible: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckBinary verifies an external executable can be resolved, either on
// PATH or under the given bin directory.
func CheckBinary(name, command, binDir string) Result {
	target := command
	if strings.TrimSpace(binDir) != "" {
		target = binDir + "/" + command
	}
	if _, err := exec.LookPath(target); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("binary %q not found", target)}
	}
	return Result{Name: name, Passed: true, Detail: target}
}
