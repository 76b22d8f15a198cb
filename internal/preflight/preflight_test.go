package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"sarpipe/internal/config"
	"sarpipe/internal/preflight"
	"sarpipe/internal/testsupport"
)

func resultFor(t *testing.T, results []preflight.Result, name string) preflight.Result {
	t.Helper()
	for _, result := range results {
		if result.Name == name {
			return result
		}
	}
	t.Fatalf("no result named %q in %+v", name, results)
	return preflight.Result{}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := preflight.CheckDirectoryAccess("Project directory", dir)
	if !result.Passed {
		t.Fatalf("expected accessible directory to pass: %+v", result)
	}

	missing := preflight.CheckDirectoryAccess("Project directory", filepath.Join(dir, "absent"))
	if missing.Passed {
		t.Fatal("expected missing directory to fail")
	}

	empty := preflight.CheckDirectoryAccess("Project directory", "")
	if empty.Passed || empty.Detail != "path not configured" {
		t.Fatalf("unexpected result for empty path: %+v", empty)
	}
}

func TestCheckBinaryOnPathAndInBinDir(t *testing.T) {
	binDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(binDir, "process_S1_SLC"), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	found := preflight.CheckBinary("SLC procedure", "process_S1_SLC", binDir)
	if !found.Passed {
		t.Fatalf("expected bin dir resolution to pass: %+v", found)
	}

	absent := preflight.CheckBinary("SLC procedure", "no_such_tool", binDir)
	if absent.Passed {
		t.Fatal("expected unresolved binary to fail")
	}

	shell := preflight.CheckBinary("Shell", "sh", "")
	if !shell.Passed {
		t.Fatalf("expected PATH resolution for sh to pass: %+v", shell)
	}
}

func TestRunAllInteractiveSkipsQueueCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	results := preflight.RunAll(cfg)

	if !resultFor(t, results, "Project directory").Passed {
		t.Fatal("expected project directory check to pass")
	}
	if !resultFor(t, results, "SLC procedure").Passed {
		t.Fatal("expected stubbed SLC procedure to resolve")
	}
	for _, result := range results {
		if result.Name == "Queue submission" {
			t.Fatal("interactive platform must not check the queue")
		}
	}
}

func TestRunAllBatchChecksQueue(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithPlatform(config.PlatformBatchCluster),
		testsupport.WithStubbedBinaries(),
	)
	results := preflight.RunAll(cfg)
	if !resultFor(t, results, "Queue submission").Passed {
		t.Fatal("expected stubbed qsub to resolve on the batch platform")
	}
}
