package pbs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"sarpipe/internal/logging"
)

func stubQsub(t *testing.T, mode string) *[]string {
	t.Helper()
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string{name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "QSUB_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &captured
}

func TestSubmitReturnsTrimmedHandle(t *testing.T) {
	captured := stubQsub(t, "success")
	client := NewQsubClient(logging.NewNop())

	script := filepath.Join(t.TempDir(), "create_slc_20150101.bash")
	handle, err := client.Submit(context.Background(), script, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if handle != "12345.pbsserver" {
		t.Fatalf("unexpected handle: %q", handle)
	}
	if len(*captured) == 0 {
		t.Fatal("expected qsub invocation to be captured")
	}
	args := *captured
	if args[len(args)-1] != "create_slc_20150101.bash" {
		t.Fatalf("expected script base name as final argument, got %v", args)
	}
}

func TestSubmitWiresAfterokDependencies(t *testing.T) {
	captured := stubQsub(t, "success")
	client := NewQsubClient(logging.NewNop())

	script := filepath.Join(t.TempDir(), "gate.bash")
	_, err := client.Submit(context.Background(), script, []JobHandle{"11.pbsserver", "12.pbsserver"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	joined := strings.Join(*captured, " ")
	if !strings.Contains(joined, "-W depend=afterok:11.pbsserver:12.pbsserver") {
		t.Fatalf("missing afterok dependency clause: %v", joined)
	}
}

func TestSubmitSkipsEmptyDependencyHandles(t *testing.T) {
	captured := stubQsub(t, "success")
	client := NewQsubClient(logging.NewNop())

	script := filepath.Join(t.TempDir(), "gate.bash")
	if _, err := client.Submit(context.Background(), script, []JobHandle{""}); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if strings.Contains(strings.Join(*captured, " "), "depend=") {
		t.Fatalf("empty handles must not produce a dependency clause: %v", *captured)
	}
}

func TestSubmitRejectionWrapsErrSubmission(t *testing.T) {
	stubQsub(t, "reject")
	client := NewQsubClient(logging.NewNop())

	_, err := client.Submit(context.Background(), filepath.Join(t.TempDir(), "job.bash"), nil)
	if !errors.Is(err, ErrSubmission) {
		t.Fatalf("expected ErrSubmission, got %v", err)
	}
}

func TestSubmitEmptyQueueOutput(t *testing.T) {
	stubQsub(t, "silent")
	client := NewQsubClient(logging.NewNop())

	_, err := client.Submit(context.Background(), filepath.Join(t.TempDir(), "job.bash"), nil)
	if !errors.Is(err, ErrSubmission) {
		t.Fatalf("expected ErrSubmission for empty output, got %v", err)
	}
}

func TestSubmitRequiresScriptPath(t *testing.T) {
	client := NewQsubClient(logging.NewNop())
	if _, err := client.Submit(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for empty script path")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("QSUB_HELPER_MODE") {
	case "success":
		fmt.Println("12345.pbsserver")
		os.Exit(0)
	case "reject":
		fmt.Fprintln(os.Stderr, "qsub: would exceed queue generic resource limit")
		os.Exit(1)
	case "silent":
		os.Exit(0)
	default:
		os.Exit(0)
	}
}
