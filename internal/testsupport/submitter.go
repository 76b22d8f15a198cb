package testsupport

import (
	"context"
	"fmt"
	"sync"

	"sarpipe/internal/pbs"
)

// FakeSubmitter records submissions and hands out sequential handles. It
// stands in for the batch queue in tests.
type FakeSubmitter struct {
	mu          sync.Mutex
	next        int
	Submissions []FakeSubmission
	Fail        func(scriptPath string) error
}

// FakeSubmission is one recorded Submit call.
type FakeSubmission struct {
	ScriptPath   string
	Dependencies []pbs.JobHandle
	Handle       pbs.JobHandle
}

// Submit implements pbs.Submitter.
func (f *FakeSubmitter) Submit(_ context.Context, scriptPath string, dependencies []pbs.JobHandle) (pbs.JobHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		if err := f.Fail(scriptPath); err != nil {
			return "", err
		}
	}
	f.next++
	handle := pbs.JobHandle(fmt.Sprintf("%d.pbsserver", f.next))
	f.Submissions = append(f.Submissions, FakeSubmission{
		ScriptPath:   scriptPath,
		Dependencies: append([]pbs.JobHandle{}, dependencies...),
		Handle:       handle,
	})
	return handle, nil
}

var _ pbs.Submitter = (*FakeSubmitter)(nil)
