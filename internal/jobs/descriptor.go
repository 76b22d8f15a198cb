package jobs

import (
	"errors"
	"strings"

	"sarpipe/internal/config"
	"sarpipe/internal/pbs"
)

// Descriptor is one unit of deferred work: a resource request, a script
// body of toolkit invocations, and the handles of the jobs it must run
// after. Its lifecycle ends once the queue accepts it; the orchestrator
// never inspects completion, only submission success and the handle.
type Descriptor struct {
	Name         string
	Stage        string
	UnitKey      string
	Resources    config.Resources
	Body         []string
	Dependencies []pbs.JobHandle
}

// Validate checks the descriptor is submittable.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("job name required")
	}
	if strings.TrimSpace(d.Stage) == "" {
		return errors.New("job stage required")
	}
	if strings.TrimSpace(d.UnitKey) == "" {
		return errors.New("job unit key required")
	}
	if len(d.Body) == 0 {
		return errors.New("job body required")
	}
	return nil
}
