package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sarpipe/internal/config"
	"sarpipe/internal/lists"
	"sarpipe/internal/logging"
	"sarpipe/internal/pbs"
)

// Generator materializes job descriptors as scripts on disk, submits them
// to the queue, and records acceptances in the ledger. It is the only
// component that hands dependency handles to dependents.
type Generator struct {
	cfg       *config.Config
	ledger    *Ledger
	submitter pbs.Submitter
	logger    *slog.Logger
	runID     string
}

// NewGenerator constructs a job generator for one run.
func NewGenerator(cfg *config.Config, ledger *Ledger, submitter pbs.Submitter, logger *slog.Logger, runID string) *Generator {
	return &Generator{
		cfg:       cfg,
		ledger:    ledger,
		submitter: submitter,
		logger:    logging.NewComponentLogger(logger, "jobs"),
		runID:     runID,
	}
}

// Submit writes the descriptor's script and submits it, returning the
// queue handle. A unit already recorded in the ledger for this run is not
// submitted again; its recorded handle is returned so dependents still
// chain correctly.
func (g *Generator) Submit(ctx context.Context, d Descriptor) (pbs.JobHandle, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	if prior, err := g.ledger.Lookup(ctx, g.runID, d.Stage, d.UnitKey); err != nil {
		return "", err
	} else if prior != nil {
		g.logger.Debug("submission already recorded",
			logging.String(logging.FieldStage, d.Stage),
			logging.String("unit", d.UnitKey),
			logging.String("handle", string(prior.Handle)))
		return prior.Handle, nil
	}

	scriptPath, err := g.writeScript(d)
	if err != nil {
		return "", err
	}

	handle, err := g.submitter.Submit(ctx, scriptPath, d.Dependencies)
	if err != nil {
		return "", err
	}

	if err := g.ledger.Record(ctx, Submission{
		RunID:       g.runID,
		Stage:       d.Stage,
		UnitKey:     d.UnitKey,
		ScriptPath:  scriptPath,
		Handle:      handle,
		DependsOn:   d.Dependencies,
		SubmittedAt: time.Now(),
	}); err != nil {
		return "", err
	}

	g.logger.Info("job submitted",
		logging.String(logging.FieldStage, d.Stage),
		logging.String("unit", d.UnitKey),
		logging.String("handle", string(handle)))
	return handle, nil
}

// SubmitPairJobs submits the interferogram pair jobs for a stage. At or
// below the split threshold every pair becomes an individual job carrying
// the upstream dependencies. Above it, pairs are partitioned into
// contiguous sub-lists and each sub-list is submitted as one bulk
// meta-job whose body enumerates and submits the per-pair jobs it owns;
// bulk job i depends on bulk job i-1 so outstanding jobs stay bounded.
// The returned handles are what a completion gate must wait on.
func (g *Generator) SubmitPairJobs(
	ctx context.Context,
	stage string,
	pairs []lists.Pair,
	resources config.Resources,
	bodyFor func(lists.Pair) []string,
	dependencies []pbs.JobHandle,
) ([]pbs.JobHandle, error) {
	if len(pairs) <= SplitThreshold {
		handles := make([]pbs.JobHandle, 0, len(pairs))
		for _, pair := range pairs {
			handle, err := g.Submit(ctx, Descriptor{
				Name:         jobName(stage, pair.Name()),
				Stage:        stage,
				UnitKey:      pair.Name(),
				Resources:    resources,
				Body:         bodyFor(pair),
				Dependencies: dependencies,
			})
			if err != nil {
				return nil, err
			}
			handles = append(handles, handle)
		}
		return handles, nil
	}

	chunks := SplitPairs(pairs, SplitThreshold)
	g.logger.Info("pair list exceeds split threshold",
		logging.String(logging.FieldStage, stage),
		logging.Int("pairs", len(pairs)),
		logging.Int("sublists", len(chunks)))

	qsubLine := func(script string) string {
		if len(dependencies) == 0 {
			return fmt.Sprintf("%s %s", g.cfg.QsubBinary(), filepath.Base(script))
		}
		tokens := make([]string, 0, len(dependencies))
		for _, dep := range dependencies {
			tokens = append(tokens, string(dep))
		}
		return fmt.Sprintf("%s -W depend=afterok:%s %s",
			g.cfg.QsubBinary(), strings.Join(tokens, ":"), filepath.Base(script))
	}

	handles := make([]pbs.JobHandle, 0, len(chunks))
	var previous pbs.JobHandle
	for i, chunk := range chunks {
		body := make([]string, 0, len(chunk)+1)
		body = append(body, fmt.Sprintf("cd %s", g.cfg.Paths.BatchJobDir))
		for _, pair := range chunk {
			pairScript, err := g.writeScript(Descriptor{
				Name:      jobName(stage, pair.Name()),
				Stage:     stage,
				UnitKey:   pair.Name(),
				Resources: resources,
				Body:      bodyFor(pair),
			})
			if err != nil {
				return nil, err
			}
			body = append(body, qsubLine(pairScript))
		}

		bulk := Descriptor{
			Name:      jobName(stage, fmt.Sprintf("bulk%02d", i+1)),
			Stage:     stage,
			UnitKey:   fmt.Sprintf("bulk%02d", i+1),
			Resources: g.cfg.Batch.ListJobs,
			Body:      body,
		}
		if i == 0 {
			bulk.Dependencies = dependencies
		} else {
			// Strict chain: sub-list i waits on sub-list i-1.
			bulk.Dependencies = []pbs.JobHandle{previous}
		}

		handle, err := g.Submit(ctx, bulk)
		if err != nil {
			return nil, err
		}
		previous = handle
		handles = append(handles, handle)
	}
	return handles, nil
}

// SubmitGate submits a stage-completion gate: a minimal job that waits on
// every handle in the stage and writes a durable done marker. Downstream
// stages depend on the gate, not on individual sibling jobs.
func (g *Generator) SubmitGate(ctx context.Context, stage string, waitOn []pbs.JobHandle) (pbs.JobHandle, error) {
	marker := filepath.Join(g.cfg.Paths.BatchJobDir, stage+".done")
	return g.Submit(ctx, Descriptor{
		Name:         jobName(stage, "gate"),
		Stage:        stage,
		UnitKey:      "gate",
		Resources:    g.cfg.Batch.ListJobs,
		Body:         []string{fmt.Sprintf("touch %s", marker)},
		Dependencies: waitOn,
	})
}

func (g *Generator) writeScript(d Descriptor) (string, error) {
	if err := os.MkdirAll(g.cfg.Paths.BatchJobDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure batch job directory: %w", err)
	}
	scriptPath := filepath.Join(g.cfg.Paths.BatchJobDir, d.Name+".bash")
	content := renderScript(d, g.cfg.Batch.Project, g.cfg.Batch.MailList)
	if err := os.WriteFile(scriptPath, []byte(content), 0o755); err != nil {
		return "", fmt.Errorf("write job script %s: %w", scriptPath, err)
	}
	return scriptPath, nil
}

func jobName(stage, unit string) string {
	replacer := strings.NewReplacer(",", "-", "/", "-", " ", "-")
	return stage + "_" + replacer.Replace(unit)
}
