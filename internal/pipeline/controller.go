package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"sarpipe/internal/config"
	"sarpipe/internal/gamma"
	"sarpipe/internal/jobs"
	"sarpipe/internal/lists"
	"sarpipe/internal/logging"
	"sarpipe/internal/pbs"
	"sarpipe/internal/report"
	"sarpipe/internal/sensors"
)

// Controller walks the fixed stage order for one run, gating each stage
// on its configured toggle and dispatching units either inline through
// the invoker (interactive platform) or as chained batch jobs.
type Controller struct {
	cfg      *config.Config
	sensor   sensors.Sensor
	lm       *lists.Manager
	collator *report.Collator
	invoker  *gamma.Invoker
	gen      *jobs.Generator
	logger   *slog.Logger
	runID    string

	scenes []lists.Scene
	slaves []lists.Scene
	pairs  []lists.Pair
	halted bool
}

// New constructs a controller. gen may be nil on the interactive
// platform; it is required for batch runs.
func New(
	cfg *config.Config,
	lm *lists.Manager,
	collator *report.Collator,
	invoker *gamma.Invoker,
	gen *jobs.Generator,
	logger *slog.Logger,
	runID string,
) (*Controller, error) {
	sensor, err := sensors.Lookup(cfg.Sensor)
	if err != nil {
		return nil, err
	}
	if cfg.Platform == config.PlatformBatchCluster && gen == nil {
		return nil, errors.New("batch platform requires a job generator")
	}
	return &Controller{
		cfg:      cfg,
		sensor:   sensor,
		lm:       lm,
		collator: collator,
		invoker:  invoker,
		gen:      gen,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		runID:    runID,
	}, nil
}

// Halted reports whether the run stopped at the subsetting decision
// point. A halt is a clean stop, not a failure.
func (c *Controller) Halted() bool { return c.halted }

// Run executes the configured stages in order. Unit failures are
// absorbed into stage error reports; only configuration and
// missing-input conditions return an error.
func (c *Controller) Run(ctx context.Context, incremental bool) error {
	deps, err := c.setup(ctx, incremental)
	if err != nil {
		return err
	}

	order := mainOrder
	if incremental {
		order = addScenesOrder
	}

	for _, stage := range order {
		toggle := stage.Toggle(c.cfg, incremental)
		name := stage.Name(incremental)
		if !toggle.Enabled() {
			c.logger.Info("stage skipped",
				logging.String(logging.FieldStage, name),
				logging.String("toggle", string(toggle)))
			continue
		}

		var halt bool
		switch c.cfg.Platform {
		case config.PlatformBatchCluster:
			deps, halt, err = c.submitStage(ctx, stage, incremental, deps)
		default:
			halt, err = c.runInline(ctx, stage, incremental)
		}
		if err != nil {
			return err
		}
		if halt {
			c.halted = true
			c.logger.Info("run halted awaiting subsetting decision",
				logging.String(logging.FieldStage, name),
				logging.String("hint", "set SUBSETTING_DECIDED=process to continue"))
			return nil
		}
	}
	return nil
}

// setup refreshes the entity lists and, on the batch platform, submits
// the chained list-builder jobs whose completion downstream stage jobs
// depend on. A missing raw-data source or additional-scenes list is
// stage-fatal: no later stage may run without its lists.
func (c *Controller) setup(ctx context.Context, incremental bool) ([]pbs.JobHandle, error) {
	if err := c.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	if incremental {
		if err := c.setupIncremental(); err != nil {
			return nil, err
		}
	} else {
		scenes, err := c.lm.RefreshSceneList()
		if err != nil {
			return nil, fmt.Errorf("scene list generation: %w", err)
		}
		slaves, err := c.lm.RefreshSlaveList()
		if err != nil {
			return nil, fmt.Errorf("slave list generation: %w", err)
		}
		pairs, err := c.lm.RefreshPairList()
		if err != nil {
			return nil, fmt.Errorf("pair list generation: %w", err)
		}
		c.scenes, c.slaves, c.pairs = scenes, slaves, pairs
	}

	if c.cfg.Platform != config.PlatformBatchCluster {
		return nil, nil
	}
	return c.submitListJobs(ctx)
}

// setupIncremental appends the additional-scenes list and filters the
// run's entity lists down to the newly added entries.
func (c *Controller) setupIncremental() error {
	addPath := filepath.Join(c.cfg.Paths.ListDir, "add_scenes.list")
	lines, err := lists.ReadLines(addPath)
	if err != nil {
		return fmt.Errorf("additional scenes: %w", err)
	}
	additional := make([]lists.Scene, 0, len(lines))
	for _, line := range lines {
		scene, err := lists.ParseScene(line)
		if err != nil {
			return fmt.Errorf("additional scenes: %w", err)
		}
		additional = append(additional, scene)
	}

	_, added, err := c.lm.AppendScenes(additional)
	if err != nil {
		return err
	}
	if _, err := c.lm.RefreshSlaveList(); err != nil {
		return fmt.Errorf("slave list generation: %w", err)
	}
	allPairs, err := c.lm.RefreshPairList()
	if err != nil {
		return fmt.Errorf("pair list generation: %w", err)
	}

	addedKeys := make(map[string]struct{}, len(added))
	for _, scene := range added {
		addedKeys[scene.Key()] = struct{}{}
	}
	var newPairs []lists.Pair
	for _, pair := range allPairs {
		if _, ok := addedKeys[pair.Slave.Key()]; ok {
			newPairs = append(newPairs, pair)
		}
	}

	c.scenes = added
	c.slaves = lists.BuildSlaveList(added, c.cfg.MasterScene)
	c.pairs = newPairs
	c.logger.Info("incremental run scoped to new scenes",
		logging.Int("scenes", len(c.scenes)),
		logging.Int("pairs", len(c.pairs)))
	return nil
}

// submitListJobs chains the three list-builder jobs: the scene list has
// no dependencies, each later list waits on its predecessor, and the
// final handle gates every downstream stage so no job reads a list
// before it is fully materialized.
func (c *Controller) submitListJobs(ctx context.Context) ([]pbs.JobHandle, error) {
	res := c.cfg.Batch.ListJobs
	var deps []pbs.JobHandle
	for _, builder := range []string{"scenes", "slaves", "ifgs"} {
		handle, err := c.gen.Submit(ctx, jobs.Descriptor{
			Name:         "lists_" + builder,
			Stage:        string(StageSetup),
			UnitKey:      builder,
			Resources:    res,
			Body:         []string{fmt.Sprintf("sarpipe lists %s --proc %s", builder, c.cfg.ProcPath)},
			Dependencies: deps,
		})
		if err != nil {
			return nil, err
		}
		deps = []pbs.JobHandle{handle}
	}
	return deps, nil
}

func (c *Controller) unitsFor(stage Stage) ([]unit, bool) {
	switch stage {
	case StageRawExtraction:
		return c.rawUnits(c.scenes), false
	case StageSLCCreation:
		return c.slcUnits(c.scenes), false
	case StageDEMCoregistration:
		return c.demUnits()
	case StageSlaveCoregistration:
		return c.coregUnits(c.slaves), false
	case StageInterferograms:
		return c.pairUnits(c.pairs), false
	default:
		return nil, false
	}
}

func (c *Controller) resourcesFor(stage Stage) config.Resources {
	switch stage {
	case StageRawExtraction:
		return c.cfg.Batch.Extract
	case StageSLCCreation:
		return c.cfg.Batch.SLC
	case StageDEMCoregistration, StageSlaveCoregistration:
		return c.cfg.Batch.Coreg
	case StageInterferograms:
		return c.cfg.Batch.Ifg
	default:
		return c.cfg.Batch.ListJobs
	}
}

// runInline processes the stage's units sequentially in list order. A
// failing unit is recorded and its remaining commands abandoned; sibling
// units still run.
func (c *Controller) runInline(ctx context.Context, stage Stage, incremental bool) (bool, error) {
	name := stage.Name(incremental)
	units, halt := c.unitsFor(stage)

	if _, err := c.collator.Begin(name); err != nil {
		return false, err
	}
	logDir := filepath.Join(c.cfg.Paths.LogDir, name)
	stageLogger := c.logger.With(logging.String(logging.FieldStage, name))
	stageLogger.Info("stage started", logging.Int("units", len(units)))

	failed := 0
	for _, u := range units {
		unitLogs := gamma.LogsFor(logDir, u.key)
		for _, command := range u.commands {
			err := c.invoker.Run(ctx, u.key, unitLogs, command[0], command[1:]...)
			if err == nil {
				continue
			}
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			failed++
			stageLogger.Warn("unit failed",
				logging.String("unit", u.key),
				logging.Error(err))
			break
		}
		if err := c.collator.Append(name, report.Unit{Name: u.key, ErrLog: unitLogs.Err}); err != nil {
			return false, err
		}
	}

	stageLogger.Info("stage completed",
		logging.Int("units", len(units)),
		logging.Int("failed", failed),
		logging.String("report", c.collator.ReportPath(name)))
	return halt, nil
}

// submitStage fans the stage out as batch jobs. Every job depends on the
// previous stage's completion gate, never on sibling jobs; the stage's
// own gate handle is returned for the next stage.
func (c *Controller) submitStage(ctx context.Context, stage Stage, incremental bool, deps []pbs.JobHandle) ([]pbs.JobHandle, bool, error) {
	name := stage.Name(incremental)
	resources := c.resourcesFor(stage)
	stageLogger := c.logger.With(logging.String(logging.FieldStage, name))

	var handles []pbs.JobHandle
	var halt bool
	if stage == StageInterferograms {
		pending := c.pendingPairs()
		stageLogger.Info("submitting pair jobs", logging.Int("pairs", len(pending)))
		var err error
		handles, err = c.gen.SubmitPairJobs(ctx, name, pending, resources, func(pair lists.Pair) []string {
			body := c.pairBody(pair)
			lines := make([]string, 0, len(body))
			for _, command := range body {
				lines = append(lines, renderCommand(command))
			}
			return lines
		}, deps)
		if err != nil {
			return nil, false, err
		}
	} else {
		var units []unit
		units, halt = c.unitsFor(stage)
		stageLogger.Info("submitting unit jobs", logging.Int("units", len(units)))
		for _, u := range units {
			body := make([]string, 0, len(u.commands))
			for _, command := range u.commands {
				body = append(body, renderCommand(command))
			}
			handle, err := c.gen.Submit(ctx, jobs.Descriptor{
				Name:         name + "_" + u.key,
				Stage:        name,
				UnitKey:      u.key,
				Resources:    resources,
				Body:         body,
				Dependencies: deps,
			})
			if err != nil {
				return nil, false, err
			}
			handles = append(handles, handle)
		}
	}

	gate, err := c.gen.SubmitGate(ctx, name, handles)
	if err != nil {
		return nil, false, err
	}
	return []pbs.JobHandle{gate}, halt, nil
}

// pendingPairs applies the idempotent skip to the pair list: pairs whose
// interferogram product already exists are not resubmitted.
func (c *Controller) pendingPairs() []lists.Pair {
	pending := make([]lists.Pair, 0, len(c.pairs))
	for _, pair := range c.pairs {
		if artifactExists(c.ifgArtifact(pair)) {
			continue
		}
		pending = append(pending, pair)
	}
	return pending
}
