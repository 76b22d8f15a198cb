package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"sarpipe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Sensor = "S1"
	cfgVal.Track = "T045"
	cfgVal.MasterScene = "20150101"
	cfgVal.Paths.ProjectDir = base
	cfgVal.Paths.RawDataDir = filepath.Join(base, "raw_data")
	cfgVal.Paths.ListDir = filepath.Join(base, "lists")
	cfgVal.Paths.ErrorDir = filepath.Join(base, "error_results")
	cfgVal.Paths.BatchJobDir = filepath.Join(base, "batch_jobs")
	cfgVal.Paths.SLCDir = filepath.Join(base, "SLC")
	cfgVal.Paths.DEMDir = filepath.Join(base, "DEM")
	cfgVal.Paths.IfgDir = filepath.Join(base, "INT")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.ProcPath = filepath.Join(base, "test.proc")

	if err := os.MkdirAll(cfgVal.Paths.RawDataDir, 0o755); err != nil {
		t.Fatalf("mkdir raw data dir: %v", err)
	}

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithPlatform sets the scheduling platform on the test config.
func WithPlatform(platform config.Platform) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Platform = platform
		if platform == config.PlatformBatchCluster {
			b.cfg.Batch.Project = "dg9"
		}
	}
}

// WithMasterScene overrides the reference scene on the test config.
func WithMasterScene(date string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MasterScene = date
	}
}

// WithStages overrides the stage toggles on the test config.
func WithStages(stages config.Stages) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Stages = stages
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the common external binaries
// are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"qsub", "extract_raw_data", "process_S1_SLC", "multi_look", "coregister_DEM", "coregister_slave_SLC", "process_ifg"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.ProjectDir
}

// SeedArchive drops empty raw archive entries into the config's raw data
// directory.
func SeedArchive(t testing.TB, cfg *config.Config, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(cfg.Paths.RawDataDir, name)
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatalf("seed archive entry %s: %v", name, err)
		}
	}
}
