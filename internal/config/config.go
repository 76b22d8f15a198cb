package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed sample_config.proc
var sampleConfig string

// Platform selects the scheduling model for a run.
type Platform string

const (
	// PlatformInteractive runs every unit of work inline, sequentially.
	PlatformInteractive Platform = "interactive"
	// PlatformBatchCluster submits every unit of work to the batch queue.
	PlatformBatchCluster Platform = "batch"
)

// Toggle is the tri-state gate read for each pipeline stage.
type Toggle string

const (
	ToggleRun           Toggle = "run"
	ToggleSkip          Toggle = "skip"
	ToggleNotConfigured Toggle = "not-configured"
)

// Enabled reports whether a stage gated by this toggle should execute.
func (t Toggle) Enabled() bool { return t == ToggleRun }

// SubsetDecision gates the second phase of DEM coregistration when
// azimuth subsetting is active.
type SubsetDecision string

const (
	SubsetNotDecided SubsetDecision = "notyet"
	SubsetProcess    SubsetDecision = "process"
)

// Stages holds the per-stage toggles for the main pipeline and the
// incremental add-scenes pass.
type Stages struct {
	ExtractRaw        Toggle
	CreateSLC         Toggle
	CoregisterDEM     Toggle
	CoregisterSlaves  Toggle
	ProcessIfgs       Toggle
	AddExtractRaw     Toggle
	AddCreateSLC      Toggle
	AddCoregSlaves    Toggle
	AddProcessIfgs    Toggle
	AzimuthSubsetting bool
	SubsetDecision    SubsetDecision
}

// MultiLook holds the range/azimuth look factors for the SLC and
// interferogram products. When the two differ, SLC-class stages run one
// unit per distinct factor pair.
type MultiLook struct {
	SLCRangeLooks   int
	SLCAzimuthLooks int
	IfgRangeLooks   int
	IfgAzimuthLooks int
}

// Split reports whether SLC and interferogram looks differ, which doubles
// the SLC-class units.
func (m MultiLook) Split() bool {
	return m.SLCRangeLooks != m.IfgRangeLooks || m.SLCAzimuthLooks != m.IfgAzimuthLooks
}

// Resources describes one batch-queue resource request.
type Resources struct {
	WallHours int
	MemGB     int
	NCPUs     int
	Queue     string
}

// Batch holds cluster-wide submission settings.
type Batch struct {
	Project  string
	MailList string
	ListJobs Resources
	Extract  Resources
	SLC      Resources
	Coreg    Resources
	Ifg      Resources
}

// Paths holds the directory layout of one processing stack.
type Paths struct {
	ProjectDir  string
	RawDataDir  string
	ListDir     string
	ErrorDir    string
	BatchJobDir string
	SLCDir      string
	DEMDir      string
	IfgDir      string
	ToolkitBin  string
	LogDir      string
}

// Logging controls log output for the orchestrator itself.
type Logging struct {
	Format string
	Level  string
}

// Config encapsulates all settings for one processing run.
//
// Sections by concern:
//   - Platform: interactive host vs batch cluster scheduling
//   - Sensor: sensor family, selects procedure names and date offsets
//   - Stages: tri-state stage toggles plus subsetting gates
//   - MultiLook: SLC and interferogram look factors
//   - Batch: queue resource requests and submission settings
//   - Paths: stack directory layout
//   - Logging: orchestrator log format and level
type Config struct {
	// ProcPath is the resolved location of the proc file this config was
	// loaded from. Set by Load; empty for configs built in tests.
	ProcPath string

	Platform     Platform
	Sensor       string
	Track        string
	Frame        string
	Polarization string
	MasterScene  string
	Stages       Stages
	MultiLook    MultiLook
	Batch        Batch
	Paths        Paths
	Logging      Logging
}

// Load reads, parses, and validates a proc file. The returned config has
// all path fields expanded and normalized.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("proc file path required")
	}
	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("proc file %s does not exist", expanded)
		}
		return nil, fmt.Errorf("read proc file: %w", err)
	}

	values, err := parseProc(string(data))
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.ProcPath = expanded
	if err := cfg.apply(values); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnsureDirectories creates the writable directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ListDir, c.Paths.ErrorDir, c.Paths.BatchJobDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// QsubBinary returns the batch-queue submission executable name.
func (c *Config) QsubBinary() string {
	return "qsub"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample proc file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create proc directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample proc file: %w", err)
	}
	return nil
}
