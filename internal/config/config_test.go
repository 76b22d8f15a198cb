package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sarpipe/internal/config"
)

func writeProc(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.proc")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write proc file: %v", err)
	}
	return path
}

func TestLoadParsesProcAndDerivesDirectories(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"# comment line",
		"PLATFORM=GA",
		"SENSOR=S1",
		"TRACK=T045",
		"FRAME=F20",
		"MASTER_SCENE=20150101",
		"PROJECT_DIR=" + base,
		"",
		"EXTRACT_RAW_DATA=yes",
		"CREATE_SLC=no",
	}, "\n"))

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Platform != config.PlatformInteractive {
		t.Fatalf("expected interactive platform, got %q", cfg.Platform)
	}
	if cfg.Paths.RawDataDir != filepath.Join(base, "raw_data") {
		t.Fatalf("unexpected raw data dir: %q", cfg.Paths.RawDataDir)
	}
	if cfg.Paths.ListDir != filepath.Join(base, "lists") {
		t.Fatalf("unexpected list dir: %q", cfg.Paths.ListDir)
	}
	if cfg.Paths.ErrorDir != filepath.Join(base, "error_results") {
		t.Fatalf("unexpected error dir: %q", cfg.Paths.ErrorDir)
	}
	if cfg.Paths.IfgDir != filepath.Join(base, "INT") {
		t.Fatalf("unexpected ifg dir: %q", cfg.Paths.IfgDir)
	}
	if cfg.ProcPath == "" {
		t.Fatal("expected ProcPath to record the resolved proc file location")
	}
}

func TestLoadToggleTriState(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"SENSOR=S1",
		"TRACK=T045",
		"MASTER_SCENE=20150101",
		"PROJECT_DIR=" + base,
		"EXTRACT_RAW_DATA=yes",
		"CREATE_SLC=no",
	}, "\n"))

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Stages.ExtractRaw != config.ToggleRun {
		t.Fatalf("expected EXTRACT_RAW_DATA=yes to read as run, got %q", cfg.Stages.ExtractRaw)
	}
	if cfg.Stages.CreateSLC != config.ToggleSkip {
		t.Fatalf("expected CREATE_SLC=no to read as skip, got %q", cfg.Stages.CreateSLC)
	}
	if cfg.Stages.CoregisterDEM != config.ToggleNotConfigured {
		t.Fatalf("expected absent COREGISTER_DEM to read as not configured, got %q", cfg.Stages.CoregisterDEM)
	}
	if cfg.Stages.CreateSLC.Enabled() {
		t.Fatal("skip toggle must not report enabled")
	}
	if cfg.Stages.CoregisterDEM.Enabled() {
		t.Fatal("not-configured toggle must not report enabled")
	}
}

func TestLoadRejectsInvalidToggleValue(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"SENSOR=S1",
		"TRACK=T045",
		"MASTER_SCENE=20150101",
		"PROJECT_DIR=" + base,
		"CREATE_SLC=maybe",
	}, "\n"))

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for invalid toggle value")
	} else if !strings.Contains(err.Error(), "CREATE_SLC") {
		t.Fatalf("expected error to name the offending key, got %v", err)
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	path := writeProc(t, "SENSOR=S1\nnot a key value line\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for malformed proc line")
	}
}

func TestLoadPlatformAliases(t *testing.T) {
	base := t.TempDir()
	cases := map[string]config.Platform{
		"GA":          config.PlatformInteractive,
		"interactive": config.PlatformInteractive,
		"NCI":         config.PlatformBatchCluster,
		"batch":       config.PlatformBatchCluster,
	}
	for value, want := range cases {
		lines := []string{
			"PLATFORM=" + value,
			"SENSOR=S1",
			"TRACK=T045",
			"MASTER_SCENE=20150101",
			"PROJECT_DIR=" + base,
		}
		if want == config.PlatformBatchCluster {
			lines = append(lines, "PBS_PROJECT=dg9")
		}
		cfg, err := config.Load(writeProc(t, strings.Join(lines, "\n")))
		if err != nil {
			t.Fatalf("Load(%s) returned error: %v", value, err)
		}
		if cfg.Platform != want {
			t.Fatalf("PLATFORM=%s: got %q want %q", value, cfg.Platform, want)
		}
	}
}

func TestLoadBatchRequiresProject(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"PLATFORM=NCI",
		"SENSOR=S1",
		"TRACK=T045",
		"MASTER_SCENE=20150101",
		"PROJECT_DIR=" + base,
	}, "\n"))

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error when PBS_PROJECT is absent on the batch platform")
	}
}

func TestLoadRequiresIdentityKeys(t *testing.T) {
	base := t.TempDir()
	cases := map[string][]string{
		"TRACK": {
			"SENSOR=S1",
			"MASTER_SCENE=20150101",
			"PROJECT_DIR=" + base,
		},
		"MASTER_SCENE": {
			"SENSOR=S1",
			"TRACK=T045",
			"PROJECT_DIR=" + base,
		},
		"PROJECT_DIR": {
			"SENSOR=S1",
			"TRACK=T045",
			"MASTER_SCENE=20150101",
		},
	}
	for missing, lines := range cases {
		if _, err := config.Load(writeProc(t, strings.Join(lines, "\n"))); err == nil {
			t.Fatalf("expected error when %s is absent", missing)
		}
	}
}

func TestLoadRejectsInvalidMasterSceneDate(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"SENSOR=S1",
		"TRACK=T045",
		"MASTER_SCENE=2015-01-01",
		"PROJECT_DIR=" + base,
	}, "\n"))

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for non 8-digit master scene")
	}
}

func TestLoadMultiLookDefaultsAndOverrides(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"SENSOR=S1",
		"TRACK=T045",
		"MASTER_SCENE=20150101",
		"PROJECT_DIR=" + base,
		"SLC_RANGE_LOOKS=4",
		"SLC_AZIMUTH_LOOKS=1",
		"IFG_RANGE_LOOKS=8",
		"IFG_AZIMUTH_LOOKS=2",
	}, "\n"))

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.MultiLook.Split() {
		t.Fatal("expected differing SLC and IFG looks to report split")
	}
	if cfg.MultiLook.IfgRangeLooks != 8 {
		t.Fatalf("unexpected IFG range looks: %d", cfg.MultiLook.IfgRangeLooks)
	}

	equal := config.Default().MultiLook
	if equal.Split() {
		t.Fatal("expected default equal looks not to report split")
	}
}

func TestLoadRejectsNonPositiveLooks(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"SENSOR=S1",
		"TRACK=T045",
		"MASTER_SCENE=20150101",
		"PROJECT_DIR=" + base,
		"IFG_RANGE_LOOKS=0",
	}, "\n"))

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for zero look factor")
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"SENSOR=S1",
		"TRACK=T045",
		"MASTER_SCENE=20150101",
		"PROJECT_DIR=" + base,
		"SITE_LOCAL_TOOLKIT_KEY=whatever",
	}, "\n"))

	if _, err := config.Load(path); err != nil {
		t.Fatalf("unknown keys must pass through, got error: %v", err)
	}
}

func TestLoadBatchResourceOverrides(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"PLATFORM=NCI",
		"SENSOR=S1",
		"TRACK=T045",
		"MASTER_SCENE=20150101",
		"PROJECT_DIR=" + base,
		"PBS_PROJECT=dg9",
		"MAIL_LIST=insar@example.com",
		"SLC_WALLTIME_HOURS=12",
		"SLC_MEM_GB=64",
		"SLC_NCPUS=16",
		"SLC_QUEUE=hugemem",
	}, "\n"))

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Batch.Project != "dg9" {
		t.Fatalf("unexpected project: %q", cfg.Batch.Project)
	}
	if cfg.Batch.MailList != "insar@example.com" {
		t.Fatalf("unexpected mail list: %q", cfg.Batch.MailList)
	}
	slc := cfg.Batch.SLC
	if slc.WallHours != 12 || slc.MemGB != 64 || slc.NCPUs != 16 || slc.Queue != "hugemem" {
		t.Fatalf("unexpected SLC resources: %+v", slc)
	}
	if cfg.Batch.Ifg.Queue != "normal" {
		t.Fatalf("expected untouched IFG queue default, got %q", cfg.Batch.Ifg.Queue)
	}
}

func TestLoadMissingProcFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.proc")
	if _, err := config.Load(missing); err == nil {
		t.Fatal("expected error for missing proc file")
	} else if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected does-not-exist error, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.proc")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of generated sample returned error: %v", err)
	}
	if cfg.Sensor != "S1" {
		t.Fatalf("unexpected sample sensor: %q", cfg.Sensor)
	}
	if !cfg.Stages.ExtractRaw.Enabled() {
		t.Fatal("expected sample to enable raw extraction")
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ListDir = filepath.Join(base, "lists")
	cfg.Paths.ErrorDir = filepath.Join(base, "error_results")
	cfg.Paths.BatchJobDir = filepath.Join(base, "batch_jobs")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ListDir, cfg.Paths.ErrorDir, cfg.Paths.BatchJobDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist", dir)
		}
	}
}

func TestSubsettingKeys(t *testing.T) {
	base := t.TempDir()
	path := writeProc(t, strings.Join([]string{
		"SENSOR=S1",
		"TRACK=T045",
		"MASTER_SCENE=20150101",
		"PROJECT_DIR=" + base,
		"AZIMUTH_SUBSETTING=yes",
		"SUBSETTING_DECIDED=process",
	}, "\n"))

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Stages.AzimuthSubsetting {
		t.Fatal("expected azimuth subsetting enabled")
	}
	if cfg.Stages.SubsetDecision != config.SubsetProcess {
		t.Fatalf("unexpected subset decision: %q", cfg.Stages.SubsetDecision)
	}
}
