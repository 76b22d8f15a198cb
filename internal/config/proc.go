package config

import (
	"fmt"
	"strconv"
	"strings"
)

// parseProc reads line-oriented Key=Value text into a flat map. Blank
// lines and lines starting with '#' are ignored. Keys are matched
// exactly; values keep interior whitespace but are trimmed at the ends.
func parseProc(data string) (map[string]string, error) {
	values := make(map[string]string)
	for i, line := range strings.Split(data, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, found := strings.Cut(trimmed, "=")
		if !found {
			return nil, fmt.Errorf("proc file line %d: expected Key=Value, got %q", i+1, trimmed)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("proc file line %d: empty key", i+1)
		}
		values[key] = strings.TrimSpace(value)
	}
	return values, nil
}

// apply copies recognized proc keys onto the config. Unknown keys are
// ignored so site-local keys consumed only by the external toolkit pass
// through untouched.
func (c *Config) apply(values map[string]string) error {
	var err error
	set := func(key string, assign func(string) error) {
		if err != nil {
			return
		}
		value, ok := values[key]
		if !ok || value == "" {
			return
		}
		if assignErr := assign(value); assignErr != nil {
			err = fmt.Errorf("proc key %s: %w", key, assignErr)
		}
	}

	setString := func(key string, dst *string) {
		set(key, func(v string) error {
			*dst = v
			return nil
		})
	}
	setInt := func(key string, dst *int) {
		set(key, func(v string) error {
			parsed, parseErr := strconv.Atoi(v)
			if parseErr != nil {
				return fmt.Errorf("expected integer, got %q", v)
			}
			*dst = parsed
			return nil
		})
	}
	setToggle := func(key string, dst *Toggle) {
		set(key, func(v string) error {
			toggle, parseErr := parseToggle(v)
			if parseErr != nil {
				return parseErr
			}
			*dst = toggle
			return nil
		})
	}

	set("PLATFORM", func(v string) error {
		platform, parseErr := parsePlatform(v)
		if parseErr != nil {
			return parseErr
		}
		c.Platform = platform
		return nil
	})
	setString("SENSOR", &c.Sensor)
	setString("TRACK", &c.Track)
	setString("FRAME", &c.Frame)
	setString("POLARIZATION", &c.Polarization)
	setString("MASTER_SCENE", &c.MasterScene)

	setToggle("EXTRACT_RAW_DATA", &c.Stages.ExtractRaw)
	setToggle("CREATE_SLC", &c.Stages.CreateSLC)
	setToggle("COREGISTER_DEM", &c.Stages.CoregisterDEM)
	setToggle("COREGISTER_SLAVES", &c.Stages.CoregisterSlaves)
	setToggle("PROCESS_IFGS", &c.Stages.ProcessIfgs)
	setToggle("ADD_EXTRACT_RAW_DATA", &c.Stages.AddExtractRaw)
	setToggle("ADD_CREATE_SLC", &c.Stages.AddCreateSLC)
	setToggle("ADD_COREGISTER_SLAVES", &c.Stages.AddCoregSlaves)
	setToggle("ADD_PROCESS_IFGS", &c.Stages.AddProcessIfgs)
	set("AZIMUTH_SUBSETTING", func(v string) error {
		switch strings.ToLower(v) {
		case "yes":
			c.Stages.AzimuthSubsetting = true
		case "no":
			c.Stages.AzimuthSubsetting = false
		default:
			return fmt.Errorf("expected yes or no, got %q", v)
		}
		return nil
	})
	set("SUBSETTING_DECIDED", func(v string) error {
		switch strings.ToLower(v) {
		case string(SubsetNotDecided):
			c.Stages.SubsetDecision = SubsetNotDecided
		case string(SubsetProcess):
			c.Stages.SubsetDecision = SubsetProcess
		default:
			return fmt.Errorf("expected notyet or process, got %q", v)
		}
		return nil
	})

	setInt("SLC_RANGE_LOOKS", &c.MultiLook.SLCRangeLooks)
	setInt("SLC_AZIMUTH_LOOKS", &c.MultiLook.SLCAzimuthLooks)
	setInt("IFG_RANGE_LOOKS", &c.MultiLook.IfgRangeLooks)
	setInt("IFG_AZIMUTH_LOOKS", &c.MultiLook.IfgAzimuthLooks)

	setString("PBS_PROJECT", &c.Batch.Project)
	setString("MAIL_LIST", &c.Batch.MailList)
	applyResources := func(prefix string, dst *Resources) {
		setInt(prefix+"_WALLTIME_HOURS", &dst.WallHours)
		setInt(prefix+"_MEM_GB", &dst.MemGB)
		setInt(prefix+"_NCPUS", &dst.NCPUs)
		setString(prefix+"_QUEUE", &dst.Queue)
	}
	applyResources("LIST", &c.Batch.ListJobs)
	applyResources("RAW", &c.Batch.Extract)
	applyResources("SLC", &c.Batch.SLC)
	applyResources("COREG", &c.Batch.Coreg)
	applyResources("IFG", &c.Batch.Ifg)

	setString("PROJECT_DIR", &c.Paths.ProjectDir)
	setString("RAW_DATA_DIR", &c.Paths.RawDataDir)
	setString("LIST_DIR", &c.Paths.ListDir)
	setString("ERROR_DIR", &c.Paths.ErrorDir)
	setString("BATCH_JOB_DIR", &c.Paths.BatchJobDir)
	setString("SLC_DIR", &c.Paths.SLCDir)
	setString("DEM_DIR", &c.Paths.DEMDir)
	setString("IFG_DIR", &c.Paths.IfgDir)
	setString("TOOLKIT_BIN", &c.Paths.ToolkitBin)
	setString("LOG_DIR", &c.Paths.LogDir)

	setString("LOG_FORMAT", &c.Logging.Format)
	setString("LOG_LEVEL", &c.Logging.Level)

	return err
}

func parsePlatform(value string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ga", "interactive":
		return PlatformInteractive, nil
	case "nci", "batch":
		return PlatformBatchCluster, nil
	default:
		return "", fmt.Errorf("unsupported platform %q", value)
	}
}

func parseToggle(value string) (Toggle, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes":
		return ToggleRun, nil
	case "no":
		return ToggleSkip, nil
	case "":
		return ToggleNotConfigured, nil
	default:
		return "", fmt.Errorf("expected yes or no, got %q", value)
	}
}
