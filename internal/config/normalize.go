package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// normalize expands paths and derives the stack directories that were not
// set explicitly. ProjectDir anchors every relative fragment.
func (c *Config) normalize() error {
	c.Sensor = strings.ToUpper(strings.TrimSpace(c.Sensor))
	c.Polarization = strings.ToUpper(strings.TrimSpace(c.Polarization))
	c.Track = strings.TrimSpace(c.Track)
	c.Frame = strings.TrimSpace(c.Frame)
	c.MasterScene = strings.TrimSpace(c.MasterScene)

	if strings.TrimSpace(c.Paths.ProjectDir) != "" {
		expanded, err := expandPath(c.Paths.ProjectDir)
		if err != nil {
			return err
		}
		c.Paths.ProjectDir = expanded
	}

	derive := func(dst *string, fragment string) error {
		if strings.TrimSpace(*dst) == "" {
			if c.Paths.ProjectDir == "" {
				return nil
			}
			*dst = filepath.Join(c.Paths.ProjectDir, fragment)
			return nil
		}
		expanded, err := expandPath(*dst)
		if err != nil {
			return err
		}
		*dst = expanded
		return nil
	}

	for _, entry := range []struct {
		dst      *string
		fragment string
	}{
		{&c.Paths.RawDataDir, "raw_data"},
		{&c.Paths.ListDir, "lists"},
		{&c.Paths.ErrorDir, "error_results"},
		{&c.Paths.BatchJobDir, "batch_jobs"},
		{&c.Paths.SLCDir, "SLC"},
		{&c.Paths.DEMDir, "DEM"},
		{&c.Paths.IfgDir, "INT"},
		{&c.Paths.LogDir, "logs"},
	} {
		if err := derive(entry.dst, entry.fragment); err != nil {
			return err
		}
	}

	if strings.TrimSpace(c.Paths.ToolkitBin) != "" {
		expanded, err := expandPath(c.Paths.ToolkitBin)
		if err != nil {
			return err
		}
		c.Paths.ToolkitBin = expanded
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	if c.MasterScene != "" && !validSceneDate(c.MasterScene) {
		return fmt.Errorf("MASTER_SCENE %q is not an 8-digit date", c.MasterScene)
	}
	return nil
}

func validSceneDate(value string) bool {
	if len(value) != 8 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
