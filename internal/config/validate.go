package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Failures here are
// startup-fatal: no stage may run against a config that does not pass.
func (c *Config) Validate() error {
	if err := c.validateIdentity(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMultiLook(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateIdentity() error {
	if c.Sensor == "" {
		return errors.New("SENSOR must be set")
	}
	if c.Track == "" {
		return errors.New("TRACK must be set")
	}
	if c.MasterScene == "" {
		return errors.New("MASTER_SCENE must be set")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.ProjectDir == "" {
		return errors.New("PROJECT_DIR must be set")
	}
	return nil
}

func (c *Config) validateMultiLook() error {
	for _, looks := range []struct {
		name  string
		value int
	}{
		{"SLC_RANGE_LOOKS", c.MultiLook.SLCRangeLooks},
		{"SLC_AZIMUTH_LOOKS", c.MultiLook.SLCAzimuthLooks},
		{"IFG_RANGE_LOOKS", c.MultiLook.IfgRangeLooks},
		{"IFG_AZIMUTH_LOOKS", c.MultiLook.IfgAzimuthLooks},
	} {
		if looks.value < 1 {
			return fmt.Errorf("%s must be a positive integer", looks.name)
		}
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Platform != PlatformBatchCluster {
		return nil
	}
	if c.Batch.Project == "" {
		return errors.New("PBS_PROJECT must be set when PLATFORM is batch")
	}
	for _, res := range []struct {
		name string
		r    Resources
	}{
		{"LIST", c.Batch.ListJobs},
		{"RAW", c.Batch.Extract},
		{"SLC", c.Batch.SLC},
		{"COREG", c.Batch.Coreg},
		{"IFG", c.Batch.Ifg},
	} {
		if res.r.WallHours < 1 || res.r.MemGB < 1 || res.r.NCPUs < 1 {
			return fmt.Errorf("%s resource request must have positive walltime, memory, and ncpus", res.name)
		}
		if res.r.Queue == "" {
			return fmt.Errorf("%s queue must be set when PLATFORM is batch", res.name)
		}
	}
	return nil
}
