package config

const (
	defaultSensor       = "S1"
	defaultPolarization = "VV"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultQueue        = "normal"
	defaultListWall     = 1
	defaultListMemGB    = 4
	defaultListNCPUs    = 1
	defaultExtractWall  = 2
	defaultExtractMemGB = 8
	defaultSLCWall      = 4
	defaultSLCMemGB     = 32
	defaultSLCNCPUs     = 4
	defaultCoregWall    = 6
	defaultCoregMemGB   = 48
	defaultCoregNCPUs   = 8
	defaultIfgWall      = 4
	defaultIfgMemGB     = 32
	defaultIfgNCPUs     = 4
)

// Default returns a Config populated with repository defaults. Stage
// toggles start not-configured so an absent proc key reads as a skip
// that is distinguishable from an explicit "no".
func Default() Config {
	return Config{
		Platform:     PlatformInteractive,
		Sensor:       defaultSensor,
		Polarization: defaultPolarization,
		Stages: Stages{
			ExtractRaw:       ToggleNotConfigured,
			CreateSLC:        ToggleNotConfigured,
			CoregisterDEM:    ToggleNotConfigured,
			CoregisterSlaves: ToggleNotConfigured,
			ProcessIfgs:      ToggleNotConfigured,
			AddExtractRaw:    ToggleNotConfigured,
			AddCreateSLC:     ToggleNotConfigured,
			AddCoregSlaves:   ToggleNotConfigured,
			AddProcessIfgs:   ToggleNotConfigured,
			SubsetDecision:   SubsetNotDecided,
		},
		MultiLook: MultiLook{
			SLCRangeLooks:   1,
			SLCAzimuthLooks: 1,
			IfgRangeLooks:   1,
			IfgAzimuthLooks: 1,
		},
		Batch: Batch{
			ListJobs: Resources{WallHours: defaultListWall, MemGB: defaultListMemGB, NCPUs: defaultListNCPUs, Queue: defaultQueue},
			Extract:  Resources{WallHours: defaultExtractWall, MemGB: defaultExtractMemGB, NCPUs: defaultListNCPUs, Queue: defaultQueue},
			SLC:      Resources{WallHours: defaultSLCWall, MemGB: defaultSLCMemGB, NCPUs: defaultSLCNCPUs, Queue: defaultQueue},
			Coreg:    Resources{WallHours: defaultCoregWall, MemGB: defaultCoregMemGB, NCPUs: defaultCoregNCPUs, Queue: defaultQueue},
			Ifg:      Resources{WallHours: defaultIfgWall, MemGB: defaultIfgMemGB, NCPUs: defaultIfgNCPUs, Queue: defaultQueue},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
