package pipeline

import "sarpipe/internal/config"

// Stage names one pipeline stage. The value doubles as the stage's
// ledger key and report name.
type Stage string

const (
	StageSetup               Stage = "setup"
	StageRawExtraction       Stage = "extract_raw"
	StageSLCCreation         Stage = "create_slc"
	StageDEMCoregistration   Stage = "coreg_dem"
	StageSlaveCoregistration Stage = "coreg_slaves"
	StageInterferograms      Stage = "process_ifgs"
)

// mainOrder is the fixed total order of the main pass.
var mainOrder = []Stage{
	StageRawExtraction,
	StageSLCCreation,
	StageDEMCoregistration,
	StageSlaveCoregistration,
	StageInterferograms,
}

// addScenesOrder is the fixed total order of the incremental pass. DEM
// coregistration is not repeated: the reference geometry is unchanged.
var addScenesOrder = []Stage{
	StageRawExtraction,
	StageSLCCreation,
	StageSlaveCoregistration,
	StageInterferograms,
}

// Toggle resolves the stage's tri-state gate from the run configuration.
func (s Stage) Toggle(cfg *config.Config, incremental bool) config.Toggle {
	stages := cfg.Stages
	if incremental {
		switch s {
		case StageRawExtraction:
			return stages.AddExtractRaw
		case StageSLCCreation:
			return stages.AddCreateSLC
		case StageSlaveCoregistration:
			return stages.AddCoregSlaves
		case StageInterferograms:
			return stages.AddProcessIfgs
		default:
			return config.ToggleNotConfigured
		}
	}
	switch s {
	case StageRawExtraction:
		return stages.ExtractRaw
	case StageSLCCreation:
		return stages.CreateSLC
	case StageDEMCoregistration:
		return stages.CoregisterDEM
	case StageSlaveCoregistration:
		return stages.CoregisterSlaves
	case StageInterferograms:
		return stages.ProcessIfgs
	default:
		return config.ToggleNotConfigured
	}
}

// Name returns the ledger/report name for the stage, distinguishing the
// incremental pass so its reports never clobber the main pass's.
func (s Stage) Name(incremental bool) string {
	if incremental && s != StageSetup {
		return "add_" + string(s)
	}
	return string(s)
}
