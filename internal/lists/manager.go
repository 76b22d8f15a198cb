package lists

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"sarpipe/internal/config"
	"sarpipe/internal/logging"
	"sarpipe/internal/sensors"
)

const (
	sceneListName = "scenes.list"
	slaveListName = "slaves.list"
	pairListName  = "ifgs.list"
)

// Manager derives and persists the run's entity lists. Each list file is
// the single source of truth for downstream stages; regeneration is
// additive, never destructive.
type Manager struct {
	cfg    *config.Config
	sensor sensors.Sensor
	logger *slog.Logger
}

// NewManager constructs a list manager for the run.
func NewManager(cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	sensor, err := sensors.Lookup(cfg.Sensor)
	if err != nil {
		return nil, err
	}
	return &Manager{
		cfg:    cfg,
		sensor: sensor,
		logger: logging.NewComponentLogger(logger, "lists"),
	}, nil
}

// ScenesPath returns the scene list file location.
func (m *Manager) ScenesPath() string { return filepath.Join(m.cfg.Paths.ListDir, sceneListName) }

// SlavesPath returns the slave list file location.
func (m *Manager) SlavesPath() string { return filepath.Join(m.cfg.Paths.ListDir, slaveListName) }

// PairsPath returns the interferogram pair list file location.
func (m *Manager) PairsPath() string { return filepath.Join(m.cfg.Paths.ListDir, pairListName) }

// RefreshSceneList scans the raw archive, merges discovered scenes into
// any existing scene list, and rewrites the list file. Entries already
// consumed by in-flight jobs are never removed.
func (m *Manager) RefreshSceneList() ([]Scene, error) {
	entries, err := ScanArchive(m.cfg.Paths.RawDataDir)
	if err != nil {
		return nil, err
	}
	discovered := BuildSceneList(entries, m.sensor, m.cfg.Frame)

	existing, readErr := m.Scenes()
	if readErr == nil {
		discovered = MergeScenes(existing, discovered)
	}

	if err := m.writeScenes(discovered); err != nil {
		return nil, err
	}
	m.logger.Info("scene list refreshed",
		logging.Int("scenes", len(discovered)),
		logging.String("path", m.ScenesPath()))
	return discovered, nil
}

// AppendScenes merges an additional-scenes list into the scene list with
// set semantics, so repeated incremental runs cannot duplicate entries.
// It returns the merged list and the genuinely new scenes.
func (m *Manager) AppendScenes(additional []Scene) (merged, added []Scene, err error) {
	existing, err := m.Scenes()
	if err != nil {
		return nil, nil, err
	}
	merged = MergeScenes(existing, additional)
	added = NewScenes(existing, merged)
	if err := m.writeScenes(merged); err != nil {
		return nil, nil, err
	}
	m.logger.Info("scene list extended",
		logging.Int("added", len(added)),
		logging.Int("scenes", len(merged)))
	return merged, added, nil
}

// RefreshSlaveList rebuilds the slave list from the persisted scene list.
func (m *Manager) RefreshSlaveList() ([]Scene, error) {
	scenes, err := m.Scenes()
	if err != nil {
		return nil, err
	}
	slaves := BuildSlaveList(scenes, m.cfg.MasterScene)
	lines := make([]string, 0, len(slaves))
	for _, scene := range slaves {
		lines = append(lines, scene.Identifier())
	}
	if err := WriteLines(m.SlavesPath(), lines); err != nil {
		return nil, err
	}
	m.logger.Info("slave list refreshed",
		logging.Int("slaves", len(slaves)),
		logging.String("master", m.cfg.MasterScene))
	return slaves, nil
}

// RefreshPairList rebuilds the interferogram pair list from the persisted
// scene list under the all-vs-reference policy.
func (m *Manager) RefreshPairList() ([]Pair, error) {
	scenes, err := m.Scenes()
	if err != nil {
		return nil, err
	}
	pairs := BuildPairs(scenes, m.cfg.MasterScene)
	if len(scenes) > 0 && len(pairs) == 0 {
		return nil, fmt.Errorf("master scene %s not in scene list: %w", m.cfg.MasterScene, ErrMissingInput)
	}
	lines := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		lines = append(lines, pair.Identifier())
	}
	if err := WriteLines(m.PairsPath(), lines); err != nil {
		return nil, err
	}
	m.logger.Info("pair list refreshed", logging.Int("pairs", len(pairs)))
	return pairs, nil
}

// Scenes loads the persisted scene list.
func (m *Manager) Scenes() ([]Scene, error) {
	lines, err := ReadLines(m.ScenesPath())
	if err != nil {
		return nil, err
	}
	scenes := make([]Scene, 0, len(lines))
	for _, line := range lines {
		scene, err := ParseScene(line)
		if err != nil {
			return nil, fmt.Errorf("scene list: %w", err)
		}
		scenes = append(scenes, scene)
	}
	return scenes, nil
}

// Slaves loads the persisted slave list.
func (m *Manager) Slaves() ([]Scene, error) {
	lines, err := ReadLines(m.SlavesPath())
	if err != nil {
		return nil, err
	}
	slaves := make([]Scene, 0, len(lines))
	for _, line := range lines {
		scene, err := ParseScene(line)
		if err != nil {
			return nil, fmt.Errorf("slave list: %w", err)
		}
		slaves = append(slaves, scene)
	}
	return slaves, nil
}

// Pairs loads the persisted interferogram pair list.
func (m *Manager) Pairs() ([]Pair, error) {
	lines, err := ReadLines(m.PairsPath())
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, len(lines))
	for _, line := range lines {
		pair, err := ParsePair(line)
		if err != nil {
			return nil, fmt.Errorf("pair list: %w", err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func (m *Manager) writeScenes(scenes []Scene) error {
	lines := make([]string, 0, len(scenes))
	for _, scene := range scenes {
		lines = append(lines, scene.Identifier())
	}
	return WriteLines(m.ScenesPath(), lines)
}
