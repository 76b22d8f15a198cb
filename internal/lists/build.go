package lists

import (
	"sort"

	"sarpipe/internal/sensors"
)

// BuildSceneList extracts scenes from raw archive entry names, dedupes
// them on the date+frame key, and returns them in chronological order.
// Entries that do not yield a valid date token are skipped.
func BuildSceneList(entries []string, sensor sensors.Sensor, frame string) []Scene {
	seen := make(map[string]struct{}, len(entries))
	scenes := make([]Scene, 0, len(entries))
	for _, entry := range entries {
		date, ok := sensor.ExtractDate(entry)
		if !ok {
			continue
		}
		scene := Scene{Date: date, Frame: frame}
		if _, dup := seen[scene.Key()]; dup {
			continue
		}
		seen[scene.Key()] = struct{}{}
		scenes = append(scenes, scene)
	}
	sortScenes(scenes)
	return scenes
}

// BuildSlaveList returns the scene list minus the reference scene.
func BuildSlaveList(scenes []Scene, reference string) []Scene {
	slaves := make([]Scene, 0, len(scenes))
	for _, scene := range scenes {
		if scene.Date == reference {
			continue
		}
		slaves = append(slaves, scene)
	}
	return slaves
}

// BuildPairs generates interferogram pairs under the all-vs-reference
// policy: one (reference, slave) pair per slave scene, in slave order.
// The output is deterministic given the same scene list.
func BuildPairs(scenes []Scene, reference string) []Pair {
	var refScene Scene
	found := false
	for _, scene := range scenes {
		if scene.Date == reference {
			refScene = scene
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	slaves := BuildSlaveList(scenes, reference)
	pairs := make([]Pair, 0, len(slaves))
	for _, slave := range slaves {
		pairs = append(pairs, Pair{Reference: refScene, Slave: slave})
	}
	return pairs
}

// MergeScenes appends additional scenes to an existing list with set
// semantics: entries already present are kept once, new entries are
// added, and the result is re-sorted so repeated incremental runs are
// idempotent.
func MergeScenes(existing, additional []Scene) []Scene {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]Scene, 0, len(existing)+len(additional))
	for _, scene := range existing {
		if _, dup := seen[scene.Key()]; dup {
			continue
		}
		seen[scene.Key()] = struct{}{}
		merged = append(merged, scene)
	}
	for _, scene := range additional {
		if _, dup := seen[scene.Key()]; dup {
			continue
		}
		seen[scene.Key()] = struct{}{}
		merged = append(merged, scene)
	}
	sortScenes(merged)
	return merged
}

// NewScenes returns the scenes in updated that are absent from base,
// preserving updated's order. Incremental stages process only these.
func NewScenes(base, updated []Scene) []Scene {
	known := make(map[string]struct{}, len(base))
	for _, scene := range base {
		known[scene.Key()] = struct{}{}
	}
	var added []Scene
	for _, scene := range updated {
		if _, ok := known[scene.Key()]; !ok {
			added = append(added, scene)
		}
	}
	return added
}

func sortScenes(scenes []Scene) {
	sort.Slice(scenes, func(i, j int) bool { return scenes[i].Less(scenes[j]) })
}
