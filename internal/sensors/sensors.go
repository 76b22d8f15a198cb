package sensors

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sensors.toml
var sensorTable []byte

// Sensor describes one sensor family's lookup entry.
type Sensor struct {
	Name         string `toml:"name"`
	DateOffset   int    `toml:"date_offset"`
	SLCProcedure string `toml:"slc_procedure"`
	RawProcedure string `toml:"raw_procedure"`
	Level0       bool   `toml:"level0"`
	MLMultiplier int    `toml:"ml_multiplier"`
	NoisePrefix  string `toml:"noise_prefix"`
}

// Procedure returns the external SLC-creation procedure for the family.
// Families with a raw Level-0 product use the raw variant.
func (s Sensor) Procedure() string {
	if s.Level0 && s.RawProcedure != "" {
		return s.RawProcedure
	}
	return s.SLCProcedure
}

type table struct {
	Sensors []Sensor `toml:"sensor"`
}

var (
	loadOnce sync.Once
	loaded   map[string]Sensor
	loadErr  error
)

func load() (map[string]Sensor, error) {
	loadOnce.Do(func() {
		var tbl table
		if err := toml.Unmarshal(sensorTable, &tbl); err != nil {
			loadErr = fmt.Errorf("parse sensor table: %w", err)
			return
		}
		loaded = make(map[string]Sensor, len(tbl.Sensors))
		for _, sensor := range tbl.Sensors {
			loaded[sensor.Name] = sensor
		}
	})
	return loaded, loadErr
}

// Lookup resolves a sensor family by its configured name.
func Lookup(name string) (Sensor, error) {
	entries, err := load()
	if err != nil {
		return Sensor{}, err
	}
	sensor, ok := entries[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Sensor{}, fmt.Errorf("unsupported sensor %q", name)
	}
	return sensor, nil
}

// Names returns the supported sensor family names.
func Names() []string {
	entries, err := load()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	return names
}

// ExtractDate pulls the 8-digit scene date out of a raw archive entry
// name at the family's fixed offset. Entries that do not carry a valid
// date are reported, not fatal.
func (s Sensor) ExtractDate(entry string) (string, bool) {
	name := filepath.Base(strings.TrimSpace(entry))
	if len(name) < s.DateOffset+8 {
		return "", false
	}
	token := name[s.DateOffset : s.DateOffset+8]
	if _, err := time.Parse("20060102", token); err != nil {
		return "", false
	}
	return token, true
}
