package lists

import (
	"fmt"
	"strings"
	"time"
)

// Scene identifies one acquisition: an 8-digit date plus an optional
// frame sub-partition. Scenes are unique by (date, frame).
type Scene struct {
	Date  string
	Frame string
}

// Identifier renders the scene's list-file form.
func (s Scene) Identifier() string {
	if s.Frame == "" {
		return s.Date
	}
	return s.Date + "_" + s.Frame
}

// Key is the dedup key for set semantics across incremental runs.
func (s Scene) Key() string { return s.Date + "|" + s.Frame }

// Less orders scenes chronologically ascending, frame as tiebreak.
func (s Scene) Less(other Scene) bool {
	if s.Date != other.Date {
		return s.Date < other.Date
	}
	return s.Frame < other.Frame
}

// ParseScene reads a scene identifier back from its list-file form.
func ParseScene(value string) (Scene, error) {
	trimmed := strings.TrimSpace(value)
	date, frame, _ := strings.Cut(trimmed, "_")
	if _, err := time.Parse("20060102", date); err != nil {
		return Scene{}, fmt.Errorf("invalid scene identifier %q", value)
	}
	return Scene{Date: date, Frame: frame}, nil
}

// Pair identifies one interferogram product as an ordered
// (reference, slave) tuple.
type Pair struct {
	Reference Scene
	Slave     Scene
}

// Identifier renders the pair's list-file form: reference and slave
// identifiers joined by a comma.
func (p Pair) Identifier() string {
	return p.Reference.Identifier() + "," + p.Slave.Identifier()
}

// Name renders the pair's compact product name used in job and log names.
func (p Pair) Name() string {
	return p.Reference.Date + "-" + p.Slave.Date
}

// ParsePair reads a pair back from its list-file form.
func ParsePair(value string) (Pair, error) {
	ref, slave, found := strings.Cut(strings.TrimSpace(value), ",")
	if !found {
		return Pair{}, fmt.Errorf("invalid pair %q: expected reference,slave", value)
	}
	refScene, err := ParseScene(ref)
	if err != nil {
		return Pair{}, err
	}
	slaveScene, err := ParseScene(slave)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Reference: refScene, Slave: slaveScene}, nil
}
