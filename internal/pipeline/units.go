package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sarpipe/internal/config"
	"sarpipe/internal/lists"
)

// lookPair is one range/azimuth multi-look factor pair.
type lookPair struct {
	Range   int
	Azimuth int
}

func (l lookPair) suffix() string {
	return fmt.Sprintf("r%da%d", l.Range, l.Azimuth)
}

// unit is one schedulable piece of stage work: an identifying key and the
// toolkit commands that process it, in order.
type unit struct {
	key      string
	commands [][]string
}

// lookSets applies the multi-look doubling policy: SLC-class stages run
// one unit per distinct look factor pair, so a split configuration yields
// two units per scene and an equal configuration yields one.
func (c *Controller) lookSets() []lookPair {
	slc := lookPair{Range: c.cfg.MultiLook.SLCRangeLooks, Azimuth: c.cfg.MultiLook.SLCAzimuthLooks}
	if !c.cfg.MultiLook.Split() {
		return []lookPair{slc}
	}
	ifg := lookPair{Range: c.cfg.MultiLook.IfgRangeLooks, Azimuth: c.cfg.MultiLook.IfgAzimuthLooks}
	return []lookPair{slc, ifg}
}

func (c *Controller) ifgLooks() lookPair {
	return lookPair{Range: c.cfg.MultiLook.IfgRangeLooks, Azimuth: c.cfg.MultiLook.IfgAzimuthLooks}
}

func (c *Controller) rawUnits(scenes []lists.Scene) []unit {
	units := make([]unit, 0, len(scenes))
	for _, scene := range scenes {
		units = append(units, unit{
			key: scene.Identifier(),
			commands: [][]string{
				{"extract_raw_data", c.cfg.ProcPath, scene.Date},
			},
		})
	}
	return units
}

// slcUnits builds SLC-creation units. A scene whose SLC product already
// exists on durable storage skips regeneration but still multi-looks the
// existing product.
func (c *Controller) slcUnits(scenes []lists.Scene) []unit {
	looks := c.lookSets()
	units := make([]unit, 0, len(scenes)*len(looks))
	for _, scene := range scenes {
		for _, look := range looks {
			commands := make([][]string, 0, 2)
			if !artifactExists(c.slcArtifact(scene)) {
				commands = append(commands, []string{
					c.sensor.Procedure(), c.cfg.ProcPath, scene.Date,
					strconv.Itoa(look.Range), strconv.Itoa(look.Azimuth),
				})
			}
			commands = append(commands, []string{
				"multi_look", c.cfg.ProcPath, scene.Date,
				strconv.Itoa(look.Range), strconv.Itoa(look.Azimuth),
			})
			units = append(units, unit{
				key:      scene.Identifier() + "_" + look.suffix(),
				commands: commands,
			})
		}
	}
	return units
}

// demUnits builds DEM-coregistration units, honoring the subsetting
// split: with subsetting active and undecided, only the full-resolution
// geocode pass runs and halt is reported; once the decision flips to
// process, the subsetting pass precedes coregistration proper.
func (c *Controller) demUnits() (units []unit, halt bool) {
	master := c.cfg.MasterScene
	if c.cfg.Stages.AzimuthSubsetting {
		if c.cfg.Stages.SubsetDecision != config.SubsetProcess {
			return []unit{{
				key: master + "_geocode",
				commands: [][]string{
					{"coregister_DEM", c.cfg.ProcPath, master, "1", "1"},
				},
			}}, true
		}
		units = append(units, unit{
			key: master + "_subset",
			commands: [][]string{
				{"subset_SLC", c.cfg.ProcPath, master},
			},
		})
	}
	for _, look := range c.lookSets() {
		units = append(units, unit{
			key: master + "_" + look.suffix(),
			commands: [][]string{
				{"coregister_DEM", c.cfg.ProcPath, master,
					strconv.Itoa(look.Range), strconv.Itoa(look.Azimuth)},
			},
		})
	}
	return units, false
}

func (c *Controller) coregUnits(slaves []lists.Scene) []unit {
	look := c.ifgLooks()
	units := make([]unit, 0, len(slaves))
	for _, slave := range slaves {
		units = append(units, unit{
			key: slave.Identifier(),
			commands: [][]string{
				{"coregister_slave_SLC", c.cfg.ProcPath, slave.Date,
					strconv.Itoa(look.Range), strconv.Itoa(look.Azimuth)},
			},
		})
	}
	return units
}

// pairBody is the command set for one interferogram pair. Exposed as a
// builder so the job generator can render the same body into bulk
// sub-list scripts.
func (c *Controller) pairBody(pair lists.Pair) [][]string {
	look := c.ifgLooks()
	return [][]string{
		{"process_ifg", c.cfg.ProcPath, pair.Reference.Date, pair.Slave.Date,
			strconv.Itoa(look.Range), strconv.Itoa(look.Azimuth)},
	}
}

func (c *Controller) pairUnits(pairs []lists.Pair) []unit {
	units := make([]unit, 0, len(pairs))
	for _, pair := range pairs {
		if artifactExists(c.ifgArtifact(pair)) {
			continue
		}
		units = append(units, unit{key: pair.Name(), commands: c.pairBody(pair)})
	}
	return units
}

func (c *Controller) slcArtifact(scene lists.Scene) string {
	name := fmt.Sprintf("%s_%s.slc", scene.Date, c.cfg.Polarization)
	return filepath.Join(c.cfg.Paths.SLCDir, scene.Date, name)
}

func (c *Controller) ifgArtifact(pair lists.Pair) string {
	name := fmt.Sprintf("%s_%s_%drlks.int", pair.Name(), c.cfg.Polarization, c.cfg.MultiLook.IfgRangeLooks)
	return filepath.Join(c.cfg.Paths.IfgDir, pair.Name(), name)
}

func artifactExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func renderCommand(command []string) string {
	return strings.Join(command, " ")
}
