package report

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sarpipe/internal/config"
	"sarpipe/internal/logging"
	"sarpipe/internal/sensors"
)

// Unit names one processed unit and its captured error-stream log.
type Unit struct {
	Name   string
	ErrLog string
}

// Collator builds stage error reports.
type Collator struct {
	cfg    *config.Config
	sensor sensors.Sensor
	logger *slog.Logger
}

// NewCollator constructs a collator for the run's sensor family.
func NewCollator(cfg *config.Config, logger *slog.Logger) (*Collator, error) {
	sensor, err := sensors.Lookup(cfg.Sensor)
	if err != nil {
		return nil, err
	}
	return &Collator{
		cfg:    cfg,
		sensor: sensor,
		logger: logging.NewComponentLogger(logger, "report"),
	}, nil
}

// ReportPath returns the stage report location.
func (c *Collator) ReportPath(stage string) string {
	return filepath.Join(c.cfg.Paths.ErrorDir, stage+"_errors.log")
}

// Begin creates the stage report fresh. A report exists per stage run and
// is append-only afterwards.
func (c *Collator) Begin(stage string) (string, error) {
	path := c.ReportPath(stage)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("ensure error directory: %w", err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return "", fmt.Errorf("create stage report %s: %w", path, err)
	}
	return path, nil
}

// Append copies one unit's filtered error capture into the stage report,
// preceded by a unit-identifying header line. A missing log yields an
// explicit "no log found" entry instead of an error.
func (c *Collator) Append(stage string, unit Unit) error {
	path := c.ReportPath(stage)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open stage report %s: %w", path, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "=== %s ===\n", unit.Name); err != nil {
		return fmt.Errorf("write unit header: %w", err)
	}

	data, readErr := os.ReadFile(unit.ErrLog)
	if readErr != nil {
		if errors.Is(readErr, fs.ErrNotExist) {
			if _, err := fmt.Fprintf(file, "no log found: %s\n", unit.ErrLog); err != nil {
				return fmt.Errorf("write missing-log entry: %w", err)
			}
			c.logger.Warn("unit error log missing",
				logging.String(logging.FieldStage, stage),
				logging.String("unit", unit.Name),
				logging.String("path", unit.ErrLog))
			return nil
		}
		return fmt.Errorf("read unit log %s: %w", unit.ErrLog, readErr)
	}

	for line := range strings.Lines(string(data)) {
		if c.isNoise(line) {
			continue
		}
		if _, err := file.WriteString(line); err != nil {
			return fmt.Errorf("append unit log: %w", err)
		}
	}
	return nil
}

// Collate builds the full stage report for the given units and returns
// its path.
func (c *Collator) Collate(stage string, units []Unit) (string, error) {
	path, err := c.Begin(stage)
	if err != nil {
		return "", err
	}
	for _, unit := range units {
		if err := c.Append(stage, unit); err != nil {
			return "", err
		}
	}
	c.logger.Info("stage report collated",
		logging.String(logging.FieldStage, stage),
		logging.Int("units", len(units)),
		logging.String("path", path))
	return path, nil
}

func (c *Collator) isNoise(line string) bool {
	return c.sensor.NoisePrefix != "" && strings.HasPrefix(line, c.sensor.NoisePrefix)
}
