// Package report consolidates per-unit error logs into one stage-level
// error report. Known high-volume diagnostic lines from the sensor's
// conversion utility are stripped; a missing unit log is recorded, never
// fatal.
package report
