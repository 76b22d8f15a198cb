// Package pipeline is the stage controller: a fixed-order state machine
// that decides, per stage, whether to skip, run inline, or submit batch
// jobs, and that absorbs per-unit failures into the stage error report.
//
// The main pass and the incremental add-scenes pass share one pipeline
// definition; the incremental flag filters the scene and pair lists down
// to newly added entities instead of maintaining a second code path.
package pipeline
