// Package gamma invokes external toolkit programs for one unit of work.
//
// Each invocation is teed to a per-unit command log and its stdout and
// stderr are captured to per-unit output and error logs. A non-zero
// toolkit exit is reported as a UnitError for the caller to record; it is
// never fatal to the stage.
package gamma
