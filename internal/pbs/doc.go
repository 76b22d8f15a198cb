// Package pbs submits generated job scripts to the batch queue.
//
// The queue itself is an external collaborator: it accepts a script and
// optional afterok dependencies and returns an opaque job handle. This
// package is the only code allowed to interpret queue-submission output.
package pbs
