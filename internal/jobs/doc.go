// Package jobs materializes units of work as batch-queue job scripts,
// chains cross-stage dependencies through queue handles, splits oversized
// pair lists into bounded sub-lists, and records every submission in a
// SQLite ledger so a re-run of the same proc file submits each unit at
// most once.
package jobs
