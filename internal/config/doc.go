// Package config loads, normalizes, and validates the run configuration
// ("proc file") that drives one processing run.
//
// The proc file is line-oriented Key=Value text. The loader supplies
// repository defaults, expands user paths (including tilde shortcuts),
// resolves stage toggles into tri-state values, and reports missing
// required keys as startup-fatal errors before any stage runs.
//
// The resulting Config is immutable by convention: it is constructed once
// at startup and passed by reference into every component. No component
// re-reads the raw proc file directly.
package config
