// Command sarpipe orchestrates a SAR interferometric processing run:
// entity list derivation, stage gating, batch job generation, and stage
// error collation, driven by a Key=Value proc file.
package main
