// Package sensors holds the per-sensor-family lookup table consulted by
// the stage controller: the date-token offset used to recognize scenes in
// raw archive names, the external SLC-creation procedure (including the
// raw Level-0 variant where a family has one), the multi-look multiplier,
// and the noise-line marker stripped during error collation.
package sensors
