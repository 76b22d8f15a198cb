// Package lists derives and persists the three ordered entity lists that
// drive a processing run: scenes, slave (non-reference) scenes, and
// interferogram pairs.
//
// Lists are deterministic: the same raw-archive contents always produce
// byte-identical list files. Incremental runs append new scenes with set
// semantics on the date+frame key, never disturbing existing entries.
package lists
