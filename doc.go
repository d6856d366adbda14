// Package tagpack encodes and decodes a small self-describing binary
// format.
//
// A value is one of four kinds, each written as an 8-byte type tag
// followed by its payload:
//
//	0  uint64     8-byte integer
//	1  float64    8-byte IEEE-754 bits
//	2  string     8-byte length n, then n raw bytes
//	3  sequence   8-byte count k, then k complete values
//
// A Container is the top-level unit: an 8-byte count followed by that many
// values, with no tag of its own.
//
// All 8-byte words use the host's native byte order by default, so the
// format is not portable across architectures unless WithByteOrder is used
// on both ends.
package tagpack
