// Package fingerprint computes the 64-bit content hash used throughout the
// tokenizer core as a cache key and a lexicon key.
package fingerprint

import "hash/fnv"

// Of returns the fingerprint of a byte range. The result is deterministic:
// equal byte ranges always yield equal fingerprints, on any run of the
// process, on any machine. This is a correctness requirement, not just a
// performance nicety — the lexicon's on-disk format stores fingerprints
// directly, and a dump produced by one run must be loadable by another.
//
// FNV-1a's offset basis is the fixed seed; unlike hash/maphash (whose seed
// is randomized per process and cannot be pinned), FNV needs no seed
// management to get bit-for-bit agreement across runs.
func Of(chars []byte) uint64 {
	h := fnv.New64a()
	h.Write(chars)
	return h.Sum64()
}

// OfString is Of for a string, avoiding a byte-slice copy at call sites that
// already hold a string.
func OfString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
