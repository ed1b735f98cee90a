// Package lexicon implements the append-only interned store of lexical
// types described by the tokenizer core: one record per distinct surface
// form ever seen, addressable by the fingerprint of its orthographic
// string, with stable ordinals and a flat on-disk record format.
//
// A Lexicon owns every record it hands out. References returned by Get and
// Set, and records created by Load, remain valid for the full lifetime of
// the Lexicon — the
// backing storage is append-only and never moves, so there is no arena
// indirection layer to speak of beyond "allocate a record, keep its
// pointer around forever".
//
// A Lexicon is not safe for concurrent use: Get and Set mutate the
// fingerprint map and the ordinal sequence without internal
// synchronization, matching the single-threaded cooperative model the
// tokenizer core is built around (see package tok and package batch).
package lexicon

import "fmt"

// FeaturePayloadSize is the width, in bytes, of the opaque orthographic
// feature payload the core treats as a caller-defined blob. The core never
// interprets these bytes; it only ever copies them whole.
const FeaturePayloadSize = 16

// Features is the fixed-width, opaque orthographic feature payload attached
// to every lexeme. Its contents (flags, derived forms, ...) are defined by
// the collaborator that computes them, not by this package.
type Features [FeaturePayloadSize]byte

// FeatureFunc computes the feature payload for a surface form at insertion
// time. Supplied by the language-construction collaborator.
type FeatureFunc func(surface string) Features

// StringStore is the external interner for surface forms. The lexicon holds
// a reference to one but does not define its layout or storage strategy.
type StringStore interface {
	// Intern returns a stable id for s, allocating one if s has not been
	// seen by this store before.
	Intern(s string) uint64

	// Lookup returns the surface form previously registered under id.
	Lookup(id uint64) (string, bool)
}

// Lexeme is the record for one distinct surface form. It is immutable once
// inserted except for its Features payload, which Set may overwrite in
// place without disturbing the Ordinal.
type Lexeme struct {
	// Ordinal is the 1-based, monotonically increasing index assigned at
	// first interning. 0 is reserved and never assigned to a real lexeme.
	Ordinal uint32

	// Fingerprint is the content hash of the surface form (see package
	// fingerprint). Fingerprints are assumed collision-free: the lexicon
	// does no collision resolution, per the core's design notes.
	Fingerprint uint64

	// StringRef is the id of this lexeme's surface form in the external
	// string store.
	StringRef uint64

	// Features is the precomputed, opaque orthographic feature payload.
	Features Features
}

// Ref is a stable reference to a lexeme record, valid for the lifetime of
// the Lexicon that produced it.
type Ref = *Lexeme

// Lexicon is the fingerprint-indexed, ordinal-ordered store of lexemes.
type Lexicon struct {
	strings  StringStore
	features FeatureFunc

	byFingerprint map[uint64]Ref
	sequence      []Ref // sequence[0] is the reserved nil slot; real lexemes start at 1
}

// New creates an empty Lexicon. strings and features are the external
// collaborators used to initialize newly interned records.
func New(strings StringStore, features FeatureFunc) *Lexicon {
	return &Lexicon{
		strings:       strings,
		features:      features,
		byFingerprint: make(map[uint64]Ref),
		sequence:      []Ref{nil},
	}
}

// Len returns the number of real (non-reserved) records in the lexicon.
func (lx *Lexicon) Len() int {
	return len(lx.sequence) - 1
}

// ByOrdinal returns the record with the given 1-based ordinal, or nil if out
// of range.
func (lx *Lexicon) ByOrdinal(ordinal uint32) Ref {
	if int(ordinal) <= 0 || int(ordinal) >= len(lx.sequence) {
		return nil
	}
	return lx.sequence[ordinal]
}

// ByFingerprint returns the record for fp, if any, without inserting one.
func (lx *Lexicon) ByFingerprint(fp uint64) (Ref, bool) {
	lex, ok := lx.byFingerprint[fp]
	return lex, ok
}

func (lx *Lexicon) insert(fp uint64, surface string, features Features) Ref {
	lex := &Lexeme{
		Ordinal:     uint32(len(lx.sequence)),
		Fingerprint: fp,
		StringRef:   lx.strings.Intern(surface),
		Features:    features,
	}
	lx.byFingerprint[fp] = lex
	lx.sequence = append(lx.sequence, lex)
	return lex
}

// Get returns the existing record for chars' fingerprint, or inserts a new
// one: interning the surface form through the string store, computing its
// feature payload, assigning the next ordinal, and appending to both the
// fingerprint map and the ordinal sequence.
func (lx *Lexicon) Get(fp uint64, chars []byte) Ref {
	if lex, ok := lx.byFingerprint[fp]; ok {
		return lex
	}
	surface := string(chars)
	return lx.insert(fp, surface, lx.features(surface))
}

// Set forces the feature payload of the record for surface to payload,
// preserving the ordinal if the record already exists, or creating it (with
// the next ordinal) if absent.
func (lx *Lexicon) Set(fp uint64, surface string, payload Features) Ref {
	if lex, ok := lx.byFingerprint[fp]; ok {
		lex.Features = payload
		return lex
	}
	return lx.insert(fp, surface, payload)
}

// Lookup is a convenience read returning a by-value copy of the record for
// surface's fingerprint.
func (lx *Lexicon) Lookup(fp uint64) (Lexeme, bool) {
	lex, ok := lx.byFingerprint[fp]
	if !ok {
		return Lexeme{}, false
	}
	return *lex, true
}

// Surface returns the surface form of ref, read back from the external
// string store via its StringRef. The core itself never stores surface
// text inside a Lexeme — only a reference into the string store — so any
// consumer that needs the text (a CLI printer, a token sink computing
// offsets) goes through here.
func (lx *Lexicon) Surface(ref Ref) string {
	s, _ := lx.strings.Lookup(ref.StringRef)
	return s
}

func (lx *Lexicon) String() string {
	return fmt.Sprintf("Lexicon{records=%d}", lx.Len())
}
