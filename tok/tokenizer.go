// Package tok implements the tokenizer core: whitespace segmentation,
// per-chunk cached lookup, affix peeling to a fixed point, a single infix
// split, token assembly, and cache write-back.
//
// A Tokenizer is single-threaded cooperative state, by design (spec.md
// §5): Get on the lexicon and writes to the cache mutate shared maps
// without internal synchronization. One instance processes one input at a
// time; reuse it sequentially, or hold one per goroutine (see package
// batch) and accept that ordinals and cache contents diverge across
// instances.
package tok

import (
	"unicode"
	"unicode/utf8"

	"github.com/vocab-lang/vocab/fingerprint"
	"github.com/vocab-lang/vocab/lexicon"
	"github.com/vocab-lang/vocab/ruleset"
)

// Sink is the token output interface the tokenizer core writes to. The
// concrete container (package token) is a downstream collaborator; the
// core only knows this narrow interface (spec.md §6).
type Sink interface {
	// Extend appends a contiguous run of lexemes starting at startOffset.
	// lenOrZero == 0 means "the run is null-terminated, count it" — refs
	// passed here are always already a concrete, finite slice, so
	// implementations are free to use len(refs) directly; the parameter
	// exists to mirror the native record format described in spec.md §6.
	Extend(startOffset int, refs []lexicon.Ref, lenOrZero int)

	// PushBack appends a single lexeme at startOffset and returns the
	// offset the next token should use (typically startOffset plus the
	// surface length).
	PushBack(startOffset int, ref lexicon.Ref) int

	// Len returns the current count of emitted tokens.
	Len() int
}

// RuleEntry is one (chunk, expansion) pair from the data-loading
// collaborator's rule list (spec.md §6). Chunk's fingerprint preseeds both
// the special table and the tokenizer's cache with the interned expansion;
// specials always take priority over affix/infix logic.
type RuleEntry struct {
	Chunk     string
	Expansion []string
}

// Tokenizer holds the shared lexicon, the compiled rule set, and the
// per-chunk memoization cache.
type Tokenizer struct {
	lex   *lexicon.Lexicon
	rules *ruleset.Rules
	cache map[uint64][]lexicon.Ref
}

// New constructs a Tokenizer, preseeding the special table and the cache
// from rules. lex and rules are assumed already constructed by the
// language-construction collaborator (spec.md §6); New does no file I/O.
func New(lex *lexicon.Lexicon, rules *ruleset.Rules, seeds []RuleEntry) *Tokenizer {
	t := &Tokenizer{
		lex:   lex,
		rules: rules,
		cache: make(map[uint64][]lexicon.Ref),
	}
	for _, r := range seeds {
		t.preseed(r.Chunk, r.Expansion)
	}
	return t
}

func (t *Tokenizer) preseed(chunk string, substrings []string) {
	expansion := make([]lexicon.Ref, len(substrings))
	for i, sub := range substrings {
		expansion[i] = t.intern(sub)
	}
	fp := fingerprint.OfString(chunk)
	t.rules.AddSpecial(fp, expansion)
	t.cache[fp] = expansion
}

func (t *Tokenizer) intern(surface string) lexicon.Ref {
	return t.lex.Get(fingerprint.OfString(surface), []byte(surface))
}

// CacheLen returns the number of distinct chunk fingerprints currently
// memoized, including the specials preseeded at construction.
func (t *Tokenizer) CacheLen() int {
	return len(t.cache)
}

// Tokenize scans text, emitting tokens to sink in strict left-to-right
// order of their starting offset. Cache population for a chunk becomes
// observable only after that chunk's tokens have all been emitted
// (spec.md §5 Ordering).
//
// Empty input emits nothing and returns no error. Tokenize is infallible
// except for allocation failure surfacing from the Go runtime itself —
// the "open question" in spec.md §9 about a fallible return channel is
// resolved that way: normal tokenization never produces an error value.
func (t *Tokenizer) Tokenize(text string, sink Sink) error {
	for _, c := range segmentWhitespace(text) {
		chunk := text[c.start:c.end]
		fp := fingerprint.OfString(chunk)

		if cached, ok := t.cache[fp]; ok {
			sink.Extend(c.start, cached, len(cached))
			continue
		}

		toks := t.tokenizeChunk(chunk)
		sink.Extend(c.start, toks, len(toks))
		t.cache[fp] = toks
	}
	return nil
}

// tokenizeChunk runs affix peeling to a fixed point, then assembles the
// chunk's final token sequence: prefixes (FIFO), residual parts, suffixes
// (LIFO) — spec.md §4.D.3-4.D.4.
func (t *Tokenizer) tokenizeChunk(chunk string) []lexicon.Ref {
	prefixes, suffixes, residual := t.peelAffixes(chunk)

	var out []lexicon.Ref
	out = append(out, prefixes...)
	out = append(out, t.assembleResidual(residual)...)
	for i := len(suffixes) - 1; i >= 0; i-- {
		out = append(out, suffixes[i])
	}
	return out
}

// peelAffixes implements spec.md §4.D.3. prefixes is in emission order;
// suffixes is pushed head-first and must be emitted tail-first by the
// caller.
func (t *Tokenizer) peelAffixes(chunk string) (prefixes, suffixes []lexicon.Ref, residual string) {
	s := chunk
	for s != "" {
		startLen := len(s)

		preLen := t.rules.MatchPrefix(s)
		if preLen > 0 {
			minusPre := s[preLen:]
			if minusPre != "" {
				if _, ok := t.rules.Special(fingerprint.OfString(minusPre)); ok {
					prefixes = append(prefixes, t.intern(s[:preLen]))
					return prefixes, suffixes, minusPre
				}
			}
		}

		sufLen := t.rules.MatchSuffix(s)
		if sufLen > 0 {
			minusSuf := s[:len(s)-sufLen]
			if minusSuf != "" {
				if _, ok := t.rules.Special(fingerprint.OfString(minusSuf)); ok {
					suffixes = append(suffixes, t.intern(s[len(s)-sufLen:]))
					return prefixes, suffixes, minusSuf
				}
			}
		}

		switch {
		case preLen > 0 && sufLen > 0 && preLen+sufLen <= len(s):
			prefixes = append(prefixes, t.intern(s[:preLen]))
			suffixes = append(suffixes, t.intern(s[len(s)-sufLen:]))
			s = s[preLen : len(s)-sufLen]
		case preLen > 0 && sufLen == 0:
			prefixes = append(prefixes, t.intern(s[:preLen]))
			s = s[preLen:]
		case sufLen > 0 && preLen == 0:
			suffixes = append(suffixes, t.intern(s[len(s)-sufLen:]))
			s = s[:len(s)-sufLen]
		}
		// Any other combination (neither matched, or both matched but
		// together they would consume more than the whole string) makes no
		// progress this iteration; the fixed-point guard below ends the loop.

		if _, ok := t.rules.Special(fingerprint.OfString(s)); ok {
			return prefixes, suffixes, s
		}
		if len(s) == startLen {
			return prefixes, suffixes, s
		}
	}
	return prefixes, suffixes, s
}

// assembleResidual implements spec.md §4.D.4's residual handling: empty
// residual contributes nothing, a cache hit reuses a previously computed
// vector, and a cache miss performs at most one infix split.
func (t *Tokenizer) assembleResidual(residual string) []lexicon.Ref {
	if residual == "" {
		return nil
	}

	fp := fingerprint.OfString(residual)
	if cached, ok := t.cache[fp]; ok {
		return cached
	}

	split := t.rules.MatchInfix(residual)
	if split == 0 {
		return []lexicon.Ref{t.intern(residual)}
	}

	left := residual[:split]
	mid := residual[split : split+1]
	right := residual[split+1:]

	toks := []lexicon.Ref{t.intern(left), t.intern(mid)}
	if right != "" {
		toks = append(toks, t.intern(right))
	}
	return toks
}

type chunkRange struct {
	start, end int
}

// segmentWhitespace implements spec.md §4.D.1: the whitespace-classification
// flips of text mark chunk boundaries. When a non-whitespace run gives way
// to a literal space, that one space is consumed as a separator and never
// becomes part of any emitted chunk; the rest of the whitespace run (tabs,
// further spaces, newlines), and whitespace at the very start of text, is
// tokenized like any other chunk, per the "whitespace chunk interning"
// design note.
func segmentWhitespace(text string) []chunkRange {
	n := len(text)
	if n == 0 {
		return nil
	}

	firstRune, _ := utf8.DecodeRuneInString(text)
	inWS := unicode.IsSpace(firstRune)
	start := 0

	var chunks []chunkRange
	first := true
	for i, r := range text {
		if first {
			first = false
			continue
		}
		if unicode.IsSpace(r) == inWS {
			continue
		}
		if i > start {
			chunks = append(chunks, chunkRange{start, i})
		}
		start = i
		if r == ' ' {
			start++
		}
		inWS = unicode.IsSpace(r)
	}
	if n > start {
		chunks = append(chunks, chunkRange{start, n})
	}
	return chunks
}
