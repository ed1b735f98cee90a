// Package ruleset holds the three compiled affix regexes (prefix, suffix,
// infix) and the fingerprint-indexed special-case table the tokenizer core
// consults while peeling and splitting a chunk. All four lookups are pure
// functions of their input and the rule set: nothing here mutates state.
package ruleset

import (
	"regexp"

	"github.com/vocab-lang/vocab/lexicon"
	"github.com/vocab-lang/vocab/vocaberr"
)

// Rules is a compiled prefix/suffix/infix matcher trio plus the special
// table, built once at language construction and never mutated afterward.
type Rules struct {
	prefix *regexp.Regexp
	suffix *regexp.Regexp
	infix  *regexp.Regexp

	specials map[uint64][]lexicon.Ref
}

// Compile compiles the three regex sources into a Rules value. A compile
// failure is a configuration error: the tokenizer built on top of a failed
// Compile is never observed half-initialized (spec.md §7).
func Compile(prefixPattern, suffixPattern, infixPattern string) (*Rules, error) {
	prefix, err := regexp.Compile(anchorStart(prefixPattern))
	if err != nil {
		return nil, vocaberr.Configf("ruleset: compiling prefix pattern %q: %w", prefixPattern, err)
	}
	suffix, err := regexp.Compile(anchorEnd(suffixPattern))
	if err != nil {
		return nil, vocaberr.Configf("ruleset: compiling suffix pattern %q: %w", suffixPattern, err)
	}
	infix, err := regexp.Compile(infixPattern)
	if err != nil {
		return nil, vocaberr.Configf("ruleset: compiling infix pattern %q: %w", infixPattern, err)
	}
	prefix.Longest()
	suffix.Longest()
	infix.Longest()
	return &Rules{
		prefix:   prefix,
		suffix:   suffix,
		infix:    infix,
		specials: make(map[uint64][]lexicon.Ref),
	}, nil
}

// anchorStart anchors pattern to the start of the string, unless it is
// already anchored. Go's regexp package does not have a "leftmost match
// anchored here" primitive distinct from ^, so the prefix matcher anchors
// explicitly.
func anchorStart(pattern string) string {
	if len(pattern) > 0 && pattern[0] == '^' {
		return pattern
	}
	return "^(?:" + pattern + ")"
}

// anchorEnd anchors pattern to the end of the string, unless already
// anchored.
func anchorEnd(pattern string) string {
	if len(pattern) > 0 && pattern[len(pattern)-1] == '$' {
		return pattern
	}
	return "(?:" + pattern + ")$"
}

// MatchPrefix returns the length of the match anchored at the start of s,
// or 0 if none. Overlapping candidate matches are resolved by the regexp
// engine's own leftmost-longest semantics; the rule set does not re-rank
// them (spec.md §4.D.6).
func (r *Rules) MatchPrefix(s string) int {
	loc := r.prefix.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	return loc[1] - loc[0]
}

// MatchSuffix returns the length of the match anchored at the end of s, or
// 0 if none.
func (r *Rules) MatchSuffix(s string) int {
	loc := r.suffix.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	return loc[1] - loc[0]
}

// MatchInfix returns the start offset of the first infix match inside s, or
// 0 if there is no match. The returned offset is a split point: the
// character at that offset becomes its own token (spec.md §4.C).
func (r *Rules) MatchInfix(s string) int {
	loc := r.infix.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	return loc[0]
}

// AddSpecial preseeds the special table: chunkFingerprint's tokenization is
// fixed to expansion, overriding whatever affix/infix logic would otherwise
// produce. Specials are never evicted.
func (r *Rules) AddSpecial(chunkFingerprint uint64, expansion []lexicon.Ref) {
	r.specials[chunkFingerprint] = expansion
}

// Special returns the preseeded expansion for fp, if any.
func (r *Rules) Special(fp uint64) ([]lexicon.Ref, bool) {
	expansion, ok := r.specials[fp]
	return expansion, ok
}

// SpecialCount returns the number of preseeded special-case entries.
func (r *Rules) SpecialCount() int {
	return len(r.specials)
}
