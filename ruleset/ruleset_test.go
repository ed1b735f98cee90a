package ruleset

import (
	"testing"

	"github.com/vocab-lang/vocab/lexicon"
)

func TestCompileAnchorsPatterns(t *testing.T) {
	r, err := Compile(`[$]`, `[.,]`, `-`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if got := r.MatchPrefix("$hello"); got != 1 {
		t.Fatalf("MatchPrefix(%q) = %d, want 1", "$hello", got)
	}
	if got := r.MatchPrefix("hello$"); got != 0 {
		t.Fatalf("MatchPrefix(%q) = %d, want 0 (prefix must anchor at start)", "hello$", got)
	}
	if got := r.MatchSuffix("hello."); got != 1 {
		t.Fatalf("MatchSuffix(%q) = %d, want 1", "hello.", got)
	}
	if got := r.MatchSuffix(".hello"); got != 0 {
		t.Fatalf("MatchSuffix(%q) = %d, want 0 (suffix must anchor at end)", ".hello", got)
	}
}

func TestCompileRejectsInvalidPattern(t *testing.T) {
	if _, err := Compile(`[`, `.`, `-`); err == nil {
		t.Fatalf("expected Compile to reject an invalid prefix pattern")
	}
}

func TestMatchInfixReturnsSplitOffset(t *testing.T) {
	r, err := Compile(`[$]`, `[.,]`, `-`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if got := r.MatchInfix("state-of-the-art"); got != 5 {
		t.Fatalf("MatchInfix(%q) = %d, want 5", "state-of-the-art", got)
	}
	if got := r.MatchInfix("nodash"); got != 0 {
		t.Fatalf("MatchInfix(%q) = %d, want 0", "nodash", got)
	}
}

func TestSpecialTableRoundTrip(t *testing.T) {
	r, err := Compile(`[$]`, `[.,]`, `-`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if got := r.SpecialCount(); got != 0 {
		t.Fatalf("SpecialCount() = %d on a fresh Rules, want 0", got)
	}

	ref := &lexicon.Lexeme{Ordinal: 1}
	r.AddSpecial(42, []lexicon.Ref{ref})

	got, ok := r.Special(42)
	if !ok {
		t.Fatalf("Special did not find a preseeded entry")
	}
	if len(got) != 1 || got[0] != ref {
		t.Fatalf("Special returned an unexpected expansion: %v", got)
	}

	if _, ok := r.Special(99); ok {
		t.Fatalf("Special reported success for a fingerprint never added")
	}

	r.AddSpecial(43, []lexicon.Ref{ref})
	if got := r.SpecialCount(); got != 2 {
		t.Fatalf("SpecialCount() = %d after adding 2 entries, want 2", got)
	}
}
