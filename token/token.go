// Package token provides a concrete implementation of the tokenizer
// core's Sink interface (tok.Sink): an ordered, offset-tagged token
// sequence. The tokenizer core only knows the narrow Sink interface; this
// concrete container is the downstream collaborator spec.md §1 declares
// out of scope for the core itself, kept here because a complete repo
// needs at least one implementation to test and print tokens with.
package token

import (
	"fmt"
	"io"
	"strings"

	"github.com/vocab-lang/vocab/lexicon"
)

// Token is one occurrence of a lexeme at a specific offset in the output.
type Token struct {
	Start int
	Ref   lexicon.Ref
}

// Tokens is an append-only sequence of tokens, implementing tok.Sink.
type Tokens struct {
	lex  *lexicon.Lexicon
	toks []Token
}

// New creates an empty Tokens sink backed by lex, used to look up surface
// forms when computing each token's offset.
func New(lex *lexicon.Lexicon) *Tokens {
	return &Tokens{lex: lex}
}

// Extend appends a contiguous run of lexemes starting at startOffset,
// advancing the offset by each lexeme's surface length in turn.
func (ts *Tokens) Extend(startOffset int, refs []lexicon.Ref, lenOrZero int) {
	n := lenOrZero
	if n == 0 {
		n = len(refs)
	}
	offset := startOffset
	for i := 0; i < n; i++ {
		ref := refs[i]
		ts.toks = append(ts.toks, Token{Start: offset, Ref: ref})
		offset += len(ts.lex.Surface(ref))
	}
}

// PushBack appends a single lexeme at startOffset and returns the offset
// the next token should use.
func (ts *Tokens) PushBack(startOffset int, ref lexicon.Ref) int {
	ts.toks = append(ts.toks, Token{Start: startOffset, Ref: ref})
	return startOffset + len(ts.lex.Surface(ref))
}

// Len returns the current count of emitted tokens.
func (ts *Tokens) Len() int {
	return len(ts.toks)
}

// All returns the emitted tokens in emission order.
func (ts *Tokens) All() []Token {
	return ts.toks
}

// Surfaces returns the surface form of every emitted token, in order.
// Concatenating them gives the input minus the single separator spaces the
// tokenizer consumes between chunks; a chunk with a special-case expansion
// contributes the expansion's surfaces rather than its own text.
func (ts *Tokens) Surfaces() []string {
	out := make([]string, len(ts.toks))
	for i, t := range ts.toks {
		out[i] = ts.lex.Surface(t.Ref)
	}
	return out
}

// String renders the token sequence for debugging, one "offset:surface"
// pair per line.
func (ts *Tokens) String() string {
	var b strings.Builder
	for _, t := range ts.toks {
		fmt.Fprintf(&b, "%d:%s\n", t.Start, ts.lex.Surface(t.Ref))
	}
	return b.String()
}

// ANSI color codes for Pretty's terminal output. There is no color
// library in the teacher or the wider retrieval pack to reach for here
// (the one precedent, SeleniaProject-Orizon's test runner and
// diagnostics formatter, writes raw escape codes the same way).
const (
	ansiCyan  = "\x1b[36m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

// Pretty writes the same "offset:surface" pairs as String, one per line,
// optionally wrapping the offset and surface in ANSI color codes for a
// terminal. color is false for piped/redirected output, matching
// SeleniaProject-Orizon's Color-gated writeLine/writeSummary helpers.
func (ts *Tokens) Pretty(w io.Writer, color bool) error {
	for _, t := range ts.toks {
		offset := fmt.Sprintf("%d", t.Start)
		surface := ts.lex.Surface(t.Ref)
		if color {
			offset = ansiCyan + offset + ansiReset
			surface = ansiGreen + surface + ansiReset
		}
		if _, err := fmt.Fprintf(w, "%s:%s\n", offset, surface); err != nil {
			return err
		}
	}
	return nil
}
