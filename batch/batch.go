// Package batch demonstrates the external-parallelism model spec.md §5
// describes: since a single Tokenizer is single-threaded cooperative
// state, scaling across documents means holding one Tokenizer per worker
// and accepting that their lexicons' ordinals and cache contents diverge
// across workers. It fans out with golang.org/x/sync/errgroup rather than
// hand-rolled goroutine bookkeeping.
package batch

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/vocab-lang/vocab/lexicon"
	"github.com/vocab-lang/vocab/tok"
	"github.com/vocab-lang/vocab/token"
)

// Result is one file's tokenization outcome.
type Result struct {
	Path   string
	Tokens *token.Tokens
	Error  error
}

// NewTokenizer constructs a fresh *tok.Tokenizer (and its backing lexicon)
// for one worker. Each call must return an independent instance: sharing a
// Tokenizer across goroutines would violate spec.md §5's "no internal
// synchronization" guarantee.
type NewTokenizer func() (*tok.Tokenizer, *lexicon.Lexicon)

// TokenizeFiles reads and tokenizes every path in paths concurrently, each
// on its own goroutine with its own Tokenizer from newTokenizer. It
// returns one Result per input path, in the same order as paths, and the
// first read error encountered (tokenization itself is infallible, per
// spec.md §9).
func TokenizeFiles(ctx context.Context, paths []string, newTokenizer NewTokenizer) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = Result{Path: path, Error: gctx.Err()}
				return gctx.Err()
			default:
			}

			b, err := os.ReadFile(path)
			if err != nil {
				results[i] = Result{Path: path, Error: err}
				return err
			}

			tz, lex := newTokenizer()
			sink := token.New(lex)
			if err := tz.Tokenize(string(b), sink); err != nil {
				results[i] = Result{Path: path, Error: err}
				return err
			}
			results[i] = Result{Path: path, Tokens: sink}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
