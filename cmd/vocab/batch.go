package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vocab-lang/vocab/batch"
	"github.com/vocab-lang/vocab/langpack"
	"github.com/vocab-lang/vocab/lexicon"
	"github.com/vocab-lang/vocab/tok"
)

var batchFlags = struct {
	pack *string
	lang *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "batch <dir>",
		Short:   "Tokenize every file in a directory concurrently",
		Example: `  vocab batch --pack ./packs --lang en ./corpus`,
		Args:    cobra.ExactArgs(1),
		RunE:    runBatch,
	}
	batchFlags.pack = cmd.Flags().String("pack", "", "language pack root directory (required)")
	batchFlags.lang = cmd.Flags().String("lang", "", "language subdirectory under --pack (required)")
	cmd.MarkFlagRequired("pack")
	cmd.MarkFlagRequired("lang")
	rootCmd.AddCommand(cmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	// Each worker loads its own Language from the data root, giving every
	// goroutine a fully independent Tokenizer and Lexicon, matching
	// spec.md §5's "no internal synchronization" guarantee: nothing here
	// is shared across workers.
	root, lang := *batchFlags.pack, *batchFlags.lang
	if _, err := langpack.Load(root, lang); err != nil {
		return err
	}
	newTokenizer := func() (*tok.Tokenizer, *lexicon.Lexicon) {
		l, err := langpack.Load(root, lang)
		if err != nil {
			panic(err)
		}
		return l.Tokenizer, l.Lexicon
	}

	results, err := batch.TokenizeFiles(context.Background(), paths, newTokenizer)
	for _, r := range results {
		if r.Error != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Error)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tokens\n", r.Path, r.Tokens.Len())
	}
	return err
}
