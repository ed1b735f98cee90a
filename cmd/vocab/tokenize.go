package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocab-lang/vocab/langpack"
	"github.com/vocab-lang/vocab/token"
)

var tokenizeFlags = struct {
	pack   *string
	lang   *string
	pretty *bool
	watch  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tokenize [file]",
		Short:   "Tokenize a text file (or stdin) using a language pack",
		Example: `  vocab tokenize --pack ./packs --lang en input.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTokenize,
	}
	tokenizeFlags.pack = cmd.Flags().String("pack", "", "language pack root directory (required)")
	tokenizeFlags.lang = cmd.Flags().String("lang", "", "language subdirectory under --pack (required)")
	tokenizeFlags.pretty = cmd.Flags().Bool("pretty", false, "colorize the offset:surface output for a terminal")
	tokenizeFlags.watch = cmd.Flags().Bool("watch", false, "reload the language pack when its data files change")
	cmd.MarkFlagRequired("pack")
	cmd.MarkFlagRequired("lang")
	rootCmd.AddCommand(cmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	var src io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}
	text, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	var lang *langpack.Language
	if *tokenizeFlags.watch {
		r, err := langpack.Watch(*tokenizeFlags.pack, *tokenizeFlags.lang, func(err error) {
			fmt.Fprintf(os.Stderr, "vocab: reload failed: %v\n", err)
		})
		if err != nil {
			return err
		}
		defer r.Close()
		lang = r.Current()
	} else {
		lang, err = langpack.Load(*tokenizeFlags.pack, *tokenizeFlags.lang)
		if err != nil {
			return err
		}
	}

	sink := token.New(lang.Lexicon)
	if err := lang.Tokenizer.Tokenize(string(text), sink); err != nil {
		return err
	}

	if *tokenizeFlags.pretty {
		return sink.Pretty(cmd.OutOrStdout(), true)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), sink.String())
	return err
}
