package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocab-lang/vocab/langpack"
	"github.com/vocab-lang/vocab/lexicon"
	"github.com/vocab-lang/vocab/surface"
)

var lexiconDumpFlags = struct {
	pack   *string
	lang   *string
	output *string
}{}

var lexiconStatsFlags = struct {
	pack *string
	lang *string
}{}

func init() {
	lexiconCmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and persist a language pack's lexicon",
	}

	dumpCmd := &cobra.Command{
		Use:     "dump",
		Short:   "Load a language pack and dump its lexicon to a flat file",
		Example: `  vocab lexicon dump --pack ./packs --lang en -o en.lexicon`,
		Args:    cobra.NoArgs,
		RunE:    runLexiconDump,
	}
	lexiconDumpFlags.pack = dumpCmd.Flags().String("pack", "", "language pack root directory (required)")
	lexiconDumpFlags.lang = dumpCmd.Flags().String("lang", "", "language subdirectory under --pack (required)")
	lexiconDumpFlags.output = dumpCmd.Flags().StringP("output", "o", "", "output file path (required)")
	dumpCmd.MarkFlagRequired("pack")
	dumpCmd.MarkFlagRequired("lang")
	dumpCmd.MarkFlagRequired("output")

	statsCmd := &cobra.Command{
		Use:     "stats",
		Short:   "Load a language pack and report the size of its seeded lexicon",
		Example: `  vocab lexicon stats --pack ./packs --lang en`,
		Args:    cobra.NoArgs,
		RunE:    runLexiconStats,
	}
	lexiconStatsFlags.pack = statsCmd.Flags().String("pack", "", "language pack root directory (required)")
	lexiconStatsFlags.lang = statsCmd.Flags().String("lang", "", "language subdirectory under --pack (required)")
	statsCmd.MarkFlagRequired("pack")
	statsCmd.MarkFlagRequired("lang")

	loadCmd := &cobra.Command{
		Use:     "load <in>",
		Short:   "Read a flat lexicon dump and report its record count",
		Example: `  vocab lexicon load en.lexicon`,
		Args:    cobra.ExactArgs(1),
		RunE:    runLexiconLoad,
	}

	lexiconCmd.AddCommand(dumpCmd, statsCmd, loadCmd)
	rootCmd.AddCommand(lexiconCmd)
}

func runLexiconLoad(cmd *cobra.Command, args []string) error {
	lex := lexicon.New(surface.New(), func(string) lexicon.Features { return lexicon.Features{} })
	if err := lex.Load(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records\n", args[0], lex.Len())
	return nil
}

func runLexiconDump(cmd *cobra.Command, args []string) error {
	lang, err := langpack.Load(*lexiconDumpFlags.pack, *lexiconDumpFlags.lang)
	if err != nil {
		return err
	}
	return lang.Lexicon.Dump(*lexiconDumpFlags.output)
}

func runLexiconStats(cmd *cobra.Command, args []string) error {
	lang, err := langpack.Load(*lexiconStatsFlags.pack, *lexiconStatsFlags.lang)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records, %d cached chunks, %d specials\n",
		lang.Manifest.Language, lang.Lexicon.Len(), lang.Tokenizer.CacheLen(), lang.Rules.SpecialCount())
	return nil
}
