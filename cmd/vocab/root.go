package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Tokenize text using a whitespace- and affix-rule-driven lexicon",
	Long: `vocab provides two features:
- Tokenizes a text stream into a sequence of lexical tokens.
- Inspects and manages the on-disk lexicon a tokenizer populates.
  This feature is primarily aimed at debugging language packs.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
