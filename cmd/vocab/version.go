package main

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/vocab-lang/vocab/langpack"
)

// buildVersion is overwritten at release build time via -ldflags.
var buildVersion = "dev"

var versionFlags = struct {
	pack *string
	lang *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the binary version and, optionally, validate a data pack's format version",
		Example: `  vocab version
  vocab version --pack ./packs --lang en`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
	versionFlags.pack = cmd.Flags().String("pack", "", "language pack root directory to validate (optional)")
	versionFlags.lang = cmd.Flags().String("lang", "", "language subdirectory under --pack (required with --pack)")
	rootCmd.AddCommand(cmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "vocab %s (supports data pack formats %s)\n", buildVersion, langpack.SupportedFormats)

	if *versionFlags.pack == "" {
		return nil
	}
	if *versionFlags.lang == "" {
		return fmt.Errorf("vocab version: --lang is required when --pack is given")
	}

	lang, err := langpack.Load(*versionFlags.pack, *versionFlags.lang)
	if err != nil {
		return err
	}
	constraint := mustConstraint(langpack.SupportedFormats)
	v, err := semver.NewVersion(lang.Manifest.FormatVersion)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: format_version %s satisfies %s: %v\n",
		lang.Manifest.Language, v, langpack.SupportedFormats, constraint.Check(v))
	return nil
}

func mustConstraint(raw string) *semver.Constraints {
	c, err := semver.NewConstraint(raw)
	if err != nil {
		panic(err)
	}
	return c
}
