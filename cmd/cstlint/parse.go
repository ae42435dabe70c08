package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cstlint/internal/diagfmt"
	"cstlint/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the concrete syntax tree of a source file",
	Long: `Parse prints every node of the lossless syntax tree with its byte range, and
every token with its text. Missing slots of malformed code are shown as (missing ...).`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if err := diagfmt.FormatTree(cmd.OutOrStdout(), result.Tree); err != nil {
		return err
	}
	if result.Bag.Len() == 0 {
		return nil
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: color, Context: 1})
	if result.Bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
