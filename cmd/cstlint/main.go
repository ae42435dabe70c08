package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cstlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cstlint",
	Short: "Lint and fix JavaScript and JSX sources",
	Long: `cstlint parses sources into a lossless syntax tree, runs lint rules over it
and applies their fixes without disturbing comments or formatting`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

// exitError carries a non-zero exit status for runs that completed but
// found problems. It prints nothing.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	rootCmd.Version = version.Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	finishProfiling()
	finishTracing(err)
	os.Exit(exitCode(err))
}

func init() {
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from config)")
	flags.String("config", "", "path to cstlint.toml (default: discovered from the target)")
	registerTraceFlags(flags)
	registerProfileFlags(flags)
}

// exitCode reports err on stderr unless it only carries a status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}

func setupRun(cmd *cobra.Command, _ []string) error {
	if err := setupTracing(cmd); err != nil {
		return err
	}
	return setupProfiling(cmd)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
