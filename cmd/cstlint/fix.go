package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cstlint/internal/driver"
	"cstlint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply rule fixes to a file or directory",
	Long: `Fix runs the rules and applies their fixes in place. By default the first safe
fix of each file is applied; --all repeats analysis until no safe fix remains.
Fixes that may change behaviour are only applied with --unsafe or --id.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply fixes until none remain")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with this identifier (single file only)")
	fixCmd.Flags().Bool("unsafe", false, "also apply fixes that may change behaviour")
	fixCmd.Flags().Bool("dry-run", false, "print the fixed text instead of writing files")
	fixCmd.Flags().Int("max-iterations", 0, "round limit for --all (0 = default)")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
}

// fixMode validates the mutually exclusive mode flags.
func fixMode(all, once bool, id string) (fix.ApplyMode, error) {
	if id != "" && (all || once) {
		return 0, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if all && once {
		return 0, fmt.Errorf("--all and --once are mutually exclusive")
	}
	switch {
	case id != "":
		return fix.ApplyModeID, nil
	case all:
		return fix.ApplyModeAll, nil
	default:
		return fix.ApplyModeOnce, nil
	}
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	mode, err := fixMode(applyAll, applyOnce, targetID)
	if err != nil {
		return err
	}
	allowUnsafe, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	maxIterations, err := cmd.Flags().GetInt("max-iterations")
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// fix IDs are only unique within one file
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	base, err := driverOptions(cmd, target)
	if err != nil {
		return err
	}
	opts := driver.FixOptions{
		Options:       base,
		Mode:          mode,
		TargetID:      targetID,
		AllowUnsafe:   allowUnsafe,
		MaxIterations: maxIterations,
		DryRun:        dryRun,
	}

	var results []driver.FixResult
	if info.IsDir() {
		results, err = driver.FixDir(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
	} else {
		res, ferr := driver.FixFile(cmd.Context(), target, opts)
		if res == nil {
			return fmt.Errorf("fix: %w", ferr)
		}
		res.Err = ferr
		results = []driver.FixResult{*res}
	}

	out := cmd.OutOrStdout()
	failed := reportFixResults(out, cmd.ErrOrStderr(), results, dryRun, quiet(cmd))
	printTimings(cmd.ErrOrStderr(), base.Timer)
	if failed > 0 {
		return exitError{code: 1}
	}
	return nil
}

// reportFixResults prints what happened to every file and returns the
// number of files that failed.
func reportFixResults(out, errOut io.Writer, results []driver.FixResult, dryRun, quiet bool) int {
	failed, applied, changed := 0, 0, 0
	for i := range results {
		r := &results[i]
		applied += len(r.Applied)
		if r.Changed() {
			changed++
		}

		if r.Err != nil {
			if errors.Is(r.Err, fix.ErrNoFixes) {
				fmt.Fprintf(errOut, "%s: no fix with that id\n", r.Path)
			} else {
				fmt.Fprintf(errOut, "%s: %v\n", r.Path, r.Err)
			}
			failed++
		}
		if dryRun && r.Changed() {
			fmt.Fprintf(out, "== %s ==\n%s", r.Path, r.After)
			continue
		}
		if quiet {
			continue
		}
		for _, a := range r.Applied {
			fmt.Fprintf(out, "%s: applied %s [%s] (%s)\n", r.Path, a.Title, a.ID, a.Applicability)
		}
		for _, s := range r.Skipped {
			id := s.ID
			if id == "" {
				id = "(unnamed)"
			}
			fmt.Fprintf(out, "%s: skipped %s [%s]: %s\n", r.Path, s.Title, id, s.Reason)
		}
	}

	if !quiet {
		verb := "updated"
		if dryRun {
			verb = "would update"
		}
		switch {
		case applied == 0 && failed == 0:
			fmt.Fprintln(errOut, "No fixes applied.")
		case applied > 0:
			fmt.Fprintf(errOut, "Applied %s, %s %s.\n", plural(applied, "fix"), verb, plural(changed, "file"))
		}
	}
	return failed
}
