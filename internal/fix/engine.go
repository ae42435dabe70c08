package fix

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cstlint/internal/analyzer"
	"cstlint/internal/diag"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
	"cstlint/internal/trace"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ErrNotConverged is returned by FixAll when fixes keep producing new fixes.
var ErrNotConverged = errors.New("fixes did not converge")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// AllowUnsafe admits MaybeIncorrect fixes in once and all modes. A fix
	// requested by ID is applied whatever its applicability.
	AllowUnsafe bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Rule          string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	Primary       source.Span
	Edits         []syntax.Edit
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// ApplyResult aggregates applied fixes, skipped ones, and the new tree.
type ApplyResult struct {
	// Tree is the committed tree, or the analyzed tree when nothing applied.
	Tree    *syntax.Tree
	Applied []AppliedFix
	Skipped []SkippedFix
}

// Edits returns the text edits of every applied fix against the analyzed
// tree, sorted by position.
func (r *ApplyResult) Edits() []syntax.Edit {
	var out []syntax.Edit
	for _, a := range r.Applied {
		out = append(out, a.Edits...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Span.Start < out[j].Span.Start })
	return out
}

type candidate struct {
	sig   *analyzer.Signal
	order int
}

func (c candidate) title() string { return c.sig.Action.Message }

// Apply selects fixes from an analysis result according to opts, merges
// their batches and commits them in one step. Fixes whose batches overlap an
// already selected one are skipped.
func Apply(res *analyzer.Result, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Tree:    res.Tree,
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}
	if res.Tree == nil {
		return result, fmt.Errorf("fix: tree is nil")
	}

	candidates, buildSkips := gatherCandidates(res.Signals)
	result.Skipped = append(result.Skipped, buildSkips...)

	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)

	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	tree, applied, skippedDuringApply, err := applyCandidates(res.Tree, selected)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skippedDuringApply...)
	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	result.Tree = tree
	return result, nil
}

// gatherCandidates collects the signals carrying an action. Empty batches
// and repeated IDs are recorded as skips. Each candidate gets a
// monotonically increasing order for stable sorting.
func gatherCandidates(signals []analyzer.Signal) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]bool)

	for i := range signals {
		sig := &signals[i]
		if sig.Action == nil {
			continue
		}
		if !sig.HasAction() {
			skips = append(skips, SkippedFix{
				ID:     sig.ID,
				Title:  sig.Action.Message,
				Reason: "fix has no edits",
			})
			continue
		}
		if seen[sig.ID] {
			skips = append(skips, SkippedFix{
				ID:     sig.ID,
				Title:  sig.Action.Message,
				Reason: "duplicate fix id",
			})
			continue
		}
		seen[sig.ID] = true
		cands = append(cands, candidate{sig: sig, order: len(cands)})
	}
	return cands, skips
}

// sortCandidates orders candidates by span start, span end, insertion
// order, code and ID.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := candidates[i].sig, candidates[j].sig
		ri, rj := si.Range(), sj.Range()
		if ri.Start != rj.Start {
			return ri.Start < rj.Start
		}
		if ri.End != rj.End {
			return ri.End < rj.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if si.Code != sj.Code {
			return si.Code < sj.Code
		}
		return si.ID < sj.ID
	})
}

func unsafeSkip(cand candidate) SkippedFix {
	return SkippedFix{
		ID:     cand.sig.ID,
		Title:  cand.title(),
		Reason: fmt.Sprintf("applicability is %s", cand.sig.Action.Applicability.String()),
	}
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.sig.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if opts.AllowUnsafe || cand.sig.Action.IsSafe() {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, unsafeSkip(cand))
		}
		return selected, skipped
	case ApplyModeOnce:
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if opts.AllowUnsafe || cand.sig.Action.IsSafe() {
				return []candidate{cand}, skipped
			}
			skipped = append(skipped, unsafeSkip(cand))
		}
		return nil, skipped
	default:
		return nil, nil
	}
}

// applyCandidates merges the selected batches in order, skipping those that
// fail to validate or overlap an earlier one, and commits the merged batch.
func applyCandidates(tree *syntax.Tree, selected []candidate) (*syntax.Tree, []AppliedFix, []SkippedFix, error) {
	merged := tree.Begin()
	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	for _, cand := range selected {
		m := cand.sig.Action.Mutation
		if m.Tree() != tree {
			skipped = append(skipped, SkippedFix{ID: cand.sig.ID, Title: cand.title(), Reason: "fix targets another tree"})
			continue
		}
		edits, err := m.Edits()
		if err != nil {
			skipped = append(skipped, SkippedFix{
				ID:     cand.sig.ID,
				Title:  cand.title(),
				Reason: fmt.Sprintf("failed to build fix: %v", err),
			})
			continue
		}
		if merged.Conflicts(m) {
			skipped = append(skipped, SkippedFix{
				ID:     cand.sig.ID,
				Title:  cand.title(),
				Reason: "conflicts with previously applied edits",
			})
			continue
		}
		if err := merged.Merge(m); err != nil {
			skipped = append(skipped, SkippedFix{ID: cand.sig.ID, Title: cand.title(), Reason: err.Error()})
			continue
		}
		applied = append(applied, AppliedFix{
			ID:            cand.sig.ID,
			Title:         cand.title(),
			Rule:          cand.sig.Rule,
			Code:          cand.sig.Code,
			Message:       cand.sig.Diagnostic.Message,
			Applicability: cand.sig.Action.Applicability,
			Primary:       cand.sig.Range(),
			Edits:         edits,
		})
	}

	if len(applied) == 0 {
		return tree, applied, skipped, nil
	}
	next, err := merged.Commit()
	if err != nil {
		return tree, nil, skipped, fmt.Errorf("commit fixes: %w", err)
	}
	return next, applied, skipped, nil
}

// FixAllOptions configure FixAll.
type FixAllOptions struct {
	AllowUnsafe bool
	// MaxIterations bounds the analyze-apply loop; 0 means 16.
	MaxIterations int
}

// FixAllResult is the outcome of FixAll.
type FixAllResult struct {
	Tree       *syntax.Tree
	Applied    []AppliedFix
	Skipped    []SkippedFix
	Iterations int
	// Remaining is the analysis of the final tree.
	Remaining *analyzer.Result
}

// FixAll analyzes and applies every admissible fix repeatedly until the
// tree stops changing. It fails with ErrNotConverged, naming the rules of
// the last round, when MaxIterations rounds still produced fixes.
func FixAll(ctx context.Context, a *analyzer.Analyzer, tree *syntax.Tree, opts FixAllOptions) (*FixAllResult, error) {
	limit := opts.MaxIterations
	if limit <= 0 {
		limit = 16
	}
	out := &FixAllResult{Tree: tree}
	for {
		res, err := a.Run(ctx, out.Tree)
		if err != nil {
			return out, err
		}
		out.Remaining = res
		applied, err := Apply(res, ApplyOptions{Mode: ApplyModeAll, AllowUnsafe: opts.AllowUnsafe})
		out.Skipped = applied.Skipped
		for _, sk := range applied.Skipped {
			trace.Point(ctx, trace.ScopeNode, "fix-skipped:"+sk.ID, sk.Reason)
		}
		trace.Point(ctx, trace.ScopeFile, "fix-round:"+strconv.Itoa(out.Iterations+1),
			strconv.Itoa(len(applied.Applied))+" applied")
		if errors.Is(err, ErrNoFixes) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if out.Iterations == limit {
			return out, fmt.Errorf("%w after %d iterations: %s", ErrNotConverged, limit, rulesOf(applied.Applied))
		}
		out.Tree = applied.Tree
		out.Applied = append(out.Applied, applied.Applied...)
		out.Iterations++
	}
}

// rulesOf lists the rules behind a round of fixes.
func rulesOf(applied []AppliedFix) string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range applied {
		if !seen[a.Rule] {
			seen[a.Rule] = true
			names = append(names, a.Rule)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
