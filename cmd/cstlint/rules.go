package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cstlint/internal/analyzer"
	"cstlint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [name]",
	Short: "List the available rules or describe one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleJSON struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Version     string   `json:"version"`
	Code        string   `json:"code"`
	Severity    string   `json:"severity"`
	Recommended bool     `json:"recommended"`
	Fix         string   `json:"fix"`
	Sources     []string `json:"sources,omitempty"`
	Docs        string   `json:"docs,omitempty"`
	Valid       []string `json:"valid,omitempty"`
	Invalid     []string `json:"invalid,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	var metas []analyzer.RuleMetadata
	if len(args) == 1 {
		r, ok := rules.Lookup(args[0])
		if !ok {
			if s := rules.Suggest(args[0]); s != "" {
				return fmt.Errorf("unknown rule %q, did you mean %q?", args[0], s)
			}
			return fmt.Errorf("unknown rule %q", args[0])
		}
		metas = append(metas, r.Metadata())
	} else {
		for _, r := range rules.All() {
			metas = append(metas, r.Metadata())
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		items := make([]ruleJSON, len(metas))
		for i := range metas {
			items[i] = toRuleJSON(&metas[i], len(args) == 1)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "pretty":
		if len(args) == 1 {
			describeRule(out, &metas[0])
			return nil
		}
		listRules(out, metas)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func toRuleJSON(m *analyzer.RuleMetadata, detailed bool) ruleJSON {
	rj := ruleJSON{
		Name:        m.Name,
		Category:    m.Category(),
		Version:     m.Version,
		Code:        m.Code.ID(),
		Severity:    strings.ToLower(m.Severity.String()),
		Recommended: m.Recommended,
		Fix:         m.FixKind.String(),
	}
	for _, s := range m.Sources {
		rj.Sources = append(rj.Sources, s.String())
	}
	if detailed {
		rj.Docs = m.Docs
		rj.Valid = m.Valid
		rj.Invalid = m.Invalid
	}
	return rj
}

func listRules(w io.Writer, metas []analyzer.RuleMetadata) {
	width := 0
	for i := range metas {
		width = max(width, len(metas[i].Category()))
	}
	for i := range metas {
		m := &metas[i]
		rec := ""
		if m.Recommended {
			rec = " recommended"
		}
		fmt.Fprintf(w, "%-*s  %-7s  %-7s  fix=%s%s\n", width, m.Category(), m.Code.ID(), strings.ToLower(m.Severity.String()), m.FixKind, rec)
	}
}

func describeRule(w io.Writer, m *analyzer.RuleMetadata) {
	fmt.Fprintf(w, "%s (%s, since %s)\n", m.Category(), m.Code.ID(), m.Version)
	fmt.Fprintf(w, "severity: %s, fix: %s, recommended: %t\n", strings.ToLower(m.Severity.String()), m.FixKind, m.Recommended)
	for _, s := range m.Sources {
		fmt.Fprintf(w, "same as: %s <%s>\n", s, s.URL())
	}
	if m.Docs != "" {
		fmt.Fprintf(w, "\n%s\n", m.Docs)
	}
	if len(m.Invalid) > 0 {
		fmt.Fprintln(w, "\ninvalid:")
		for _, ex := range m.Invalid {
			fmt.Fprintf(w, "  %s\n", ex)
		}
	}
	if len(m.Valid) > 0 {
		fmt.Fprintln(w, "\nvalid:")
		for _, ex := range m.Valid {
			fmt.Fprintf(w, "  %s\n", ex)
		}
	}
}
