package rules

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"cstlint/internal/analyzer"
)

// All returns every known rule in registration order.
func All() []analyzer.Runner {
	return []analyzer.Runner{
		analyzer.Wrap[selfClosingState](UseSelfClosingElements{}),
		analyzer.Wrap[typeofState](UseValidTypeof{}),
	}
}

// Lookup finds a rule by name or by full category.
func Lookup(name string) (analyzer.Runner, bool) {
	for _, r := range All() {
		m := r.Metadata()
		if m.Name == name || m.Category() == name {
			return r, true
		}
	}
	return nil, false
}

// Names returns the sorted rule names.
func Names() []string {
	all := All()
	names := make([]string, 0, len(all))
	for _, r := range all {
		names = append(names, r.Metadata().Name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the rule name closest to an unknown one, or "" when none
// is close enough to be a typo.
func Suggest(name string) string {
	best, bestDist := "", len(name)/2+1
	for _, n := range Names() {
		if d := levenshtein.ComputeDistance(name, n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}
