package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the cstlint CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with its major, minor and patch parts in distinct
// colors. A pre-release or build suffix is left plain.
func Colored(v string) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	for _, c := range []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor} {
		c.EnableColor()
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + suffix
}

// Describe returns the multi-line text printed by "cstlint version".
func Describe(colored bool) string {
	v := Version
	if colored {
		v = Colored(v)
	}
	var b strings.Builder
	b.WriteString("cstlint " + v + "\n")
	if GitCommit != "" {
		b.WriteString("commit: " + GitCommit + "\n")
	}
	if GitMessage != "" {
		b.WriteString("message: " + GitMessage + "\n")
	}
	if BuildDate != "" {
		b.WriteString("built: " + BuildDate + "\n")
	}
	return b.String()
}
