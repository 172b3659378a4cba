// Package version holds build metadata of the powerassert CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with major/minor/patch in distinct colours.
// Pre-release and build suffixes stay uncoloured.
func Colored() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return "dev"
	}
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.SplitN(core, ".", len(partColors))
	for i, p := range parts {
		parts[i] = partColors[i].Sprint(p)
	}
	return strings.Join(parts, ".") + suffix
}

// Short returns the version with the abbreviated commit, if known.
func Short() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	commit := strings.TrimSpace(GitCommit)
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit == "" {
		return v
	}
	return v + " (" + commit + ")"
}
