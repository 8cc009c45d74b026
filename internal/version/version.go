package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information for the openqasm CLI.
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

// Colored renders Version with each numeric component in its own color.
// Anything after the patch number (e.g. "-dev") is left plain.
func Colored(enabled bool) string {
	parts := strings.SplitN(Version, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	patch, rest := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, rest = patch[:i], patch[i:]
	}

	colors := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	for _, c := range colors {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return colors[0].Sprint(parts[0]) + "." + colors[1].Sprint(parts[1]) + "." + colors[2].Sprint(patch) + rest
}

// Details lists the optional build fields that are set, as "key: value" lines.
func Details() []string {
	var out []string
	if GitCommit != "" {
		out = append(out, "commit: "+GitCommit)
	}
	if GitMessage != "" {
		out = append(out, "message: "+GitMessage)
	}
	if BuildDate != "" {
		out = append(out, "built: "+BuildDate)
	}
	return out
}
