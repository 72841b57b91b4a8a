// Package version carries the build identity stamped into the binary.
package version

import "fmt"

// Overridden through -ldflags at release time, e.g.
// -X lens/internal/version.Commit=$(git rev-parse HEAD).
var (
	Version   = "1.2.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the version, with an abbreviated commit when one was stamped.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return fmt.Sprintf("%s (%s)", Version, Commit[:7])
	}
	return Version
}

// Full returns the multi-line form shown by the version command.
func Full() string {
	return fmt.Sprintf("lens version %s\nCommit: %s\nBuilt: %s", Version, Commit, BuildDate)
}
