// Package version holds build metadata injected via ldflags.
package version

import (
	"fmt"
	"runtime"
)

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata on one line.
func String() string {
	return fmt.Sprintf("searchai %s (commit %s, built %s, %s)", Version, Commit, Date, runtime.Version())
}

// UserAgent is sent to the search API by default.
func UserAgent() string {
	return "searchai/" + Version
}
