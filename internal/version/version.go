// Package version holds build metadata injected via ldflags.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent is sent with every backend request.
func UserAgent() string {
	return "searchdemo/" + Version
}

// String formats the metadata for `searchdemo version`.
func String() string {
	return fmt.Sprintf("searchdemo %s (commit %s, built %s)", Version, Commit, Date)
}
