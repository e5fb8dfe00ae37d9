// Package buildinfo carries release metadata injected at link time.
package buildinfo

// Set via -ldflags by the release pipeline; empty in dev builds, where
// the version command falls back to module build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
