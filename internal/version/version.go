// Package version holds build-time metadata injected via ldflags.
package version

import (
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/janekbaraniewski/facetpanel/internal/version.Version=...".
var (
	Version    = "dev"
	CommitHash = ""
	BuildDate  = ""
)

// String returns "facetpanel <version>" followed by whatever commit and
// build date are known. A dev build falls back to the VCS revision the Go
// toolchain stamped into the binary.
func String() string {
	commit := CommitHash
	if commit == "" {
		commit = vcsRevision()
	}
	return format(Version, commit, BuildDate)
}

func format(ver, commit, date string) string {
	var b strings.Builder
	b.WriteString("facetpanel ")
	b.WriteString(ver)
	if commit != "" {
		if len(commit) > 12 {
			commit = commit[:12]
		}
		b.WriteString(" (" + commit + ")")
	}
	if date != "" {
		b.WriteString(" built " + date)
	}
	return b.String()
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
