// Package version provides build information for barscan.
package version

import "runtime/debug"

// Version is overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash, overridden at build time using ldflags.
var Commit = "unknown"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version including the commit when known. Without an
// ldflags commit the VCS revision stamped by the Go toolchain is used.
func String() string {
	commit := Commit
	if commit == "unknown" {
		commit = vcsRevision()
	}
	if commit == "" || commit == "unknown" {
		return Version
	}
	return Version + "+" + commit
}

func vcsRevision() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
