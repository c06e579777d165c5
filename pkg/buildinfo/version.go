// Package buildinfo reports which orbitgen build is running.
//
// Release builds stamp the variables with -ldflags "-X" on
// github.com/matzehuels/orbitgen/pkg/buildinfo.{Version,Commit,Date}. A binary
// built with "go install github.com/matzehuels/orbitgen/cmd/orbitgen@v0.2.0"
// carries no stamp, so [Resolved] falls back to the module version the
// toolchain records.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Stamped at link time; see the package documentation.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Resolved returns Version, or the main module version from the embedded
// build information when Version was not stamped.
func Resolved() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// String describes the build on one line, e.g.
// "orbitgen v0.2.0 (commit abc123, built 2026-01-02, go1.24.0)".
func String() string {
	return fmt.Sprintf("orbitgen %s (commit %s, built %s, %s)", Resolved(), Commit, Date, runtime.Version())
}

// Template is the cobra version template printed by --version.
func Template() string {
	return "{{.Name}} " + String()[len("orbitgen "):] + "\n"
}
