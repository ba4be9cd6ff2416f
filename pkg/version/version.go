// Package version carries build metadata for the themefix binaries.
package version

import (
	"runtime/debug"
)

const unknown = "<unknown>"

// Build metadata, set with -ldflags "-X ...".
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// InitBinaryVersion fills metadata not set at link time from the module
// build info embedded by the go tool.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == unknown {
				Commit = setting.Value
			}
		case "vcs.time":
			if Date == unknown {
				Date = setting.Value
			}
		}
	}
}

// String renders the metadata line printed by the version subcommands.
func String(binary string) string {
	return binary + " " + Version + " (commit: " + Commit + ", built: " + Date + ")"
}
