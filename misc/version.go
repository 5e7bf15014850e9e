// Package misc holds small helpers shared by command line entry points.
package misc

import "runtime/debug"

const appName = "shiva"

// set by the build system via -ldflags when releasing
var (
	version = ""
	gitHash = ""
)

// GetAppName returns the program name used for logging and temp files.
func GetAppName() string {
	return appName
}

// GetVersion returns the release version, falling back to module build
// information for plain go install builds.
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns the vcs revision recorded in build information.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
