// Package misc keeps program identification helpers in one place.
package misc

import (
	"runtime/debug"
)

const appName = "cssnip"

// GetAppName returns short program name used in logs and generated file names.
func GetAppName() string {
	return appName
}

// GetVersion returns module version recorded in build info, if any.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns vcs revision recorded in build info, if any.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 8 {
					return s.Value[:8]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}
