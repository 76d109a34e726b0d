package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// These variables are set at build time using -ldflags.
	Version   = "dev"
	GitCommit = ""
)

// Short returns a short version string, including the VCS revision when
// build info carries one.
func Short() string {
	commit := GitCommit
	if commit == "" {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range buildInfo.Settings {
				if setting.Key == "vcs.revision" {
					commit = setting.Value
					break
				}
			}
		}
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" {
		return fmt.Sprintf("%s-%s", Version, commit)
	}
	return Version
}
