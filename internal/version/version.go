package version

import (
	"fmt"
	"runtime"
)

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/redhat-appstudio/statuspage-mirror/internal/version.BuildVersion=v1.2.3 \
//	  -X github.com/redhat-appstudio/statuspage-mirror/internal/version.BuildCommit=$(git rev-parse --short HEAD)"
var (
	BuildVersion = "v0.1.0"
	BuildTime    = "unknown"
	BuildCommit  = "unknown"
)

// Info is the build metadata served by the root endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
	Go      string `json:"go"`
}

// GetVersion returns the version string as set at build time.
func GetVersion() string {
	return BuildVersion
}

// GetInfo returns the build metadata.
func GetInfo() Info {
	return Info{
		Version: GetShortVersion(),
		Commit:  BuildCommit,
		Built:   BuildTime,
		Go:      runtime.Version(),
	}
}

// GetBuildInfo returns a one-line description of the build, for startup logs.
func GetBuildInfo() string {
	return fmt.Sprintf("%s (built: %s, commit: %s, go: %s)",
		BuildVersion, BuildTime, BuildCommit, runtime.Version())
}

// GetShortVersion returns the version without the "v" prefix.
func GetShortVersion() string {
	if len(BuildVersion) > 0 && BuildVersion[0] == 'v' {
		return BuildVersion[1:]
	}
	return BuildVersion
}
