// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X camoufler/pkg/buildinfo.Version=v1.0.0 \
//	    -X camoufler/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X camoufler/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("camoufler %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
