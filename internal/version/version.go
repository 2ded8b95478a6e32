// Package version holds blogdex build metadata, injected at build time:
//
//	go build -ldflags "-X github.com/kailas-cloud/blogdex/internal/version.Version=v1.4.0 \
//	  -X github.com/kailas-cloud/blogdex/internal/version.Commit=$(git rev-parse --short HEAD)" ./cmd/blogdex
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build as "blogdex v1.4.0 (abc1234, 2026-01-02)".
func String() string {
	return fmt.Sprintf("blogdex %s (%s, %s)", Version, Commit, Date)
}
