// Package version exposes build metadata for the cinedex binaries.
//
// The variables are overridden at link time, e.g.:
//
//	go build -ldflags "-X github.com/cinedex/cinedex/internal/version.Version=v1.2.0"
package version

// Defaults identify a from-source development build.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
