// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/McKayRansom/auto-factorio/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/McKayRansom/auto-factorio/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/McKayRansom/auto-factorio/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/beltroute
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information as reported by the HTTP API.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template returns the --version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
