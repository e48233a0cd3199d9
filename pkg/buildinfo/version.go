// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/ticketgraph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/ticketgraph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/ticketgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/ticketgraph
package buildinfo

import "fmt"

// Set via ldflags; the defaults identify a local build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the cobra version template, e.g.
//
//	ticketgraph version v0.3.0 (commit 1a2b3c4, built 2024-05-01T10:00:00Z)
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s (commit %s, built %s)\n", Version, Commit, Date)
}
