package render

import (
	"github.com/matzehuels/ticketgraph/pkg/issue"
	"github.com/matzehuels/ticketgraph/pkg/layout"
	"github.com/matzehuels/ticketgraph/pkg/route"
)

// Graph is everything an emitter needs: the fetched issues in fetch order,
// the extracted edges, and the computed layout and routes.
type Graph struct {
	Issues []issue.Issue
	Edges  []issue.Edge
	Layout *layout.Layout
	Routes route.Result

	// BaseURL is the tracker site, used to build browse links.
	BaseURL string
	Style   Style
}

// IssueURL returns the browse link of key.
func (g *Graph) IssueURL(key string) string {
	return g.BaseURL + "/browse/" + key
}

// Placed returns the issues that received a placement, in fetch order,
// skipping repeated keys.
func (g *Graph) Placed() []issue.Issue {
	seen := make(map[string]bool, len(g.Issues))
	out := make([]issue.Issue, 0, len(g.Issues))
	for _, it := range g.Issues {
		if seen[it.Key] {
			continue
		}
		if g.Layout != nil {
			if _, ok := g.Layout.Placement(it.Key); !ok {
				continue
			}
		}
		seen[it.Key] = true
		out = append(out, it)
	}
	return out
}

// Drawable returns the edges whose endpoints are both placed. When routes
// were computed they are authoritative; otherwise edges are filtered against
// the issue set.
func (g *Graph) Drawable() []issue.Edge {
	if len(g.Routes.Edges) > 0 || len(g.Routes.Skipped) > 0 {
		out := make([]issue.Edge, len(g.Routes.Edges))
		for i, r := range g.Routes.Edges {
			out[i] = r.Edge
		}
		return out
	}
	keys := issue.Keys(g.Issues)
	out := make([]issue.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if keys[e.From] && keys[e.To] {
			out = append(out, e)
		}
	}
	return out
}
