package issue

import (
	"cmp"
	"slices"

	"github.com/matzehuels/ticketgraph/pkg/errors"
)

// ExtractEdges derives the deduplicated edge set from the issues' link records.
//
// The result is sorted by (From, To, Type) so repeated runs over the same
// snapshot render identically. A link with neither an inward nor an outward
// reference contributes nothing. A link with an empty relationship name is
// rejected with an [errors.ErrCodeInvalidLink] error naming the issue.
func ExtractEdges(issues []Issue) ([]Edge, error) {
	seen := make(map[Edge]bool)
	var edges []Edge

	add := func(e Edge) {
		if !seen[e] {
			seen[e] = true
			edges = append(edges, e)
		}
	}

	for _, it := range issues {
		for i, ln := range it.Links {
			if ln.Inward == "" && ln.Outward == "" {
				continue
			}
			if ln.Type == "" {
				return nil, errors.New(errors.ErrCodeInvalidLink,
					"issue %s: link %d has no type name", it.Key, i)
			}
			if ln.Outward != "" {
				add(Edge{From: it.Key, To: ln.Outward, Type: ln.Type})
			}
			if ln.Inward != "" {
				add(Edge{From: ln.Inward, To: it.Key, Type: ln.Type})
			}
		}
	}

	slices.SortFunc(edges, compareEdges)
	return edges, nil
}

func compareEdges(a, b Edge) int {
	return cmp.Or(
		cmp.Compare(a.From, b.From),
		cmp.Compare(a.To, b.To),
		cmp.Compare(a.Type, b.Type),
	)
}
