package issue

import (
	"testing"

	"github.com/matzehuels/ticketgraph/pkg/errors"
)

func TestExtractEdgesDirection(t *testing.T) {
	issues := []Issue{
		{Key: "A-1", Links: []Link{{Type: "Blocks", Outward: "A-2"}}},
		{Key: "A-3", Links: []Link{{Type: "Relates", Inward: "A-4"}}},
	}

	edges, err := ExtractEdges(issues)
	if err != nil {
		t.Fatalf("ExtractEdges() error: %v", err)
	}

	want := []Edge{
		{From: "A-1", To: "A-2", Type: "Blocks"},
		{From: "A-4", To: "A-3", Type: "Relates"},
	}
	if len(edges) != len(want) {
		t.Fatalf("ExtractEdges() = %v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge[%d] = %v, want %v", i, edges[i], want[i])
		}
	}
}

func TestExtractEdgesDeduplicates(t *testing.T) {
	// The same relationship is reported on both endpoints.
	issues := []Issue{
		{Key: "A", Links: []Link{{Type: "Blocks", Outward: "B"}}},
		{Key: "B", Links: []Link{{Type: "Blocks", Inward: "A"}}},
	}

	edges, err := ExtractEdges(issues)
	if err != nil {
		t.Fatalf("ExtractEdges() error: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("ExtractEdges() returned %d edges, want 1: %v", len(edges), edges)
	}
	if edges[0] != (Edge{From: "A", To: "B", Type: "Blocks"}) {
		t.Errorf("edge = %v", edges[0])
	}
}

func TestExtractEdgesKeepsDistinctTypes(t *testing.T) {
	issues := []Issue{
		{Key: "A", Links: []Link{
			{Type: "Blocks", Outward: "B"},
			{Type: "Relates", Outward: "B"},
			{Type: "Blocks", Outward: "B"},
		}},
	}

	edges, err := ExtractEdges(issues)
	if err != nil {
		t.Fatalf("ExtractEdges() error: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("ExtractEdges() returned %d edges, want 2: %v", len(edges), edges)
	}
}

func TestExtractEdgesNoDuplicateTriples(t *testing.T) {
	issues := []Issue{
		{Key: "A", Links: []Link{{Type: "Blocks", Outward: "B"}, {Type: "Blocks", Inward: "C"}}},
		{Key: "B", Links: []Link{{Type: "Blocks", Inward: "A"}, {Type: "Depends on", Outward: "C"}}},
		{Key: "C", Links: []Link{{Type: "Blocks", Outward: "A"}, {Type: "Depends on", Inward: "B"}}},
	}

	edges, err := ExtractEdges(issues)
	if err != nil {
		t.Fatalf("ExtractEdges() error: %v", err)
	}

	seen := make(map[Edge]bool)
	for _, e := range edges {
		if seen[e] {
			t.Errorf("duplicate edge %v", e)
		}
		seen[e] = true
	}
	if len(edges) != 3 {
		t.Errorf("ExtractEdges() returned %d edges, want 3: %v", len(edges), edges)
	}
}

func TestExtractEdgesSkipsEmptyLink(t *testing.T) {
	issues := []Issue{
		{Key: "A", Links: []Link{{Type: "Blocks"}, {}}},
	}

	edges, err := ExtractEdges(issues)
	if err != nil {
		t.Fatalf("ExtractEdges() error: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("ExtractEdges() = %v, want none", edges)
	}
}

func TestExtractEdgesMissingTypeName(t *testing.T) {
	issues := []Issue{
		{Key: "A-7", Links: []Link{{Outward: "B"}}},
	}

	_, err := ExtractEdges(issues)
	if err == nil {
		t.Fatal("ExtractEdges() should fail on a link without a type name")
	}
	if !errors.Is(err, errors.ErrCodeInvalidLink) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLink)
	}
}

func TestExtractEdgesSorted(t *testing.T) {
	issues := []Issue{
		{Key: "Z", Links: []Link{{Type: "Blocks", Outward: "A"}}},
		{Key: "B", Links: []Link{{Type: "Relates", Outward: "A"}, {Type: "Blocks", Outward: "A"}}},
	}

	edges, err := ExtractEdges(issues)
	if err != nil {
		t.Fatalf("ExtractEdges() error: %v", err)
	}
	for i := 1; i < len(edges); i++ {
		if compareEdges(edges[i-1], edges[i]) >= 0 {
			t.Errorf("edges not sorted at %d: %v, %v", i, edges[i-1], edges[i])
		}
	}
}

func TestCountFlaggedAndKeys(t *testing.T) {
	issues := []Issue{{Key: "A", Flagged: true}, {Key: "B"}, {Key: "C", Flagged: true}}

	if got := CountFlagged(issues); got != 2 {
		t.Errorf("CountFlagged() = %d, want 2", got)
	}
	keys := Keys(issues)
	if len(keys) != 3 || !keys["B"] {
		t.Errorf("Keys() = %v", keys)
	}
}
