package dot

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/ticketgraph/pkg/issue"
	"github.com/matzehuels/ticketgraph/pkg/layout"
	"github.com/matzehuels/ticketgraph/pkg/render"
)

func testGraph() *render.Graph {
	issues := []issue.Issue{
		{Key: "PROJ-1", Summary: `Fix "quoted" bug`, Status: "Backlog"},
		{Key: "PROJ-2", Summary: "multi\nline", Status: "DONE", Flagged: true},
	}
	return &render.Graph{
		Issues: issues,
		Edges:  []issue.Edge{{From: "PROJ-1", To: "PROJ-2", Type: "Blocks"}},
		Layout: layout.Build(issues, layout.DefaultConfig()),
	}
}

func TestToDOT(t *testing.T) {
	src := ToDOT(testGraph())

	for _, want := range []string{
		"digraph {",
		"rankdir=LR;",
		"splines=ortho;",
		"overlap=false;",
		`sep="+10";`,
		`esep="+5";`,
		"nodesep=0.6;",
		"ranksep=1.0;",
		`"PROJ-1" [label="PROJ-1\nFix \"quoted\" bug\nStatus: Backlog", shape=box];`,
		`"PROJ-2" [label="PROJ-2\nmulti line\nStatus: DONE", shape=box, color=red, penwidth=3];`,
		`"PROJ-1" -> "PROJ-2" [label="Blocks"];`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("DOT source missing %q\n%s", want, src)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"crlf\r\n", `"crlf\n"`},
		{"Berättelse", `"Berättelse"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(context.Background(), ToDOT(testGraph()))
	if err != nil {
		t.Fatalf("RenderPNG error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testGraph()))
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Error("viewBox should be normalized to the origin")
	}
}

func TestRenderInvalidDOT(t *testing.T) {
	if _, err := RenderPNG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderPNG should fail on malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() =\n%s\nwant\n%s", got, want)
	}
	if plain := []byte("<svg></svg>"); string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("SVG without viewBox should be unchanged")
	}
}
