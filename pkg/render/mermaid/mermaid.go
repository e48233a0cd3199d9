// Package mermaid writes a dependency graph as Mermaid flowchart markup.
package mermaid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/ticketgraph/pkg/render"
)

// Options configures the markup.
type Options struct {
	// Fenced wraps the flowchart in a ```mermaid Markdown code fence.
	Fenced bool
}

// Render returns the flowchart for g: one node per issue with a
// key/summary/status label, a flagged class assignment for flagged issues,
// and one labelled arrow per edge.
func Render(g *render.Graph, opts Options) []byte {
	style := g.Style.WithDefaults()

	var b strings.Builder
	if opts.Fenced {
		b.WriteString("```mermaid\n")
	}
	b.WriteString("flowchart LR\n")
	fmt.Fprintf(&b, "classDef flagged stroke:%s,stroke-width:%dpx;\n", style.FlaggedColor, style.FlaggedWidth)

	for _, it := range g.Placed() {
		fmt.Fprintf(&b, "    %s[\"%s\\n%s\\nStatus: %s\"]\n", it.Key, it.Key, escape(it.Summary), escape(it.Status))
		if it.Flagged {
			fmt.Fprintf(&b, "    class %s flagged;\n", it.Key)
		}
	}

	for _, e := range g.Drawable() {
		fmt.Fprintf(&b, "    %s -->|%s| %s\n", e.From, EdgeLabel(e.Type), e.To)
	}

	if opts.Fenced {
		b.WriteString("```\n")
	}
	return []byte(b.String())
}

// EdgeLabel turns a relationship name into an arrow label.
// Spaces become underscores; pipes would end the label early and are dropped.
func EdgeLabel(linkType string) string {
	s := strings.ReplaceAll(linkType, " ", "_")
	return strings.ReplaceAll(s, "|", "")
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, `"`, `\"`)
}
