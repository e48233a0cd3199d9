package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/issue"
	"github.com/matzehuels/ticketgraph/pkg/render"
)

// ToDOT converts g to Graphviz DOT source.
func ToDOT(g *render.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("// Issue dependencies\n")
	buf.WriteString("digraph {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  fontsize=10;\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  sep=\"+10\";\n")
	buf.WriteString("  esep=\"+5\";\n")
	buf.WriteString("  nodesep=0.6;\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("\n")

	for _, it := range g.Placed() {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(it.Key), strings.Join(nodeAttrs(it), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Drawable() {
		fmt.Fprintf(&buf, "  %s -> %s [label=%s];\n", quote(e.From), quote(e.To), quote(e.Type))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(it issue.Issue) []string {
	summary := strings.ReplaceAll(it.Summary, "\n", " ")
	label := it.Key + "\n" + summary + "\nStatus: " + it.Status
	attrs := []string{"label=" + quote(label), "shape=box"}
	if it.Flagged {
		attrs = append(attrs, "color=red", "penwidth=3")
	}
	return attrs
}

// quote returns s as a DOT double-quoted string. Newlines become the \n
// escape, which Graphviz renders as a centered line break.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// RenderPNG rasterizes DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

// RenderSVG renders DOT source to SVG with a normalized viewBox.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderFormat(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the image scales from its
// origin; Graphviz emits a translated viewBox and point-based sizes.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
