package drawio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/issue"
	"github.com/matzehuels/ticketgraph/pkg/render"
)

const (
	nodeStyleBase = "rounded=1;whiteSpace=wrap;html=1;"
	edgeStyleBase = "edgeStyle=orthogonalEdgeStyle;orthogonal=1;rounded=0;jettySize=auto;" +
		"exitPerimeter=1;entryPerimeter=1;avoidObstacle=1;"
)

// Options configures the document envelope.
type Options struct {
	// DiagramID is the page id. A random UUID is used when empty.
	DiagramID string
	// PageName defaults to "Page-1".
	PageName string
}

type mxFile struct {
	XMLName xml.Name `xml:"mxfile"`
	Host    string   `xml:"host,attr"`
	Diagram diagram  `xml:"diagram"`
}

type diagram struct {
	ID    string       `xml:"id,attr"`
	Name  string       `xml:"name,attr"`
	Model mxGraphModel `xml:"mxGraphModel"`
}

type mxGraphModel struct {
	DX         string   `xml:"dx,attr"`
	DY         string   `xml:"dy,attr"`
	Grid       string   `xml:"grid,attr"`
	GridSize   string   `xml:"gridSize,attr"`
	Guides     string   `xml:"guides,attr"`
	Tooltips   string   `xml:"tooltips,attr"`
	Connect    string   `xml:"connect,attr"`
	Arrows     string   `xml:"arrows,attr"`
	Fold       string   `xml:"fold,attr"`
	Page       string   `xml:"page,attr"`
	PageScale  string   `xml:"pageScale,attr"`
	PageWidth  string   `xml:"pageWidth,attr"`
	PageHeight string   `xml:"pageHeight,attr"`
	Math       string   `xml:"math,attr"`
	Shadow     string   `xml:"shadow,attr"`
	Cells      []mxCell `xml:"root>mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Value    *string     `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Source   string      `xml:"source,attr,omitempty"`
	Target   string      `xml:"target,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxGeometry struct {
	X        string `xml:"x,attr,omitempty"`
	Y        string `xml:"y,attr,omitempty"`
	Width    string `xml:"width,attr,omitempty"`
	Height   string `xml:"height,attr,omitempty"`
	Relative string `xml:"relative,attr,omitempty"`
	As       string `xml:"as,attr"`
}

// Render serializes g as a draw.io document with an XML declaration.
func Render(g *render.Graph, opts Options) ([]byte, error) {
	if g.Layout == nil {
		return nil, errors.New(errors.ErrCodeRenderFailed, "drawio: graph has no layout")
	}
	if opts.DiagramID == "" {
		opts.DiagramID = uuid.NewString()
	}
	if opts.PageName == "" {
		opts.PageName = "Page-1"
	}
	style := g.Style.WithDefaults()

	cells := []mxCell{{ID: "0"}, {ID: "1", Parent: "0"}}
	ids := make(map[string]string)
	next := 2

	for _, it := range g.Placed() {
		p, _ := g.Layout.Placement(it.Key)
		id := strconv.Itoa(next)
		next++
		ids[it.Key] = id

		label := nodeLabel(g, it)
		cells = append(cells, mxCell{
			ID:     id,
			Value:  &label,
			Style:  NodeStyle(style, it, g.IssueURL(it.Key)),
			Vertex: "1",
			Parent: "1",
			Geometry: &mxGeometry{
				X:      num(p.Box.X),
				Y:      num(p.Box.Y),
				Width:  num(p.Box.W),
				Height: num(p.Box.H),
				As:     "geometry",
			},
		})
	}

	for _, e := range g.Drawable() {
		src, okSrc := ids[e.From]
		dst, okDst := ids[e.To]
		if !okSrc || !okDst {
			continue
		}
		label := e.Type + " Relationship"
		cells = append(cells, mxCell{
			ID:       strconv.Itoa(next),
			Value:    &label,
			Style:    EdgeStyle(style, e.Type),
			Edge:     "1",
			Parent:   "1",
			Source:   src,
			Target:   dst,
			Geometry: &mxGeometry{Relative: "1", As: "geometry"},
		})
		next++
	}

	doc := mxFile{
		Host: "app.diagrams.net",
		Diagram: diagram{
			ID:   opts.DiagramID,
			Name: opts.PageName,
			Model: mxGraphModel{
				DX: "1162", DY: "666",
				Grid: "1", GridSize: "10",
				Guides: "1", Tooltips: "1", Connect: "1", Arrows: "1", Fold: "1",
				Page: "1", PageScale: "1", PageWidth: "827", PageHeight: "1169",
				Math: "0", Shadow: "0",
				Cells: cells,
			},
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "drawio: encode")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// NodeStyle returns the vertex style string for an issue.
func NodeStyle(s render.Style, it issue.Issue, url string) string {
	fill := s.FillColor(it.Type)
	shape := "rectangle"
	if it.InRelease {
		shape = "ellipse"
	}
	var b strings.Builder
	b.WriteString(nodeStyleBase)
	fmt.Fprintf(&b, "fillColor=%s;labelBackgroundColor=%s;link=%s;shape=%s;portConstraint=eastwest;",
		fill, fill, url, shape)
	if it.Flagged {
		fmt.Fprintf(&b, "strokeColor=%s;strokeWidth=%d;", s.FlaggedColor, s.FlaggedWidth)
	}
	return b.String()
}

// EdgeStyle returns the connector style string for a relationship type.
func EdgeStyle(s render.Style, linkType string) string {
	if c, ok := s.LinkColor(linkType); ok {
		return edgeStyleBase + "strokeColor=" + c + ";"
	}
	return edgeStyleBase
}

func nodeLabel(g *render.Graph, it issue.Issue) string {
	summary := html.EscapeString(strings.ReplaceAll(it.Summary, "\n", " "))
	return fmt.Sprintf(`<div><strong><a href="%s" target="_blank">%s</a></strong></div><div>%s</div><div>Status: %s</div>`,
		html.EscapeString(g.IssueURL(it.Key)), html.EscapeString(it.Key), summary, html.EscapeString(it.Status))
}

// num formats a pixel coordinate, rounded to hundredths to hide float noise.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
