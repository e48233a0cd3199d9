// Package layoutjson exports the computed layout and routed edges as JSON.
//
// The draw.io document drops waypoints so the viewer can re-route; this
// export keeps them, along with the grid cell of every issue, for tooling
// that wants to draw the graph exactly as computed.
package layoutjson

import (
	"encoding/json"

	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/render"
)

// Option configures rendering via [Render].
type Option func(*renderer)

type renderer struct {
	query       string
	withSkipped bool
}

// WithQuery records the query the snapshot was fetched with.
func WithQuery(jql string) Option { return func(r *renderer) { r.query = jql } }

// WithSkipped includes edges that could not be routed, with the reason.
func WithSkipped() Option { return func(r *renderer) { r.withSkipped = true } }

// Document is the JSON shape written by [Render].
type Document struct {
	Query   string   `json:"query,omitempty"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Columns []string `json:"columns"`
	Nodes   []Node   `json:"nodes"`
	Edges   []Edge   `json:"edges"`
	Skipped []Skip   `json:"skipped,omitempty"`
}

// Node is one placed issue.
type Node struct {
	Key       string  `json:"key"`
	Summary   string  `json:"summary"`
	Status    string  `json:"status"`
	Type      string  `json:"type"`
	Priority  string  `json:"priority,omitempty"`
	Flagged   bool    `json:"flagged,omitempty"`
	InRelease bool    `json:"in_release,omitempty"`
	URL       string  `json:"url"`
	Column    int     `json:"column"`
	Row       int     `json:"row"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Fill      string  `json:"fill"`
}

// Edge is one routed edge.
type Edge struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Type   string       `json:"type"`
	Lane   int          `json:"lane"`
	Color  string       `json:"color,omitempty"`
	Points [][2]float64 `json:"points"`
}

// Skip is an edge left out of the diagram.
type Skip struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// Build assembles the document without encoding it.
func Build(g *render.Graph, opts ...Option) (Document, error) {
	if g.Layout == nil {
		return Document{}, errors.New(errors.ErrCodeRenderFailed, "layoutjson: graph has no layout")
	}
	r := &renderer{}
	for _, opt := range opts {
		opt(r)
	}
	style := g.Style.WithDefaults()

	w, h := g.Layout.Bounds()
	doc := Document{
		Query:   r.query,
		Width:   w,
		Height:  h,
		Columns: append([]string{}, g.Layout.Columns...),
		Nodes:   []Node{},
		Edges:   []Edge{},
	}

	for _, it := range g.Placed() {
		p, _ := g.Layout.Placement(it.Key)
		doc.Nodes = append(doc.Nodes, Node{
			Key:       it.Key,
			Summary:   it.Summary,
			Status:    it.Status,
			Type:      it.Type,
			Priority:  it.Priority,
			Flagged:   it.Flagged,
			InRelease: it.InRelease,
			URL:       g.IssueURL(it.Key),
			Column:    p.Column,
			Row:       p.Row,
			X:         p.Box.X,
			Y:         p.Box.Y,
			Width:     p.Box.W,
			Height:    p.Box.H,
			Fill:      style.FillColor(it.Type),
		})
	}

	for _, e := range g.Routes.Edges {
		color, _ := style.LinkColor(e.Type)
		points := make([][2]float64, len(e.Points))
		for i, pt := range e.Points {
			points[i] = [2]float64{pt.X, pt.Y}
		}
		doc.Edges = append(doc.Edges, Edge{
			From:   e.From,
			To:     e.To,
			Type:   e.Type,
			Lane:   e.Lane,
			Color:  color,
			Points: points,
		})
	}

	if r.withSkipped {
		for _, s := range g.Routes.Skipped {
			doc.Skipped = append(doc.Skipped, Skip{
				From:   s.Edge.From,
				To:     s.Edge.To,
				Type:   s.Edge.Type,
				Reason: errors.UserMessage(s.Err),
			})
		}
	}
	return doc, nil
}

// Render encodes the layout document as indented JSON.
func Render(g *render.Graph, opts ...Option) ([]byte, error) {
	doc, err := Build(g, opts...)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}
