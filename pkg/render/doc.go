// Package render holds the presentation settings and the input shared by the
// diagram emitters.
//
// Emitters live in subpackages and only read a [Graph]; none of them compute
// positions or routes:
//
//   - [drawio]: diagrams.net XML with per-node geometry
//   - [mermaid]: flowchart markup, optionally wrapped in a Markdown fence
//   - [dot]: Graphviz DOT source and PNG/SVG rasterization
//   - [layoutjson]: computed positions and routed waypoints as JSON
//
// [drawio]: https://pkg.go.dev/github.com/matzehuels/ticketgraph/pkg/render/drawio
// [mermaid]: https://pkg.go.dev/github.com/matzehuels/ticketgraph/pkg/render/mermaid
// [dot]: https://pkg.go.dev/github.com/matzehuels/ticketgraph/pkg/render/dot
// [layoutjson]: https://pkg.go.dev/github.com/matzehuels/ticketgraph/pkg/render/layoutjson
package render
