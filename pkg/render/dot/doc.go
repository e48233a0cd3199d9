// Package dot renders a dependency graph with Graphviz.
//
// [ToDOT] produces DOT source with orthogonal splines, left-to-right ranks
// and boxed nodes labelled with key, summary and status. Flagged issues get
// a thick red outline; edges are labelled with their relationship type.
//
// The source can be saved as-is (it is written next to the image so a run
// can be re-rendered by hand) and rasterized in-process:
//
//	src := dot.ToDOT(g)
//	png, err := dot.RenderPNG(ctx, src)
//	svg, err := dot.RenderSVG(ctx, src)
//
// Rendering uses the WebAssembly build of Graphviz bundled with
// github.com/goccy/go-graphviz, so no system installation is required.
package dot
