package pipeline

import (
	"context"

	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/render"
	"github.com/matzehuels/ticketgraph/pkg/render/dot"
	"github.com/matzehuels/ticketgraph/pkg/render/drawio"
	"github.com/matzehuels/ticketgraph/pkg/render/layoutjson"
	"github.com/matzehuels/ticketgraph/pkg/render/mermaid"
)

// Render produces every requested format. A failing format is logged and
// returned in the failure list; the others are unaffected.
//
// Requesting png or svg also yields the dot artifact, since the DOT source
// is kept next to any Graphviz image.
func (r *Runner) Render(ctx context.Context, g *render.Graph, opts Options) (map[string][]byte, []FormatError) {
	opts.SetRenderDefaults()

	artifacts := make(map[string][]byte)
	var failed []FormatError

	var dotSrc string
	if opts.wants(FormatPNG) || opts.wants(FormatSVG) || opts.wants(FormatDOT) {
		dotSrc = dot.ToDOT(g)
		artifacts[FormatDOT] = []byte(dotSrc)
	}

	for _, format := range orderedFormats(opts.Formats) {
		if format == FormatDOT {
			continue
		}
		if err := ctx.Err(); err != nil {
			failed = append(failed, FormatError{Format: format, Err: err})
			continue
		}

		data, err := renderFormat(ctx, g, format, dotSrc, opts)
		if err != nil {
			r.Logger.Warn("Output format failed", "format", format, "err", err)
			failed = append(failed, FormatError{Format: format, Err: err})
			continue
		}
		artifacts[format] = data
	}
	return artifacts, failed
}

func renderFormat(ctx context.Context, g *render.Graph, format, dotSrc string, opts Options) ([]byte, error) {
	switch format {
	case FormatDrawio:
		return drawio.Render(g, drawio.Options{})
	case FormatMermaid:
		return mermaid.Render(g, mermaid.Options{Fenced: true}), nil
	case FormatPNG:
		return dot.RenderPNG(ctx, dotSrc)
	case FormatSVG:
		return dot.RenderSVG(ctx, dotSrc)
	case FormatJSON:
		return layoutjson.Render(g, layoutjson.WithQuery(opts.JQL), layoutjson.WithSkipped())
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// orderedFormats returns formats in render order, so output and logs do
// not depend on how the flag was spelled.
func orderedFormats(formats []string) []string {
	var out []string
	for _, f := range AllFormats {
		for _, want := range formats {
			if want == f {
				out = append(out, f)
				break
			}
		}
	}
	for _, want := range formats {
		if !ValidFormats[want] {
			out = append(out, want)
		}
	}
	return out
}
