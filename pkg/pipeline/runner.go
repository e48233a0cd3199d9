package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/issue"
	"github.com/matzehuels/ticketgraph/pkg/layout"
	"github.com/matzehuels/ticketgraph/pkg/observability"
	"github.com/matzehuels/ticketgraph/pkg/render"
	"github.com/matzehuels/ticketgraph/pkg/route"
)

// Runner executes the pipeline against one issue source.
//
// The Runner is stateless apart from its source and logger; it doesn't
// store pipeline results.
type Runner struct {
	Source Source
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(src Source, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Source: src, Logger: logger}
}

// Execute runs fetch → build → render → write.
//
// The returned error is non-nil when fetching or building fails, or when
// every requested format failed. Partial failures are reported in
// Result.Failed alongside a nil error.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	hooks.OnFetchStart(ctx, opts.JQL)
	issues, err := r.Fetch(ctx, opts)
	hooks.OnFetchComplete(ctx, opts.JQL, len(issues), time.Since(fetchStart), err)
	if err != nil {
		return nil, err
	}
	result.Issues = issues
	result.Stats.FetchTime = time.Since(fetchStart)

	// Stage 2: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, len(issues))
	g, err := r.Build(issues, opts)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(buildStart), err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, len(g.Edges), len(g.Routes.Skipped), time.Since(buildStart), nil)
	result.Graph = g
	result.Edges = g.Edges
	result.Stats.BuildTime = time.Since(buildStart)
	placed := g.Placed()
	result.Stats.IssueCount = len(placed)
	result.Stats.EdgeCount = len(g.Edges)
	result.Stats.FlaggedCount = issue.CountFlagged(placed)
	result.Stats.RoutedCount = len(g.Routes.Edges)
	result.Stats.SkippedCount = len(g.Routes.Skipped)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, failed := r.Render(ctx, g, opts)
	result.Artifacts = artifacts
	result.Failed = failed
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, len(failed), result.Stats.RenderTime)

	// Stage 4: Write
	files, writeFailed := r.Write(artifacts, opts)
	result.Files = files
	result.Failed = append(result.Failed, writeFailed...)

	if len(files) == 0 && len(result.Failed) > 0 {
		return result, errors.Wrap(errors.ErrCodeRenderFailed, result.Failed[0], "no output could be produced")
	}
	return result, nil
}

// Fetch retrieves the snapshot from the source.
func (r *Runner) Fetch(ctx context.Context, opts Options) ([]issue.Issue, error) {
	if r.Source == nil {
		return nil, errors.New(errors.ErrCodeInternal, "pipeline has no issue source")
	}
	issues, err := r.Source.FetchIssues(ctx, opts.JQL)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("Fetched issues", "count", len(issues), "flagged", issue.CountFlagged(issues))
	return issues, nil
}

// Build extracts edges, lays out the issues and routes the edges.
func (r *Runner) Build(issues []issue.Issue, opts Options) (*render.Graph, error) {
	opts.SetRenderDefaults()

	edges, err := issue.ExtractEdges(issues)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("Extracted dependencies", "edges", len(edges))

	l := layout.Build(issues, opts.Layout)
	r.Logger.Debug("Computed layout", "columns", l.Columns, "placed", l.Len())

	routes := route.New(l.Config, opts.Route, r.Logger).RouteAll(l, edges)

	return &render.Graph{
		Issues:  issues,
		Edges:   edges,
		Layout:  l,
		Routes:  routes,
		BaseURL: opts.BaseURL,
		Style:   opts.Style,
	}, nil
}
