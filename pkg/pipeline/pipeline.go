// Package pipeline runs the fetch → build → render → write sequence that
// turns a tracker query into diagram files.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: drain the query from the issue [Source]
//  2. Build: extract edges, compute the grid layout and route edges
//  3. Render: produce each requested format independently
//  4. Write: store each artifact next to the others
//
// Fetch and Build failures abort the run. Render and Write failures are
// recorded per format in [Result.Failed] and the remaining formats still
// run, so a missing Graphviz feature never costs the draw.io file.
//
// # Usage
//
//	runner := pipeline.NewRunner(jiraClient, logger)
//	opts := pipeline.OptionsFromConfig(cfg)
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Files {
//	    fmt.Println(f.Path)
//	}
package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/ticketgraph/pkg/config"
	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/issue"
	"github.com/matzehuels/ticketgraph/pkg/layout"
	"github.com/matzehuels/ticketgraph/pkg/render"
	"github.com/matzehuels/ticketgraph/pkg/route"
)

// Format constants for output formats.
const (
	FormatDrawio  = "drawio"
	FormatMermaid = "mermaid"
	FormatPNG     = "png"
	FormatSVG     = "svg"
	FormatDOT     = "dot"
	FormatJSON    = "json"
)

// AllFormats lists every supported format in render order.
var AllFormats = []string{FormatDrawio, FormatMermaid, FormatDOT, FormatPNG, FormatSVG, FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDrawio:  true,
	FormatMermaid: true,
	FormatPNG:     true,
	FormatSVG:     true,
	FormatDOT:     true,
	FormatJSON:    true,
}

// Source yields the issues matching a query.
type Source interface {
	FetchIssues(ctx context.Context, jql string) ([]issue.Issue, error)
}

// Options contains all configuration for one pipeline run.
type Options struct {
	JQL string

	// Output is the base path for drawio, png, svg, dot and json files;
	// the extension is appended.
	Output        string
	MermaidOutput string
	Formats       []string

	// BaseURL is the tracker site used for issue links.
	BaseURL string
	Layout  layout.Config
	Route   route.Config
	Style   render.Style

	validated bool
}

// OptionsFromConfig maps a loaded configuration onto pipeline options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		JQL:           cfg.JQL,
		Output:        cfg.Output,
		MermaidOutput: cfg.MermaidOutput,
		Formats:       slices.Clone(cfg.Formats),
		BaseURL:       cfg.Credentials.BaseURL,
		Layout:        cfg.Layout,
		Route:         cfg.Route,
		Style:         cfg.Style,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Issues []issue.Issue
	Edges  []issue.Edge
	Graph  *render.Graph

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte
	// Files lists what was written, in render order.
	Files []File
	// Failed lists formats that could not be rendered or written.
	Failed []FormatError

	Stats Stats
}

// File is one written artifact.
type File struct {
	Format string
	Path   string
	Size   int
}

// FormatError is a failure confined to one output format.
type FormatError struct {
	Format string
	Err    error
}

func (e FormatError) Error() string { return e.Format + ": " + e.Err.Error() }
func (e FormatError) Unwrap() error { return e.Err }

// Stats contains pipeline execution statistics.
type Stats struct {
	IssueCount   int // Distinct issues placed on the grid
	EdgeCount    int
	FlaggedCount int // Flagged issues among those placed
	RoutedCount  int
	SkippedCount int
	FetchTime    time.Duration
	BuildTime    time.Duration
	RenderTime   time.Duration
}

// Skipped returns the edges that were left out of the diagrams.
func (r *Result) Skipped() []route.Skip {
	if r.Graph == nil {
		return nil
	}
	return r.Graph.Routes.Skipped
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(AllFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if strings.TrimSpace(o.JQL) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "query is required")
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for building and rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(config.DefaultFormats)
	}
	if o.Output == "" {
		o.Output = config.DefaultOutput
	}
	if o.MermaidOutput == "" {
		o.MermaidOutput = config.DefaultMermaidOutput
	}
	o.Layout = o.Layout.WithDefaults()
	o.Route = o.Route.WithDefaults()
	o.Style = o.Style.WithDefaults()
}

// Path returns the file an artifact of the given format is written to.
func (o *Options) Path(format string) string {
	if format == FormatMermaid {
		return o.MermaidOutput
	}
	return fmt.Sprintf("%s.%s", o.Output, format)
}

// wants reports whether format was requested.
func (o *Options) wants(format string) bool {
	return slices.Contains(o.Formats, format)
}
