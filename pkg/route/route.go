package route

import (
	"fmt"
	"maps"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/issue"
	"github.com/matzehuels/ticketgraph/pkg/layout"
)

// Config holds the routing offsets in pixels.
type Config struct {
	GutterMargin float64 `toml:"gutter_margin"`
	LaneStepX    float64 `toml:"lane_step_x"`
	LaneStepY    float64 `toml:"lane_step_y"`
}

// DefaultConfig returns the offsets used when nothing is configured.
func DefaultConfig() Config {
	return Config{GutterMargin: 20, LaneStepX: 14, LaneStepY: 12}
}

// WithDefaults returns [DefaultConfig] for the zero Config and c unchanged
// otherwise. A zero margin or lane step is a valid setting.
func (c Config) WithDefaults() Config {
	if c == (Config{}) {
		return DefaultConfig()
	}
	return c
}

// Validate rejects negative offsets.
func (c Config) Validate() error {
	if c.GutterMargin < 0 || c.LaneStepX < 0 || c.LaneStepY < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "route offsets must not be negative: %+v", c)
	}
	return nil
}

// Point is a waypoint in pixel coordinates.
type Point struct {
	X, Y float64
}

// Edge is an issue edge with its lane and polyline.
type Edge struct {
	issue.Edge
	Lane   int
	Points []Point
}

// Skip records an edge that could not be routed.
type Skip struct {
	Edge issue.Edge
	Err  error
}

// Result is the outcome of routing a batch of edges.
type Result struct {
	Edges   []Edge
	Skipped []Skip
}

// LaneKey identifies the column pair an edge runs between.
type LaneKey struct {
	From, To int
}

// Router assigns lanes and computes paths. A Router is meant for one render
// pass; it is not safe for concurrent use.
type Router struct {
	cfg    Config
	grid   layout.Config
	lanes  map[LaneKey]int
	logger *log.Logger
}

// New creates a Router for the given grid geometry. A nil logger discards
// skip warnings.
func New(grid layout.Config, cfg Config, logger *log.Logger) *Router {
	return &Router{
		cfg:    cfg.WithDefaults(),
		grid:   grid.WithDefaults(),
		lanes:  make(map[LaneKey]int),
		logger: logger,
	}
}

// NextLane returns the lane for the next edge between the two columns and
// advances the counter.
func (r *Router) NextLane(fromCol, toCol int) int {
	k := LaneKey{From: fromCol, To: toCol}
	lane := r.lanes[k]
	r.lanes[k]++
	return lane
}

// Lanes returns how many edges have been routed per column pair.
func (r *Router) Lanes() map[LaneKey]int {
	return maps.Clone(r.lanes)
}

// Path computes the waypoints from src to dst for the given lane.
// It depends only on its arguments and the router's fixed configuration.
func (r *Router) Path(src, dst layout.Placement, lane int) []Point {
	a, b := src.Box, dst.Box
	offsetX := float64(lane) * r.cfg.LaneStepX

	if src.Column == dst.Column {
		x := max(a.Right(), b.Right()) + 2*r.cfg.GutterMargin + offsetX
		return []Point{
			{X: x, Y: a.CenterY()},
			{X: x, Y: b.CenterY()},
		}
	}

	srcX := a.Right() + r.cfg.GutterMargin + offsetX
	dstX := b.Left() - r.cfg.GutterMargin - offsetX
	rowMid := float64(src.Row+dst.Row) / 2
	channelY := r.grid.RowY(rowMid) + float64(lane)*r.cfg.LaneStepY

	return []Point{
		{X: srcX, Y: a.CenterY()},
		{X: srcX, Y: channelY},
		{X: dstX, Y: channelY},
		{X: dstX, Y: b.CenterY()},
	}
}

// Route assigns the next lane for the edge's column pair and computes its path.
func (r *Router) Route(e issue.Edge, src, dst layout.Placement) Edge {
	lane := r.NextLane(src.Column, dst.Column)
	return Edge{Edge: e, Lane: lane, Points: r.Path(src, dst, lane)}
}

// RouteAll routes edges in order against the layout. Edges with an endpoint
// outside the layout are skipped, logged, and collected in Result.Skipped.
func (r *Router) RouteAll(l *layout.Layout, edges []issue.Edge) Result {
	var res Result
	for _, e := range edges {
		src, okSrc := l.Placement(e.From)
		dst, okDst := l.Placement(e.To)
		if !okSrc || !okDst {
			skip := Skip{Edge: e, Err: missingEndpoint(e, okSrc, okDst)}
			res.Skipped = append(res.Skipped, skip)
			if r.logger != nil {
				r.logger.Warn("Edge skipped, node missing", "from", e.From, "to", e.To, "type", e.Type)
			}
			continue
		}
		routed := r.Route(e, src, dst)
		if r.logger != nil {
			r.logger.Debug("Edge routed", "from", e.From, "to", e.To, "type", e.Type, "lane", routed.Lane)
		}
		res.Edges = append(res.Edges, routed)
	}
	return res
}

func missingEndpoint(e issue.Edge, okSrc, okDst bool) error {
	var which string
	switch {
	case !okSrc && !okDst:
		which = fmt.Sprintf("%s and %s", e.From, e.To)
	case !okSrc:
		which = e.From
	default:
		which = e.To
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, errors.ErrEdgeEndpointMissing,
		"%s -> %s (%s): %s not in node set", e.From, e.To, e.Type, which)
}
