package layout

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/ticketgraph/pkg/issue"
)

// Position is a grid cell and its normalized coordinate.
type Position struct {
	Column int
	Row    int
	X      float64
	Y      float64
}

// Box is a node rectangle in pixels. X and Y are the top-left corner.
type Box struct {
	X, Y, W, H float64
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.X }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// CenterY returns the vertical center.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Placement is the final position and bounding box of one issue.
type Placement struct {
	Key string
	Position
	Box Box
}

// Layout is the computed grid for a snapshot. It is read-only once built.
type Layout struct {
	Config  Config
	Columns []string // Status name per column index

	order      []string
	placements map[string]Placement
}

// Build assigns every issue a column, a row, and a bounding box.
// Issues with a repeated key are placed once, at their first occurrence.
func Build(issues []issue.Issue, cfg Config) *Layout {
	cfg = cfg.WithDefaults()

	unique := make([]issue.Issue, 0, len(issues))
	seen := make(map[string]bool, len(issues))
	for _, it := range issues {
		if seen[it.Key] {
			continue
		}
		seen[it.Key] = true
		unique = append(unique, it)
	}

	columns := orderStatuses(unique, cfg.StatusOrder)
	colIndex := make(map[string]int, len(columns))
	for i, s := range columns {
		colIndex[s] = i
	}

	groups := make(map[string][]issue.Issue, len(columns))
	for _, it := range unique {
		s := normalizeStatus(it.Status)
		groups[s] = append(groups[s], it)
	}

	l := &Layout{
		Config:     cfg,
		Columns:    columns,
		placements: make(map[string]Placement, len(unique)),
	}

	for col, status := range columns {
		group := groups[status]
		slices.SortFunc(group, func(a, b issue.Issue) int {
			return cmp.Or(
				cmp.Compare(cfg.PriorityRank(a.Priority), cfg.PriorityRank(b.Priority)),
				cmp.Compare(a.Key, b.Key),
			)
		})
		for row, it := range group {
			l.place(it.Key, col, row)
		}
	}
	return l
}

func (l *Layout) place(key string, col, row int) {
	cfg := l.Config
	x := cfg.X0 + float64(col)*cfg.ColumnStep
	y := cfg.Y0 + float64(row)*cfg.RowStep
	l.placements[key] = Placement{
		Key:      key,
		Position: Position{Column: col, Row: row, X: x, Y: y},
		Box: Box{
			X: x * cfg.Scale,
			Y: y * cfg.Scale,
			W: cfg.NodeWidth,
			H: cfg.NodeHeight,
		},
	}
	l.order = append(l.order, key)
}

// Placement returns the placement of key.
func (l *Layout) Placement(key string) (Placement, bool) {
	p, ok := l.placements[key]
	return p, ok
}

// Placements returns all placements in column-major order.
func (l *Layout) Placements() []Placement {
	out := make([]Placement, len(l.order))
	for i, k := range l.order {
		out[i] = l.placements[k]
	}
	return out
}

// Len returns the number of placed issues.
func (l *Layout) Len() int { return len(l.order) }

// Bounds returns the pixel extent covering every box.
func (l *Layout) Bounds() (width, height float64) {
	for _, p := range l.placements {
		width = max(width, p.Box.Right())
		height = max(height, p.Box.Y+p.Box.H)
	}
	return width, height
}

// orderStatuses returns the present statuses, preferred ones first.
func orderStatuses(issues []issue.Issue, preferred []string) []string {
	present := make(map[string]bool)
	for _, it := range issues {
		present[normalizeStatus(it.Status)] = true
	}

	var ordered []string
	used := make(map[string]bool)
	for _, s := range preferred {
		s = normalizeStatus(s)
		if present[s] && !used[s] {
			ordered = append(ordered, s)
			used[s] = true
		}
	}

	var rest []string
	for s := range present {
		if !used[s] {
			rest = append(rest, s)
		}
	}
	slices.Sort(rest)
	return append(ordered, rest...)
}

func normalizeStatus(s string) string {
	return strings.TrimSpace(s)
}
