package layout

import (
	"maps"
	"strings"

	"github.com/matzehuels/ticketgraph/pkg/errors"
)

// DefaultUnknownPriorityRank is the rank of a missing or unrecognized priority.
const DefaultUnknownPriorityRank = 999

// DefaultStatusOrder is the preferred column order for a typical delivery workflow.
var DefaultStatusOrder = []string{
	"Backlog",
	"Selected for Development",
	"Being developed",
	"Ready for code review",
	"Ready for test",
	"Ready for production",
	"Ready for Live",
	"DONE",
}

// DefaultPriorityRanks maps upper-cased priority names to ranks.
var DefaultPriorityRanks = map[string]int{
	"HIGHEST": 1,
	"HIGH":    2,
	"MEDIUM":  3,
	"LOW":     4,
	"LOWEST":  5,
}

// Config holds the layout policy and grid geometry.
type Config struct {
	StatusOrder         []string       `toml:"status_order"`
	PriorityRanks       map[string]int `toml:"priority_ranks"`
	UnknownPriorityRank int            `toml:"unknown_priority_rank"`

	X0         float64 `toml:"x0"`
	Y0         float64 `toml:"y0"`
	ColumnStep float64 `toml:"column_step"`
	RowStep    float64 `toml:"row_step"`
	Scale      float64 `toml:"scale"`
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
}

// DefaultConfig returns the layout used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		StatusOrder:         append([]string(nil), DefaultStatusOrder...),
		PriorityRanks:       maps.Clone(DefaultPriorityRanks),
		UnknownPriorityRank: DefaultUnknownPriorityRank,
		X0:                  0.05,
		Y0:                  0.05,
		ColumnStep:          0.22,
		RowStep:             0.12,
		Scale:               1000,
		NodeWidth:           200,
		NodeHeight:          80,
	}
}

// WithDefaults returns [DefaultConfig] for the zero Config. Otherwise it
// fills only the fields for which zero is meaningless: a nil StatusOrder or
// PriorityRanks, and non-positive steps, scale or node size. X0, Y0 and
// UnknownPriorityRank are kept as given, zero included.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.isZero() {
		return d
	}
	if c.StatusOrder == nil {
		c.StatusOrder = d.StatusOrder
	}
	if c.PriorityRanks == nil {
		c.PriorityRanks = d.PriorityRanks
	}
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&c.ColumnStep, d.ColumnStep)
	fill(&c.RowStep, d.RowStep)
	fill(&c.Scale, d.Scale)
	fill(&c.NodeWidth, d.NodeWidth)
	fill(&c.NodeHeight, d.NodeHeight)
	return c
}

func (c Config) isZero() bool {
	return c.StatusOrder == nil && c.PriorityRanks == nil && c.UnknownPriorityRank == 0 &&
		c.X0 == 0 && c.Y0 == 0 && c.ColumnStep == 0 && c.RowStep == 0 &&
		c.Scale == 0 && c.NodeWidth == 0 && c.NodeHeight == 0
}

// Validate rejects grid geometry that cannot produce a layout.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"column_step", c.ColumnStep},
		{"row_step", c.RowStep},
		{"scale", c.Scale},
		{"node_width", c.NodeWidth},
		{"node_height", c.NodeHeight},
	} {
		if f.v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "layout %s must be positive, got %v", f.name, f.v)
		}
	}
	return nil
}

// PriorityRank returns the rank of a priority name, ignoring case and
// surrounding whitespace.
func (c Config) PriorityRank(name string) int {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key != "" {
		if r, ok := c.PriorityRanks[key]; ok {
			return r
		}
		for k, r := range c.PriorityRanks {
			if strings.EqualFold(k, key) {
				return r
			}
		}
	}
	return c.UnknownPriorityRank
}

// RowY converts a (possibly fractional) row index to a pixel y-coordinate.
func (c Config) RowY(row float64) float64 {
	return (c.Y0 + row*c.RowStep) * c.Scale
}
