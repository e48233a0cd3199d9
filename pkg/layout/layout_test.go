package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/ticketgraph/pkg/issue"
)

func TestBuildPriorityOrdersRows(t *testing.T) {
	issues := []issue.Issue{
		{Key: "B", Status: "Backlog", Priority: "Low"},
		{Key: "A", Status: "Backlog", Priority: "High"},
	}

	l := Build(issues, DefaultConfig())

	a, _ := l.Placement("A")
	b, _ := l.Placement("B")
	if a.Column != 0 || a.Row != 0 {
		t.Errorf("A = (%d,%d), want (0,0)", a.Column, a.Row)
	}
	if b.Column != 0 || b.Row != 1 {
		t.Errorf("B = (%d,%d), want (0,1)", b.Column, b.Row)
	}
}

func TestBuildTiesBrokenByKey(t *testing.T) {
	issues := []issue.Issue{
		{Key: "P-3", Status: "Backlog", Priority: "Medium"},
		{Key: "P-1", Status: "Backlog", Priority: "medium"},
		{Key: "P-2", Status: "Backlog", Priority: "MEDIUM"},
		{Key: "P-0", Status: "Backlog"},
	}

	l := Build(issues, DefaultConfig())

	want := map[string]int{"P-1": 0, "P-2": 1, "P-3": 2, "P-0": 3}
	for key, row := range want {
		p, ok := l.Placement(key)
		if !ok {
			t.Fatalf("missing placement for %s", key)
		}
		if p.Row != row {
			t.Errorf("%s row = %d, want %d", key, p.Row, row)
		}
	}
}

func TestBuildColumnOrder(t *testing.T) {
	issues := []issue.Issue{
		{Key: "A", Status: "Zeta"},
		{Key: "B", Status: "DONE"},
		{Key: "C", Status: "Alpha"},
		{Key: "D", Status: "Backlog"},
		{Key: "E", Status: " Backlog "},
	}

	l := Build(issues, DefaultConfig())

	want := []string{"Backlog", "DONE", "Alpha", "Zeta"}
	if len(l.Columns) != len(want) {
		t.Fatalf("Columns = %v, want %v", l.Columns, want)
	}
	for i := range want {
		if l.Columns[i] != want[i] {
			t.Errorf("Columns[%d] = %q, want %q", i, l.Columns[i], want[i])
		}
	}

	e, _ := l.Placement("E")
	if e.Column != 0 {
		t.Errorf("trimmed status should share the Backlog column, got %d", e.Column)
	}
}

func TestBuildCustomStatusOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StatusOrder = []string{"Doing", "Todo"}
	issues := []issue.Issue{
		{Key: "A", Status: "Todo"},
		{Key: "B", Status: "Doing"},
	}

	l := Build(issues, cfg)

	a, _ := l.Placement("A")
	b, _ := l.Placement("B")
	if b.Column != 0 || a.Column != 1 {
		t.Errorf("columns = A:%d B:%d, want A:1 B:0", a.Column, b.Column)
	}
}

func TestBuildCoordinates(t *testing.T) {
	issues := []issue.Issue{
		{Key: "A", Status: "Backlog", Priority: "High"},
		{Key: "B", Status: "Backlog", Priority: "Low"},
		{Key: "C", Status: "DONE"},
	}

	l := Build(issues, DefaultConfig())

	tests := []struct {
		key        string
		x, y       float64
		boxX, boxY float64
	}{
		{"A", 0.05, 0.05, 50, 50},
		{"B", 0.05, 0.17, 50, 170},
		{"C", 0.27, 0.05, 270, 50},
	}
	for _, tt := range tests {
		p, _ := l.Placement(tt.key)
		if !near(p.X, tt.x) || !near(p.Y, tt.y) {
			t.Errorf("%s normalized = (%v,%v), want (%v,%v)", tt.key, p.X, p.Y, tt.x, tt.y)
		}
		if !near(p.Box.X, tt.boxX) || !near(p.Box.Y, tt.boxY) {
			t.Errorf("%s box = (%v,%v), want (%v,%v)", tt.key, p.Box.X, p.Box.Y, tt.boxX, tt.boxY)
		}
		if p.Box.W != 200 || p.Box.H != 80 {
			t.Errorf("%s box size = %vx%v, want 200x80", tt.key, p.Box.W, p.Box.H)
		}
	}
}

func TestBuildTotalAndUniqueCells(t *testing.T) {
	statuses := []string{"Backlog", "DONE", "Ready for test", "Custom"}
	priorities := []string{"High", "Low", "", "Unknown", "Highest"}

	var issues []issue.Issue
	for i := range 40 {
		issues = append(issues, issue.Issue{
			Key:      fmt.Sprintf("K-%02d", i),
			Status:   statuses[i%len(statuses)],
			Priority: priorities[i%len(priorities)],
		})
	}

	l := Build(issues, DefaultConfig())
	if l.Len() != len(issues) {
		t.Fatalf("Len() = %d, want %d", l.Len(), len(issues))
	}

	type cell struct{ col, row int }
	cells := make(map[cell]string)
	for _, p := range l.Placements() {
		c := cell{p.Column, p.Row}
		if other, dup := cells[c]; dup {
			t.Errorf("%s and %s share cell %v", p.Key, other, c)
		}
		cells[c] = p.Key
	}
}

func TestBuildDeterministic(t *testing.T) {
	issues := []issue.Issue{
		{Key: "C", Status: "x", Priority: "Low"},
		{Key: "A", Status: "y"},
		{Key: "B", Status: "x", Priority: "Low"},
	}
	reversed := []issue.Issue{issues[2], issues[1], issues[0]}

	l1 := Build(issues, DefaultConfig())
	l2 := Build(reversed, DefaultConfig())

	for _, k := range []string{"A", "B", "C"} {
		p1, _ := l1.Placement(k)
		p2, _ := l2.Placement(k)
		if p1 != p2 {
			t.Errorf("%s placement differs with input order: %+v vs %+v", k, p1, p2)
		}
	}
}

func TestBuildDuplicateKeysPlacedOnce(t *testing.T) {
	issues := []issue.Issue{
		{Key: "A", Status: "Backlog"},
		{Key: "A", Status: "DONE"},
	}

	l := Build(issues, DefaultConfig())
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	if len(l.Columns) != 1 || l.Columns[0] != "Backlog" {
		t.Errorf("Columns = %v, want [Backlog]", l.Columns)
	}
}

func TestPriorityRank(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PriorityRanks["blocker"] = 0

	tests := []struct {
		name string
		want int
	}{
		{"Highest", 1},
		{"high", 2},
		{" MEDIUM ", 3},
		{"Low", 4},
		{"lowest", 5},
		{"Blocker", 0},
		{"", 999},
		{"Urgent", 999},
	}
	for _, tt := range tests {
		if got := cfg.PriorityRank(tt.name); got != tt.want {
			t.Errorf("PriorityRank(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	zero := Config{}.WithDefaults()
	if zero.X0 != 0.05 || zero.Scale != 1000 || zero.UnknownPriorityRank != DefaultUnknownPriorityRank {
		t.Errorf("zero Config should become DefaultConfig, got %+v", zero)
	}

	cfg := Config{ColumnStep: 0.3}.WithDefaults()
	if cfg.ColumnStep != 0.3 {
		t.Errorf("ColumnStep = %v, want 0.3", cfg.ColumnStep)
	}
	if cfg.RowStep != 0.12 || cfg.Scale != 1000 || cfg.NodeWidth != 200 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.X0 != 0 || cfg.Y0 != 0 || cfg.UnknownPriorityRank != 0 {
		t.Errorf("origin and unknown rank should stay zero: %+v", cfg)
	}
	if len(cfg.StatusOrder) != len(DefaultStatusOrder) {
		t.Errorf("StatusOrder = %v", cfg.StatusOrder)
	}

	empty := Config{StatusOrder: []string{}}.WithDefaults()
	if len(empty.StatusOrder) != 0 {
		t.Errorf("explicit empty StatusOrder replaced: %v", empty.StatusOrder)
	}
}

func TestBuildAtOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.X0, cfg.Y0 = 0, 0
	cfg.UnknownPriorityRank = 0

	l := Build([]issue.Issue{
		{Key: "A", Status: "Backlog", Priority: "High"},
		{Key: "B", Status: "Backlog"},
	}, cfg)

	b, _ := l.Placement("B")
	if b.Row != 0 {
		t.Errorf("B row = %d, want 0 (unknown rank 0 sorts first)", b.Row)
	}
	if b.Box.X != 0 || b.Box.Y != 0 {
		t.Errorf("B box = %+v, want top-left at origin", b.Box)
	}
	a, _ := l.Placement("A")
	if math.Abs(a.Box.Y-120) > 1e-9 {
		t.Errorf("A box Y = %v, want 120", a.Box.Y)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero origin", func(c *Config) { c.X0, c.Y0 = 0, 0 }, true},
		{"zero column step", func(c *Config) { c.ColumnStep = 0 }, false},
		{"negative row step", func(c *Config) { c.RowStep = -0.1 }, false},
		{"zero scale", func(c *Config) { c.Scale = 0 }, false},
		{"zero node width", func(c *Config) { c.NodeWidth = 0 }, false},
		{"zero node height", func(c *Config) { c.NodeHeight = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, ok %v", err, tt.ok)
			}
		})
	}
}

func TestBoundsAndRowY(t *testing.T) {
	issues := []issue.Issue{
		{Key: "A", Status: "Backlog", Priority: "High"},
		{Key: "B", Status: "Backlog", Priority: "Low"},
		{Key: "C", Status: "DONE"},
	}
	l := Build(issues, DefaultConfig())

	w, h := l.Bounds()
	if !near(w, 470) || !near(h, 250) {
		t.Errorf("Bounds() = (%v,%v), want (470,250)", w, h)
	}
	if got := l.Config.RowY(0.5); !near(got, 110) {
		t.Errorf("RowY(0.5) = %v, want 110", got)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
