// Package layout places issues on a status × priority grid.
//
// # Columns
//
// Every distinct workflow status becomes one column. Statuses listed in
// [Config.StatusOrder] come first, in that order; any other status present in
// the snapshot follows in lexicographic order. Column indices start at 0.
//
// # Rows
//
// Within a column issues are sorted by priority rank (lower is more urgent)
// and then by key. The rank table is case-insensitive; a missing or unknown
// priority ranks [Config.UnknownPriorityRank], below every named priority.
// The row index is the position in that sorted list, so no two issues in a
// column share a row.
//
// # Coordinates
//
// A (column, row) pair maps to a normalized point
//
//	x = X0 + column*ColumnStep
//	y = Y0 + row*RowStep
//
// which is multiplied by [Config.Scale] to give the top-left pixel corner of
// a NodeWidth × NodeHeight [Box]. With the defaults, 0.22 × 0.12 steps
// scaled by 1000 leave a 20px horizontal and 40px vertical gap around
// 200×80 nodes.
//
// # Usage
//
//	l := layout.Build(issues, layout.DefaultConfig())
//	p, ok := l.Placement("PROJ-42")
//	fmt.Println(p.Column, p.Row, p.Box)
package layout
