// Package route computes orthogonal connector paths between placed issues.
//
// # Paths
//
// Edges between issues in the same column leave the column on the right:
// a single vertical segment at
//
//	max(rightA, rightB) + 2*GutterMargin + lane*LaneStepX
//
// joins the two vertical centers (2 waypoints).
//
// Edges between different columns run through gutters beside each box and a
// horizontal channel halfway between the two rows (4 waypoints):
//
//	(srcGutter, srcCenterY) → (srcGutter, channelY) → (dstGutter, channelY) → (dstGutter, dstCenterY)
//
// # Lanes
//
// Several edges often run between the same pair of columns. The [Router]
// counts edges per (source column, target column) pair and hands each new
// edge the next lane index, starting at 0. The lane index pushes gutters
// outward by LaneStepX and the channel down by LaneStepY so parallel edges do
// not coincide. Lanes are assigned in the order edges are routed.
//
// # Missing endpoints
//
// [Router.RouteAll] skips an edge whose source or target has no placement
// and reports it in [Result.Skipped]; the remaining edges are still routed.
package route
