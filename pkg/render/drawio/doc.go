// Package drawio writes a dependency graph as a diagrams.net (draw.io) file.
//
// The document is a single page holding the two structural cells "0" and
// "1", one vertex per placed issue (ids from "2", in fetch order) and one
// connector per drawable edge. Vertices carry the computed geometry; edges
// carry none, so the viewer re-routes them whenever a node is moved.
//
// Vertex styling:
//
//   - fill and label background from the issue type palette
//   - ellipse for issues in the target release, rectangle otherwise
//   - a thick red border for flagged issues
//   - a link to the issue in the tracker, also embedded in the HTML label
package drawio
