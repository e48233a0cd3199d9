// Package issue defines the normalized ticket model and the edge extractor.
//
// # Overview
//
// An [Issue] is one ticket from the tracker, already reduced to the handful of
// fields the renderers need. Each issue carries its raw [Link] records exactly
// as the tracker reported them: a relationship name plus a reference to the
// counterpart on the inward or outward side.
//
// [ExtractEdges] turns those link records into directed, typed [Edge] values:
//
//	edges, err := issue.ExtractEdges(issues)
//	if err != nil {
//	    return err // a link without a type name
//	}
//
// # Direction
//
// An outward reference produces (this → outward); an inward reference
// produces (inward → this). Both sides of the same relationship usually show
// up once per endpoint issue, so extraction deduplicates exact
// (from, to, type) triples. Two issues may still be joined by several edges
// when their types differ.
//
// # Lifecycle
//
// Issues are built once per fetch and are never mutated or persisted; every
// run works on a fresh snapshot.
package issue
