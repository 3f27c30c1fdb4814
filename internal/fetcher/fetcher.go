// Package fetcher implements the Remote Fetcher collaborator: the only
// component in the pathfinder engine that performs network I/O, talking to
// the external entity API and word-embedding API.
package fetcher

import (
	"github.com/kraklabs/bipass-pathfinder/internal/graph"
)

// AdjacentBundle is the transitively populated response to
// FetchAdjacentBundle: adjacency, labels, and descriptions for the queried
// entity and everything within the requested depth.
type AdjacentBundle struct {
	QLabels          map[graph.EID]string
	QDescriptions    map[graph.EID]string
	PLabels          map[graph.PID]string
	PDescriptions    map[graph.PID]string
	AdjacentEntities map[graph.EID][]string // "PID-EID" tokens, in stored order
}

// Fetcher is the Remote Fetcher interface: the only collaborator allowed to
// perform network I/O. All operations are synchronous and fail with a
// network-category error on transport or parse failure.
type Fetcher interface {
	// FetchAdjacentBundle returns the transitive adjacency bundle for
	// entity out to depth hops. Implementations fetch at the requested
	// depth only; the depth=2-then-depth=1 fallback is performed by the
	// caller (the Store).
	FetchAdjacentBundle(entity graph.EID, depth int) (*AdjacentBundle, error)

	// FetchLabelDescription returns entity's label and description,
	// returning ("", "") without error on parse failure — this operation
	// is used strictly as a fallback.
	FetchLabelDescription(entity graph.EID) (label, description string, err error)

	// FetchSemanticDistance returns the semantic distance between two
	// composite "label description" strings.
	FetchSemanticDistance(stringA, stringB string) (float64, error)

	// FetchAveragePropFrequency returns the average corpus frequency of
	// the given properties. Optional per spec §4.1.4; not yet consulted
	// by the cost function, but real on every Fetcher so a future cost
	// revision has a concrete hook to call.
	FetchAveragePropFrequency(props []graph.PID) (float64, error)
}
