package ports

import (
	"context"

	"graphbrowser/visualization"
)

// QueryResult carries the raw records a graph query produced, before any
// mapping into domain entities.
type QueryResult struct {
	Nodes         []visualization.RawNode
	Relationships []visualization.RawRelationship
}

// GraphSource runs read queries against the graph database backing an
// exploration session.
type GraphSource interface {
	// RunSeedQuery executes the cypher statement a session starts from.
	// limit caps the number of returned nodes.
	RunSeedQuery(ctx context.Context, cypher string, params map[string]any, limit int) (*QueryResult, error)

	// FetchNeighbors returns the neighborhood of a node, excluding the
	// given already-known neighbor ids. limit caps the number of returned
	// neighbor nodes.
	FetchNeighbors(ctx context.Context, nodeID string, knownNeighborIDs []string, limit int) (*QueryResult, error)
}
