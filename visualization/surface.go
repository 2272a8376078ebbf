package visualization

import "graphbrowser/domain/core/entities"

// UpdateScope tells the view surface which element sets need re-rendering.
// Update requests are fire-and-forget and idempotent.
type UpdateScope struct {
	Nodes         bool `json:"nodes"`
	Relationships bool `json:"relationships"`
}

// Listener receives raw interaction events from a view surface. The surface
// dispatches each event exactly once per occurrence; handlers run to
// completion before the next event is delivered.
type Listener interface {
	OnNodeMouseOver(node *entities.Node)
	OnNodeMouseOut(node *entities.Node)
	OnMenuMouseOver(node *entities.Node)
	OnMenuMouseOut(node *entities.Node)
	OnRelMouseOver(rel *entities.Relationship)
	OnRelMouseOut(rel *entities.Relationship)
	OnRelationshipClicked(rel *entities.Relationship)
	OnCanvasClicked()
	OnNodeClose(node *entities.Node)
	OnNodeClicked(node *entities.Node)
	OnNodeDblClicked(node *entities.Node)
	OnNodeUnlock(node *entities.Node)
}

// ViewSurface owns layout and rendering. It is the sole source of raw
// interaction events and accepts imperative refresh requests.
type ViewSurface interface {
	// Bind registers the listener for all surface events. Called exactly
	// once per listener.
	Bind(listener Listener)

	// Update requests a re-render of the element sets named by the scope.
	Update(scope UpdateScope)
}

// NeighborSource asynchronously discovers a node's yet-unknown neighbors.
type NeighborSource interface {
	// FetchNeighbors is called once per expansion. knownNeighborIDs carries
	// the ids the graph already holds for the node so the source can skip
	// redundant payload. onResult must be invoked at most once; there is no
	// retry or cancellation contract.
	FetchNeighbors(node *entities.Node, knownNeighborIDs []string, onResult func(nodes []RawNode, rels []RawRelationship))
}
