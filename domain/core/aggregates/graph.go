package aggregates

import (
	"time"

	"github.com/google/uuid"

	"graphbrowser/domain/config"
	"graphbrowser/domain/core/entities"
	"graphbrowser/domain/core/valueobjects"
	"graphbrowser/domain/events"
	pkgerrors "graphbrowser/pkg/errors"
)

// GraphID represents a unique graph identifier
type GraphID string

// NewGraphID creates a new random GraphID
func NewGraphID() GraphID {
	return GraphID(uuid.New().String())
}

// String returns the string representation
func (id GraphID) String() string {
	return string(id)
}

// Graph is the aggregate root for the graph under exploration.
// It owns the node and relationship sets and guarantees that every
// relationship's endpoints exist in the node set for as long as the
// relationship is present.
type Graph struct {
	id            GraphID
	nodes         map[valueobjects.ItemID]*entities.Node
	relationships map[valueobjects.ItemID]*entities.Relationship
	expansions    map[valueobjects.ItemID]*expansionRecord
	cfg           *config.DomainConfig
	createdAt     time.Time
	updatedAt     time.Time
	version       int
	events        []events.DomainEvent
}

// expansionRecord remembers which items a node's expansion introduced,
// so a later collapse removes exactly those and nothing pre-existing.
type expansionRecord struct {
	nodeIDs         []valueobjects.ItemID
	relationshipIDs []valueobjects.ItemID
}

// NewGraph creates an empty graph aggregate with default constraints
func NewGraph() *Graph {
	return NewGraphWithConfig(config.DefaultDomainConfig())
}

// NewGraphWithConfig creates an empty graph aggregate with explicit constraints
func NewGraphWithConfig(cfg *config.DomainConfig) *Graph {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	now := time.Now()
	return &Graph{
		id:            NewGraphID(),
		nodes:         make(map[valueobjects.ItemID]*entities.Node),
		relationships: make(map[valueobjects.ItemID]*entities.Relationship),
		expansions:    make(map[valueobjects.ItemID]*expansionRecord),
		cfg:           cfg,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		events:        []events.DomainEvent{},
	}
}

// ID returns the graph's unique identifier
func (g *Graph) ID() GraphID {
	return g.id
}

// CreatedAt returns when the graph was created
func (g *Graph) CreatedAt() time.Time {
	return g.createdAt
}

// UpdatedAt returns when the graph last changed shape
func (g *Graph) UpdatedAt() time.Time {
	return g.updatedAt
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// RelationshipCount returns the number of relationships
func (g *Graph) RelationshipCount() int {
	return len(g.relationships)
}

// GetNode retrieves a node by ID
func (g *Graph) GetNode(nodeID valueobjects.ItemID) (*entities.Node, error) {
	node, exists := g.nodes[nodeID]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("node")
	}
	return node, nil
}

// HasNode checks if a node exists in the graph
func (g *Graph) HasNode(nodeID valueobjects.ItemID) bool {
	_, exists := g.nodes[nodeID]
	return exists
}

// GetRelationship retrieves a relationship by ID
func (g *Graph) GetRelationship(relID valueobjects.ItemID) (*entities.Relationship, error) {
	rel, exists := g.relationships[relID]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("relationship")
	}
	return rel, nil
}

// Nodes returns all nodes in the graph
func (g *Graph) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, 0, len(g.nodes))
	for _, node := range g.nodes {
		nodes = append(nodes, node)
	}
	return nodes
}

// Relationships returns all relationships in the graph
func (g *Graph) Relationships() []*entities.Relationship {
	rels := make([]*entities.Relationship, 0, len(g.relationships))
	for _, rel := range g.relationships {
		rels = append(rels, rel)
	}
	return rels
}

// NeighborIDs returns the ids of all nodes adjacent to the given node
func (g *Graph) NeighborIDs(nodeID valueobjects.ItemID) []valueobjects.ItemID {
	seen := make(map[valueobjects.ItemID]bool)
	ids := []valueobjects.ItemID{}

	for _, rel := range g.relationships {
		other, ok := rel.OtherEnd(nodeID)
		if !ok || seen[other] {
			continue
		}
		seen[other] = true
		ids = append(ids, other)
	}

	return ids
}

// Neighbors returns all nodes adjacent to the given node
func (g *Graph) Neighbors(nodeID valueobjects.ItemID) []*entities.Node {
	ids := g.NeighborIDs(nodeID)
	nodes := make([]*entities.Node, 0, len(ids))
	for _, id := range ids {
		if node, exists := g.nodes[id]; exists {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Populate seeds the graph with the mapped results of the initial query.
// Nodes are inserted before relationships so endpoint validation holds at
// every step.
func (g *Graph) Populate(nodes []*entities.Node, rels []*entities.Relationship) error {
	if len(g.nodes) > 0 {
		return pkgerrors.NewConflictError("graph is already populated")
	}
	if len(nodes) > g.cfg.MaxNodes {
		return pkgerrors.NewValidationError("query returned more nodes than the display limit")
	}

	for _, node := range nodes {
		if err := g.addNode(node); err != nil {
			return err
		}
	}
	for _, rel := range rels {
		if err := g.addRelationship(rel); err != nil {
			return err
		}
	}

	g.touch()
	g.addEvent(events.NewGraphPopulated(g.id.String(), len(g.nodes), len(g.relationships), g.updatedAt))

	return nil
}

// MergeNodesFrom inserts nodes discovered by expanding the origin node,
// skipping any that are already known. It returns the ids actually added.
func (g *Graph) MergeNodesFrom(originID valueobjects.ItemID, nodes []*entities.Node) []valueobjects.ItemID {
	added := []valueobjects.ItemID{}

	for _, node := range nodes {
		if node == nil || g.HasNode(node.ID()) {
			continue
		}
		if len(g.nodes) >= g.cfg.MaxNodes {
			break
		}
		g.nodes[node.ID()] = node
		added = append(added, node.ID())
	}

	if len(added) > 0 {
		record := g.recordExpansion(originID)
		record.nodeIDs = append(record.nodeIDs, added...)
		g.touch()
		g.addEvent(events.NewNodesMerged(g.id.String(), originID, added, g.updatedAt))
	}

	return added
}

// MergeRelationshipsFrom inserts relationships discovered by expanding the
// origin node, skipping duplicates and any whose endpoints are unknown.
// It returns the ids actually added.
func (g *Graph) MergeRelationshipsFrom(originID valueobjects.ItemID, rels []*entities.Relationship) []valueobjects.ItemID {
	added := []valueobjects.ItemID{}

	for _, rel := range rels {
		if rel == nil {
			continue
		}
		if _, exists := g.relationships[rel.ID()]; exists {
			continue
		}
		if !g.HasNode(rel.StartID()) || !g.HasNode(rel.EndID()) {
			continue
		}
		g.relationships[rel.ID()] = rel
		added = append(added, rel.ID())
	}

	if len(added) > 0 {
		record := g.recordExpansion(originID)
		record.relationshipIDs = append(record.relationshipIDs, added...)
		g.touch()
		g.addEvent(events.NewRelationshipsMerged(g.id.String(), originID, added, g.updatedAt))
	}

	return added
}

// Collapse removes the nodes and relationships a prior expansion of the
// given node introduced, leaving pre-existing structure untouched. Items a
// collapsed child itself expanded are collapsed with it.
func (g *Graph) Collapse(originID valueobjects.ItemID) {
	record, exists := g.expansions[originID]
	if !exists {
		return
	}
	delete(g.expansions, originID)

	for _, relID := range record.relationshipIDs {
		delete(g.relationships, relID)
	}

	for _, nodeID := range record.nodeIDs {
		if !g.HasNode(nodeID) {
			continue
		}
		g.Collapse(nodeID)
		g.removeConnectedRelationships(nodeID)
		delete(g.nodes, nodeID)
	}

	g.touch()
	g.addEvent(events.NewGraphCollapsed(g.id.String(), originID, g.updatedAt))
}

// RemoveConnectedRelationships removes every relationship incident to the
// node and returns the removed ids
func (g *Graph) RemoveConnectedRelationships(nodeID valueobjects.ItemID) []valueobjects.ItemID {
	removed := g.removeConnectedRelationships(nodeID)
	if len(removed) > 0 {
		g.touch()
	}
	return removed
}

// RemoveNode removes a node from the graph. Incident relationships are
// removed with it so the referential invariant never breaks.
func (g *Graph) RemoveNode(nodeID valueobjects.ItemID) error {
	if !g.HasNode(nodeID) {
		return pkgerrors.NewNotFoundError("node")
	}

	removedRels := g.removeConnectedRelationships(nodeID)
	delete(g.nodes, nodeID)
	delete(g.expansions, nodeID)

	g.touch()
	g.addEvent(events.NewNodeRemoved(g.id.String(), nodeID, removedRels, g.updatedAt))

	return nil
}

// Validate ensures graph invariants
func (g *Graph) Validate() error {
	for _, rel := range g.relationships {
		if !g.HasNode(rel.StartID()) {
			return pkgerrors.NewInternalError("relationship references non-existent start node")
		}
		if !g.HasNode(rel.EndID()) {
			return pkgerrors.NewInternalError("relationship references non-existent end node")
		}
	}
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (g *Graph) GetUncommittedEvents() []events.DomainEvent {
	allEvents := make([]events.DomainEvent, len(g.events))
	copy(allEvents, g.events)
	return allEvents
}

// MarkEventsAsCommitted clears all uncommitted events
func (g *Graph) MarkEventsAsCommitted() {
	g.events = []events.DomainEvent{}
}

// Private helper methods

func (g *Graph) addNode(node *entities.Node) error {
	if node == nil {
		return pkgerrors.NewValidationError("node cannot be nil")
	}
	if g.HasNode(node.ID()) {
		return pkgerrors.NewConflictError("node already exists in graph")
	}

	g.nodes[node.ID()] = node
	return nil
}

func (g *Graph) addRelationship(rel *entities.Relationship) error {
	if rel == nil {
		return pkgerrors.NewValidationError("relationship cannot be nil")
	}
	if _, exists := g.relationships[rel.ID()]; exists {
		return pkgerrors.NewConflictError("relationship already exists in graph")
	}
	if !g.HasNode(rel.StartID()) || !g.HasNode(rel.EndID()) {
		return pkgerrors.NewValidationError("both relationship endpoints must exist in graph")
	}

	g.relationships[rel.ID()] = rel
	return nil
}

func (g *Graph) removeConnectedRelationships(nodeID valueobjects.ItemID) []valueobjects.ItemID {
	removed := []valueobjects.ItemID{}
	for id, rel := range g.relationships {
		if rel.Incident(nodeID) {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		delete(g.relationships, id)
	}
	return removed
}

func (g *Graph) recordExpansion(originID valueobjects.ItemID) *expansionRecord {
	record, exists := g.expansions[originID]
	if !exists {
		record = &expansionRecord{}
		g.expansions[originID] = record
	}
	return record
}

func (g *Graph) touch() {
	g.updatedAt = time.Now()
	g.version++
}

func (g *Graph) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}
