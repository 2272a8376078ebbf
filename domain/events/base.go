package events

import (
	"time"

	"graphbrowser/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// GraphPopulated is raised when a graph is seeded from query results
type GraphPopulated struct {
	BaseEvent
	NodeCount         int `json:"node_count"`
	RelationshipCount int `json:"relationship_count"`
}

// NewGraphPopulated creates a GraphPopulated event
func NewGraphPopulated(graphID string, nodeCount, relationshipCount int, timestamp time.Time) GraphPopulated {
	return GraphPopulated{
		BaseEvent: BaseEvent{
			AggregateID: graphID,
			EventType:   "graph.populated",
			Timestamp:   timestamp,
		},
		NodeCount:         nodeCount,
		RelationshipCount: relationshipCount,
	}
}

// NodesMerged is raised when new nodes are merged into the graph by an
// expansion of the origin node
type NodesMerged struct {
	BaseEvent
	OriginID valueobjects.ItemID   `json:"origin_id"`
	NodeIDs  []valueobjects.ItemID `json:"node_ids"`
}

// NewNodesMerged creates a NodesMerged event
func NewNodesMerged(graphID string, originID valueobjects.ItemID, nodeIDs []valueobjects.ItemID, timestamp time.Time) NodesMerged {
	return NodesMerged{
		BaseEvent: BaseEvent{
			AggregateID: graphID,
			EventType:   "graph.nodes_merged",
			Timestamp:   timestamp,
		},
		OriginID: originID,
		NodeIDs:  nodeIDs,
	}
}

// RelationshipsMerged is raised when new relationships are merged into the
// graph by an expansion of the origin node
type RelationshipsMerged struct {
	BaseEvent
	OriginID        valueobjects.ItemID   `json:"origin_id"`
	RelationshipIDs []valueobjects.ItemID `json:"relationship_ids"`
}

// NewRelationshipsMerged creates a RelationshipsMerged event
func NewRelationshipsMerged(graphID string, originID valueobjects.ItemID, relationshipIDs []valueobjects.ItemID, timestamp time.Time) RelationshipsMerged {
	return RelationshipsMerged{
		BaseEvent: BaseEvent{
			AggregateID: graphID,
			EventType:   "graph.relationships_merged",
			Timestamp:   timestamp,
		},
		OriginID:        originID,
		RelationshipIDs: relationshipIDs,
	}
}

// GraphCollapsed is raised when a prior expansion is removed again
type GraphCollapsed struct {
	BaseEvent
	OriginID valueobjects.ItemID `json:"origin_id"`
}

// NewGraphCollapsed creates a GraphCollapsed event
func NewGraphCollapsed(graphID string, originID valueobjects.ItemID, timestamp time.Time) GraphCollapsed {
	return GraphCollapsed{
		BaseEvent: BaseEvent{
			AggregateID: graphID,
			EventType:   "graph.collapsed",
			Timestamp:   timestamp,
		},
		OriginID: originID,
	}
}

// NodeRemoved is raised when a node is closed, together with the incident
// relationships that went with it
type NodeRemoved struct {
	BaseEvent
	NodeID          valueobjects.ItemID   `json:"node_id"`
	RelationshipIDs []valueobjects.ItemID `json:"relationship_ids"`
}

// NewNodeRemoved creates a NodeRemoved event
func NewNodeRemoved(graphID string, nodeID valueobjects.ItemID, relationshipIDs []valueobjects.ItemID, timestamp time.Time) NodeRemoved {
	return NodeRemoved{
		BaseEvent: BaseEvent{
			AggregateID: graphID,
			EventType:   "graph.node_removed",
			Timestamp:   timestamp,
		},
		NodeID:          nodeID,
		RelationshipIDs: relationshipIDs,
	}
}
