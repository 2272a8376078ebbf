package entities

import (
	"graphbrowser/domain/core/valueobjects"
	pkgerrors "graphbrowser/pkg/errors"
)

// Relationship is a directed edge between two nodes that both exist in the
// graph for as long as the relationship does.
type Relationship struct {
	id         valueobjects.ItemID
	relType    string
	startID    valueobjects.ItemID
	endID      valueobjects.ItemID
	properties valueobjects.Properties

	selected bool
}

// NewRelationship creates a relationship with validated identity and endpoints
func NewRelationship(
	id valueobjects.ItemID,
	relType string,
	startID, endID valueobjects.ItemID,
	properties valueobjects.Properties,
) (*Relationship, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("relationship ID cannot be empty")
	}
	if relType == "" {
		return nil, pkgerrors.NewValidationError("relationship type cannot be empty")
	}
	if startID.IsZero() || endID.IsZero() {
		return nil, pkgerrors.NewValidationError("relationship endpoints cannot be empty")
	}

	return &Relationship{
		id:         id,
		relType:    relType,
		startID:    startID,
		endID:      endID,
		properties: properties,
	}, nil
}

// ID returns the relationship's unique identifier
func (r *Relationship) ID() valueobjects.ItemID {
	return r.id
}

// Type returns the relationship type
func (r *Relationship) Type() string {
	return r.relType
}

// StartID returns the source node id
func (r *Relationship) StartID() valueobjects.ItemID {
	return r.startID
}

// EndID returns the target node id
func (r *Relationship) EndID() valueobjects.ItemID {
	return r.endID
}

// Properties returns the relationship's ordered property list
func (r *Relationship) Properties() valueobjects.Properties {
	return r.properties
}

// Selected reports whether the relationship is the current selection
func (r *Relationship) Selected() bool {
	return r.selected
}

// Select marks the relationship as the current selection
func (r *Relationship) Select() {
	r.selected = true
}

// Deselect clears the selection flag
func (r *Relationship) Deselect() {
	r.selected = false
}

// Incident reports whether the relationship touches the given node
func (r *Relationship) Incident(nodeID valueobjects.ItemID) bool {
	return r.startID.Equals(nodeID) || r.endID.Equals(nodeID)
}

// OtherEnd returns the endpoint opposite the given node
func (r *Relationship) OtherEnd(nodeID valueobjects.ItemID) (valueobjects.ItemID, bool) {
	switch {
	case r.startID.Equals(nodeID):
		return r.endID, true
	case r.endID.Equals(nodeID):
		return r.startID, true
	default:
		return valueobjects.ItemID{}, false
	}
}
