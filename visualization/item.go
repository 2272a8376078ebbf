package visualization

import (
	"graphbrowser/domain/core/entities"
	"graphbrowser/domain/core/valueobjects"
)

// Item describes the interaction target currently under the pointer or
// selected. Exactly one variant is active at any instant; an empty
// selection is spoken as CanvasItem.
type Item interface {
	isItem()
}

// CanvasItem represents the background of the view surface and carries the
// aggregate counts the host shows when nothing specific is targeted.
type CanvasItem struct {
	NodeCount         int `json:"nodeCount"`
	RelationshipCount int `json:"relationshipCount"`
}

// NodeItem carries the display payload of a hovered or selected node.
type NodeItem struct {
	ID         valueobjects.ItemID     `json:"id"`
	Labels     []string                `json:"labels"`
	Properties valueobjects.Properties `json:"properties"`
}

// RelationshipItem carries the display payload of a hovered or selected
// relationship.
type RelationshipItem struct {
	ID         valueobjects.ItemID     `json:"id"`
	Type       string                  `json:"type"`
	Properties valueobjects.Properties `json:"properties"`
}

// ContextMenuItem carries the payload of a hovered context menu entry.
type ContextMenuItem struct {
	Label     string `json:"label"`
	Content   string `json:"content"`
	Selection string `json:"selection"`
}

func (CanvasItem) isItem()       {}
func (NodeItem) isItem()         {}
func (RelationshipItem) isItem() {}
func (ContextMenuItem) isItem()  {}

var (
	_ Item = CanvasItem{}
	_ Item = NodeItem{}
	_ Item = RelationshipItem{}
	_ Item = ContextMenuItem{}
)

// NewNodeItem builds the NodeItem payload for a node entity.
func NewNodeItem(node *entities.Node) NodeItem {
	return NodeItem{
		ID:         node.ID(),
		Labels:     node.Labels(),
		Properties: node.Properties(),
	}
}

// NewRelationshipItem builds the RelationshipItem payload for a
// relationship entity.
func NewRelationshipItem(rel *entities.Relationship) RelationshipItem {
	return RelationshipItem{
		ID:         rel.ID(),
		Type:       rel.Type(),
		Properties: rel.Properties(),
	}
}

// NewContextMenuItem builds the ContextMenuItem payload for an attached
// context menu.
func NewContextMenuItem(menu *entities.ContextMenu) ContextMenuItem {
	return ContextMenuItem{
		Label:     menu.Label,
		Content:   menu.Content,
		Selection: menu.Selection,
	}
}
