package entities

import (
	"graphbrowser/domain/core/valueobjects"
	pkgerrors "graphbrowser/pkg/errors"
)

// ContextMenu describes an action menu currently attached to a node.
// While attached, the menu is the node's active interaction surface.
type ContextMenu struct {
	Label     string `json:"label"`
	Content   string `json:"content"`
	Selection string `json:"selection"`
}

// Node is a graph vertex under exploration. Identity and display data are
// immutable after construction; the interaction flags are mutated by the
// event handler as the user selects, pins and expands it.
type Node struct {
	id         valueobjects.ItemID
	labels     []string
	properties valueobjects.Properties

	selected    bool
	fixed       bool
	expanded    bool
	contextMenu *ContextMenu
}

// NewNode creates a node with validated identity
func NewNode(id valueobjects.ItemID, labels []string, properties valueobjects.Properties) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node ID cannot be empty")
	}

	copied := make([]string, len(labels))
	copy(copied, labels)

	return &Node{
		id:         id,
		labels:     copied,
		properties: properties,
	}, nil
}

// ID returns the node's unique identifier
func (n *Node) ID() valueobjects.ItemID {
	return n.id
}

// Labels returns the node's display labels in order
func (n *Node) Labels() []string {
	copied := make([]string, len(n.labels))
	copy(copied, n.labels)
	return copied
}

// Properties returns the node's ordered property list
func (n *Node) Properties() valueobjects.Properties {
	return n.properties
}

// Selected reports whether the node is the current selection
func (n *Node) Selected() bool {
	return n.selected
}

// Select marks the node as the current selection
func (n *Node) Select() {
	n.selected = true
}

// Deselect clears the selection flag
func (n *Node) Deselect() {
	n.selected = false
}

// Fixed reports whether the node is pinned against layout forces
func (n *Node) Fixed() bool {
	return n.fixed
}

// SetFixed pins or releases the node's layout position
func (n *Node) SetFixed(fixed bool) {
	n.fixed = fixed
}

// Expanded reports whether the node's neighborhood has been requested
func (n *Node) Expanded() bool {
	return n.expanded
}

// SetExpanded records that an expansion was requested or undone.
// The flag flips before any fetch resolves; a second double-click while a
// fetch is in flight therefore reads as a collapse.
func (n *Node) SetExpanded(expanded bool) {
	n.expanded = expanded
}

// ContextMenu returns the attached menu, or nil when none is open
func (n *Node) ContextMenu() *ContextMenu {
	return n.contextMenu
}

// AttachContextMenu opens a context menu on the node
func (n *Node) AttachContextMenu(menu *ContextMenu) error {
	if menu == nil {
		return pkgerrors.NewValidationError("context menu cannot be nil")
	}
	if menu.Label == "" {
		return pkgerrors.NewValidationError("context menu label cannot be empty")
	}

	n.contextMenu = menu
	return nil
}

// DetachContextMenu closes the node's context menu
func (n *Node) DetachContextMenu() {
	n.contextMenu = nil
}
