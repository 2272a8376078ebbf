package visualization

import (
	"fmt"

	"go.uber.org/zap"

	"graphbrowser/domain/core/aggregates"
	"graphbrowser/domain/core/entities"
	"graphbrowser/domain/core/valueobjects"
	"graphbrowser/pkg/observability"
)

// Callbacks are the host notifications emitted by the event handler. All
// three are synchronous and fire-and-forget; nil entries are skipped.
type Callbacks struct {
	OnGraphModelChange func(stats Stats)
	OnItemMouseOver    func(item Item)
	OnItemSelected     func(item Item)
}

type selectionKind int

const (
	selectionNone selectionKind = iota
	selectionNode
	selectionRelationship
)

// selection is the handler-owned slot tracking the single selected entity.
type selection struct {
	kind selectionKind
	node *entities.Node
	rel  *entities.Relationship
}

// EventHandler is the interaction coordinator: it owns selection state,
// mediates between the graph aggregate and the view surface, drives lazy
// neighbor expansion, and reports interaction targets and aggregate
// statistics to the host.
//
// The handler is not safe for concurrent use. Events must be delivered one
// at a time; each transition runs to completion before the next event. The
// neighbor fetch is the only suspension point: the source resolves it
// asynchronously and the result re-enters through the same serialized
// delivery, so callback application order equals arrival order. There is no
// per-node fetch deduplication and no cancellation: a node expanded,
// collapsed, and re-expanded while an earlier fetch is outstanding still
// receives the stale result when it arrives.
type EventHandler struct {
	graph     *aggregates.Graph
	view      ViewSurface
	neighbors NeighborSource
	callbacks Callbacks
	selected  selection
	logger    *zap.Logger
}

var _ Listener = (*EventHandler)(nil)

// NewEventHandler wires a handler to its graph, view surface, and neighbor
// source. Call Bind to start receiving events.
func NewEventHandler(
	graph *aggregates.Graph,
	view ViewSurface,
	neighbors NeighborSource,
	callbacks Callbacks,
	logger *zap.Logger,
) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{
		graph:     graph,
		view:      view,
		neighbors: neighbors,
		callbacks: callbacks,
		selected:  selection{kind: selectionNone},
		logger:    logger,
	}
}

// Bind registers the handler against every view surface event and emits one
// initial canvas notification so the host holds a valid item before any
// user interaction occurs.
func (h *EventHandler) Bind() {
	h.view.Bind(h)
	h.notifyMouseOver(h.canvasItem())
}

// SelectNode makes the node the sole selected entity, clearing any prior
// selection first.
func (h *EventHandler) SelectNode(node *entities.Node) {
	h.clearSelection()
	node.Select()
	h.selected = selection{kind: selectionNode, node: node}
	h.view.Update(UpdateScope{Nodes: true, Relationships: true})
}

// SelectRelationship makes the relationship the sole selected entity,
// clearing any prior selection first.
func (h *EventHandler) SelectRelationship(rel *entities.Relationship) {
	h.clearSelection()
	rel.Select()
	h.selected = selection{kind: selectionRelationship, rel: rel}
	h.view.Update(UpdateScope{Nodes: true, Relationships: true})
}

// Deselect clears the selection slot and re-broadcasts the canvas item with
// current counts. It is idempotent: with nothing selected it still
// re-broadcasts, which re-arms the host's hover and selection overlays
// after any interaction completes.
func (h *EventHandler) Deselect() {
	h.clearSelection()
	h.notifySelected(h.canvasItem())
	h.view.Update(UpdateScope{Nodes: true, Relationships: true})
}

// OnNodeClicked pins the node and toggles its selection. A nil node is a
// no-op: the surface may dispatch clicks during transient states such as a
// drag released over empty canvas.
func (h *EventHandler) OnNodeClicked(node *entities.Node) {
	if node == nil {
		return
	}
	observability.InteractionsTotal.WithLabelValues("node_clicked").Inc()

	// Once touched, a node no longer drifts under layout forces.
	node.SetFixed(true)

	if !node.Selected() {
		h.SelectNode(node)
		h.notifySelected(NewNodeItem(node))
	} else {
		h.Deselect()
	}
}

// OnNodeUnlock releases the node back to the layout and always deselects,
// never re-selects. A nil node is a no-op.
func (h *EventHandler) OnNodeUnlock(node *entities.Node) {
	if node == nil {
		return
	}
	observability.InteractionsTotal.WithLabelValues("node_unlock").Inc()

	node.SetFixed(false)
	h.Deselect()
}

// OnRelationshipClicked toggles the relationship's selection. There is no
// pinning concept for relationships.
func (h *EventHandler) OnRelationshipClicked(rel *entities.Relationship) {
	if rel == nil {
		return
	}
	observability.InteractionsTotal.WithLabelValues("relationship_clicked").Inc()

	if !rel.Selected() {
		h.SelectRelationship(rel)
		h.notifySelected(NewRelationshipItem(rel))
	} else {
		h.Deselect()
	}
}

// OnCanvasClicked clears any selection.
func (h *EventHandler) OnCanvasClicked() {
	observability.InteractionsTotal.WithLabelValues("canvas_clicked").Inc()
	h.Deselect()
}

// OnNodeMouseOver reports the node as the hovered item. The notification is
// suppressed while the node owns an open context menu: the menu is the
// active surface until it closes.
func (h *EventHandler) OnNodeMouseOver(node *entities.Node) {
	if node == nil {
		return
	}
	if node.ContextMenu() != nil {
		return
	}
	h.notifyMouseOver(NewNodeItem(node))
}

// OnNodeMouseOut reports that nothing is hovered.
func (h *EventHandler) OnNodeMouseOut(node *entities.Node) {
	h.notifyMouseOver(h.canvasItem())
}

// OnMenuMouseOver reports the node's context menu as the hovered item. The
// node must own an attached context menu; dispatching this event for a node
// without one is a wiring bug between the surface and the handler, so it
// fails loudly instead of degrading silently.
func (h *EventHandler) OnMenuMouseOver(node *entities.Node) {
	if node == nil {
		return
	}
	menu := node.ContextMenu()
	if menu == nil {
		panic(fmt.Sprintf("visualization: menu mouse over dispatched for node %s without an attached context menu", node.ID()))
	}
	h.notifyMouseOver(NewContextMenuItem(menu))
}

// OnMenuMouseOut reports that nothing is hovered.
func (h *EventHandler) OnMenuMouseOut(node *entities.Node) {
	h.notifyMouseOver(h.canvasItem())
}

// OnRelMouseOver reports the relationship as the hovered item.
func (h *EventHandler) OnRelMouseOver(rel *entities.Relationship) {
	if rel == nil {
		return
	}
	h.notifyMouseOver(NewRelationshipItem(rel))
}

// OnRelMouseOut reports that nothing is hovered.
func (h *EventHandler) OnRelMouseOut(rel *entities.Relationship) {
	h.notifyMouseOver(h.canvasItem())
}

// OnNodeDblClicked toggles the node between expanded and collapsed. Expansion
// flips the flag before the fetch resolves, so a second double-click while
// the fetch is outstanding reads as a collapse rather than a duplicate
// fetch. The stale result is still applied when it arrives.
func (h *EventHandler) OnNodeDblClicked(node *entities.Node) {
	if node == nil {
		return
	}

	if node.Expanded() {
		observability.InteractionsTotal.WithLabelValues("node_collapsed").Inc()
		node.SetExpanded(false)
		h.graph.Collapse(node.ID())
		h.view.Update(UpdateScope{Nodes: true, Relationships: true})
		h.graphModelChanged()
		return
	}

	observability.InteractionsTotal.WithLabelValues("node_expanded").Inc()
	node.SetExpanded(true)

	known := h.graph.NeighborIDs(node.ID())
	knownIDs := make([]string, len(known))
	for i, id := range known {
		knownIDs[i] = id.String()
	}

	originID := node.ID()
	h.neighbors.FetchNeighbors(node, knownIDs, func(rawNodes []RawNode, rawRels []RawRelationship) {
		h.applyExpansion(originID, rawNodes, rawRels)
	})
}

// OnNodeClose removes the node and everything incident to it. Incident
// relationships go first so the graph's referential invariant holds at
// every intermediate step. The selection is cleared unconditionally:
// closing the selected node must not leave a dangling selection.
func (h *EventHandler) OnNodeClose(node *entities.Node) {
	if node == nil {
		return
	}
	observability.InteractionsTotal.WithLabelValues("node_closed").Inc()

	if err := h.graph.RemoveNode(node.ID()); err != nil {
		h.logger.Warn("node close on unknown node",
			zap.String("node_id", node.ID().String()),
			zap.Error(err))
	}
	h.Deselect()
	h.view.Update(UpdateScope{Nodes: true, Relationships: true})
	h.graphModelChanged()
}

// applyExpansion merges a neighbor fetch result into the graph. Nodes are
// merged before relationships so relationship endpoints resolve against the
// updated node set. Mapping failures leave the graph untouched; the
// expanded flag stays set.
func (h *EventHandler) applyExpansion(originID valueobjects.ItemID, rawNodes []RawNode, rawRels []RawRelationship) {
	nodes, err := MapNodes(rawNodes)
	if err != nil {
		observability.NeighborFetchErrors.Inc()
		h.logger.Error("discarding expansion result: bad node records",
			zap.String("origin_id", originID.String()),
			zap.Error(err))
		return
	}
	h.graph.MergeNodesFrom(originID, nodes)

	rels, err := MapRelationships(rawRels, h.graph)
	if err != nil {
		observability.NeighborFetchErrors.Inc()
		h.logger.Error("discarding expansion relationships: bad relationship records",
			zap.String("origin_id", originID.String()),
			zap.Error(err))
	} else {
		h.graph.MergeRelationshipsFrom(originID, rels)
	}

	h.view.Update(UpdateScope{Nodes: true, Relationships: true})
	h.graphModelChanged()
}

func (h *EventHandler) clearSelection() {
	switch h.selected.kind {
	case selectionNode:
		h.selected.node.Deselect()
	case selectionRelationship:
		h.selected.rel.Deselect()
	}
	h.selected = selection{kind: selectionNone}
}

func (h *EventHandler) graphModelChanged() {
	if h.callbacks.OnGraphModelChange != nil {
		h.callbacks.OnGraphModelChange(GetGraphStats(h.graph))
	}
}

func (h *EventHandler) canvasItem() CanvasItem {
	return CanvasItem{
		NodeCount:         h.graph.NodeCount(),
		RelationshipCount: h.graph.RelationshipCount(),
	}
}

func (h *EventHandler) notifyMouseOver(item Item) {
	if h.callbacks.OnItemMouseOver != nil {
		h.callbacks.OnItemMouseOver(item)
	}
}

func (h *EventHandler) notifySelected(item Item) {
	if h.callbacks.OnItemSelected != nil {
		h.callbacks.OnItemSelected(item)
	}
}
