package session

import (
	"graphbrowser/pkg/errors"
)

// InteractionKind names a raw view-surface event relayed by a client. The
// set is closed: anything else is rejected before it reaches the handler.
type InteractionKind string

const (
	InteractionNodeMouseOver       InteractionKind = "node_mouse_over"
	InteractionNodeMouseOut        InteractionKind = "node_mouse_out"
	InteractionMenuMouseOver       InteractionKind = "menu_mouse_over"
	InteractionMenuMouseOut        InteractionKind = "menu_mouse_out"
	InteractionRelMouseOver        InteractionKind = "rel_mouse_over"
	InteractionRelMouseOut         InteractionKind = "rel_mouse_out"
	InteractionRelationshipClicked InteractionKind = "relationship_clicked"
	InteractionCanvasClicked       InteractionKind = "canvas_clicked"
	InteractionNodeClose           InteractionKind = "node_close"
	InteractionNodeClicked         InteractionKind = "node_clicked"
	InteractionNodeDblClicked      InteractionKind = "node_dbl_clicked"
	InteractionNodeUnlock          InteractionKind = "node_unlock"
)

var interactionKinds = map[InteractionKind]bool{
	InteractionNodeMouseOver:       true,
	InteractionNodeMouseOut:        true,
	InteractionMenuMouseOver:       true,
	InteractionMenuMouseOut:        true,
	InteractionRelMouseOver:        true,
	InteractionRelMouseOut:         true,
	InteractionRelationshipClicked: true,
	InteractionCanvasClicked:       true,
	InteractionNodeClose:           true,
	InteractionNodeClicked:         true,
	InteractionNodeDblClicked:      true,
	InteractionNodeUnlock:          true,
}

// ParseInteractionKind validates a client-supplied interaction kind.
func ParseInteractionKind(s string) (InteractionKind, error) {
	kind := InteractionKind(s)
	if !interactionKinds[kind] {
		return "", errors.NewValidationError("unknown interaction kind: " + s)
	}
	return kind, nil
}
