package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"graphbrowser/application/session"
	"graphbrowser/domain/core/entities"
)

// AttachMenuCommand attaches a context menu to a node, making the menu the
// node's active hover surface until it is detached.
type AttachMenuCommand struct {
	SessionID string `json:"session_id" validate:"required"`
	NodeID    string `json:"node_id" validate:"required"`
	Label     string `json:"label" validate:"required"`
	Content   string `json:"content"`
	Selection string `json:"selection"`
}

// Validate validates the command
func (cmd AttachMenuCommand) Validate() error {
	if cmd.SessionID == "" {
		return errors.New("session ID is required")
	}
	if cmd.NodeID == "" {
		return errors.New("node ID is required")
	}
	if cmd.Label == "" {
		return errors.New("label is required")
	}
	return nil
}

// DetachMenuCommand removes a node's context menu.
type DetachMenuCommand struct {
	SessionID string `json:"session_id" validate:"required"`
	NodeID    string `json:"node_id" validate:"required"`
}

// Validate validates the command
func (cmd DetachMenuCommand) Validate() error {
	if cmd.SessionID == "" {
		return errors.New("session ID is required")
	}
	if cmd.NodeID == "" {
		return errors.New("node ID is required")
	}
	return nil
}

// ContextMenuHandler handles menu attach and detach commands
type ContextMenuHandler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewContextMenuHandler creates a new handler instance
func NewContextMenuHandler(sessions *session.Manager, logger *zap.Logger) *ContextMenuHandler {
	return &ContextMenuHandler{sessions: sessions, logger: logger}
}

// HandleAttach executes the attach menu command
func (h *ContextMenuHandler) HandleAttach(ctx context.Context, cmd AttachMenuCommand) error {
	s, err := h.sessions.Get(cmd.SessionID)
	if err != nil {
		return err
	}
	return s.AttachMenu(ctx, cmd.NodeID, entities.ContextMenu{
		Label:     cmd.Label,
		Content:   cmd.Content,
		Selection: cmd.Selection,
	})
}

// HandleDetach executes the detach menu command
func (h *ContextMenuHandler) HandleDetach(ctx context.Context, cmd DetachMenuCommand) error {
	s, err := h.sessions.Get(cmd.SessionID)
	if err != nil {
		return err
	}
	return s.DetachMenu(ctx, cmd.NodeID)
}
