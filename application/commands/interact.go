package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"graphbrowser/application/session"
)

// InteractCommand relays one raw view-surface event into a session.
type InteractCommand struct {
	SessionID string `json:"session_id" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	Kind      string `json:"kind" validate:"required"`
	ItemID    string `json:"item_id"`
}

// Validate validates the command
func (cmd InteractCommand) Validate() error {
	if cmd.SessionID == "" {
		return errors.New("session ID is required")
	}
	if cmd.Kind == "" {
		return errors.New("interaction kind is required")
	}
	if _, err := session.ParseInteractionKind(cmd.Kind); err != nil {
		return err
	}
	return nil
}

// InteractHandler handles the InteractCommand
type InteractHandler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewInteractHandler creates a new handler instance
func NewInteractHandler(sessions *session.Manager, logger *zap.Logger) *InteractHandler {
	return &InteractHandler{sessions: sessions, logger: logger}
}

// Handle executes the interact command
func (h *InteractHandler) Handle(ctx context.Context, cmd InteractCommand) error {
	s, err := h.sessions.Get(cmd.SessionID)
	if err != nil {
		return err
	}

	kind, err := session.ParseInteractionKind(cmd.Kind)
	if err != nil {
		return err
	}

	if err := s.Apply(ctx, kind, cmd.ItemID); err != nil {
		h.logger.Warn("interaction not applied",
			zap.String("session_id", cmd.SessionID),
			zap.String("kind", cmd.Kind),
			zap.Error(err))
		return err
	}
	return nil
}
