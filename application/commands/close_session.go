package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"graphbrowser/application/session"
)

// CloseSessionCommand tears down an exploration session.
type CloseSessionCommand struct {
	SessionID string `json:"session_id" validate:"required"`
	UserID    string `json:"user_id"`
}

// Validate validates the command
func (cmd CloseSessionCommand) Validate() error {
	if cmd.SessionID == "" {
		return errors.New("session ID is required")
	}
	return nil
}

// CloseSessionHandler handles the CloseSessionCommand
type CloseSessionHandler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewCloseSessionHandler creates a new handler instance
func NewCloseSessionHandler(sessions *session.Manager, logger *zap.Logger) *CloseSessionHandler {
	return &CloseSessionHandler{sessions: sessions, logger: logger}
}

// Handle executes the close session command
func (h *CloseSessionHandler) Handle(ctx context.Context, cmd CloseSessionCommand) error {
	return h.sessions.Close(cmd.SessionID)
}
