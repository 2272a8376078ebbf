package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"graphbrowser/application/session"
)

// OpenSessionCommand starts a new exploration session by running a seed
// cypher query.
type OpenSessionCommand struct {
	UserID string         `json:"user_id" validate:"required"`
	Query  string         `json:"query" validate:"required"`
	Params map[string]any `json:"params"`
}

// Validate validates the command
func (cmd OpenSessionCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Query == "" {
		return errors.New("query is required")
	}
	return nil
}

// OpenSessionHandler handles the OpenSessionCommand
type OpenSessionHandler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewOpenSessionHandler creates a new handler instance
func NewOpenSessionHandler(sessions *session.Manager, logger *zap.Logger) *OpenSessionHandler {
	return &OpenSessionHandler{sessions: sessions, logger: logger}
}

// Handle executes the open session command
func (h *OpenSessionHandler) Handle(ctx context.Context, cmd OpenSessionCommand) (*session.Session, error) {
	s, err := h.sessions.Open(ctx, cmd.UserID, cmd.Query, cmd.Params)
	if err != nil {
		h.logger.Error("failed to open session",
			zap.String("user_id", cmd.UserID),
			zap.Error(err))
		return nil, err
	}
	return s, nil
}
