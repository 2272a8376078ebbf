package queries

import (
	"context"
	"errors"

	"graphbrowser/application/session"
)

// GetGraphDataQuery requests a snapshot of a session's graph contents.
type GetGraphDataQuery struct {
	SessionID string `json:"session_id"`
}

// Validate validates the query
func (q GetGraphDataQuery) Validate() error {
	if q.SessionID == "" {
		return errors.New("session ID is required")
	}
	return nil
}

// GetGraphDataHandler handles the GetGraphDataQuery
type GetGraphDataHandler struct {
	sessions *session.Manager
}

// NewGetGraphDataHandler creates a new handler instance
func NewGetGraphDataHandler(sessions *session.Manager) *GetGraphDataHandler {
	return &GetGraphDataHandler{sessions: sessions}
}

// Handle executes the query
func (h *GetGraphDataHandler) Handle(ctx context.Context, q GetGraphDataQuery) (*session.GraphData, error) {
	s, err := h.sessions.Get(q.SessionID)
	if err != nil {
		return nil, err
	}
	return s.Data(ctx)
}
