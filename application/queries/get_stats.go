package queries

import (
	"context"
	"errors"

	"graphbrowser/application/session"
	"graphbrowser/visualization"
)

// GetStatsQuery requests a session's aggregate graph statistics.
type GetStatsQuery struct {
	SessionID string `json:"session_id"`
}

// Validate validates the query
func (q GetStatsQuery) Validate() error {
	if q.SessionID == "" {
		return errors.New("session ID is required")
	}
	return nil
}

// GetStatsHandler handles the GetStatsQuery
type GetStatsHandler struct {
	sessions *session.Manager
}

// NewGetStatsHandler creates a new handler instance
func NewGetStatsHandler(sessions *session.Manager) *GetStatsHandler {
	return &GetStatsHandler{sessions: sessions}
}

// Handle executes the query
func (h *GetStatsHandler) Handle(ctx context.Context, q GetStatsQuery) (visualization.Stats, error) {
	s, err := h.sessions.Get(q.SessionID)
	if err != nil {
		return visualization.Stats{}, err
	}
	return s.Stats(ctx)
}
