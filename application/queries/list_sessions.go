package queries

import (
	"context"
	"sort"
	"time"

	"graphbrowser/application/session"
)

// ListSessionsQuery requests the live sessions, optionally filtered by
// their owner.
type ListSessionsQuery struct {
	UserID string `json:"user_id,omitempty"`
}

// Validate validates the query
func (q ListSessionsQuery) Validate() error {
	return nil
}

// SessionInfo summarizes one live session.
type SessionInfo struct {
	SessionID  string    `json:"sessionId"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
}

// ListSessionsHandler handles the ListSessionsQuery
type ListSessionsHandler struct {
	sessions *session.Manager
}

// NewListSessionsHandler creates a new handler instance
func NewListSessionsHandler(sessions *session.Manager) *ListSessionsHandler {
	return &ListSessionsHandler{sessions: sessions}
}

// Handle executes the query
func (h *ListSessionsHandler) Handle(ctx context.Context, q ListSessionsQuery) ([]SessionInfo, error) {
	live := h.sessions.List(q.UserID)

	infos := make([]SessionInfo, 0, len(live))
	for _, s := range live {
		infos = append(infos, SessionInfo{
			SessionID:  s.ID(),
			UserID:     s.UserID(),
			CreatedAt:  s.CreatedAt(),
			LastActive: s.LastActive(),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos, nil
}
