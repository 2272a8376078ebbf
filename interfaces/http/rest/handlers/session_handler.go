package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"graphbrowser/application/commands"
	commandbus "graphbrowser/application/commands/bus"
	"graphbrowser/application/queries"
	querybus "graphbrowser/application/queries/bus"
	"graphbrowser/application/session"
	"graphbrowser/interfaces/http/rest/middleware"
	"graphbrowser/interfaces/ws"
	"graphbrowser/pkg/common"
	"graphbrowser/pkg/errors"
)

const maxBodyBytes = 1 << 20

// SessionHandler handles session-related HTTP requests
type SessionHandler struct {
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	hub        *ws.Hub
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	hub *ws.Hub,
	logger *zap.Logger,
) *SessionHandler {
	return &SessionHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		hub:        hub,
		validate:   validator.New(),
		logger:     logger,
	}
}

type createSessionRequest struct {
	Query  string         `json:"query" validate:"required"`
	Params map[string]any `json:"params"`
}

type createSessionResponse struct {
	SessionID string             `json:"sessionId"`
	Graph     *session.GraphData `json:"graph"`
}

type postEventRequest struct {
	Kind   string `json:"kind" validate:"required"`
	ItemID string `json:"itemId"`
}

type attachMenuRequest struct {
	Label     string `json:"label" validate:"required,max=100"`
	Content   string `json:"content" validate:"max=2000"`
	Selection string `json:"selection" validate:"max=255"`
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.OpenSessionCommand{
		UserID: middleware.UserID(r.Context()),
		Query:  req.Query,
		Params: req.Params,
	})
	if err != nil {
		h.logger.Error("Failed to open session", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	s, ok := result.(*session.Session)
	if !ok {
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected command result")
		return
	}

	data, err := s.Data(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: s.ID(),
		Graph:     data,
	})
}

// ListSessions handles GET /sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListSessionsQuery{
		UserID: middleware.UserID(r.Context()),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetGraphData handles GET /sessions/{sessionID}/graph
func (h *SessionHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetGraphDataQuery{SessionID: sessionID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetStats handles GET /sessions/{sessionID}/stats
func (h *SessionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetStatsQuery{SessionID: sessionID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// PostEvent handles POST /sessions/{sessionID}/events
func (h *SessionHandler) PostEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req postEventRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	_, err := h.commandBus.Send(r.Context(), commands.InteractCommand{
		SessionID: sessionID,
		UserID:    middleware.UserID(r.Context()),
		Kind:      req.Kind,
		ItemID:    req.ItemID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "applied"})
}

// AttachMenu handles POST /sessions/{sessionID}/nodes/{nodeID}/menu
func (h *SessionHandler) AttachMenu(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	nodeID := chi.URLParam(r, "nodeID")

	var req attachMenuRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	_, err := h.commandBus.Send(r.Context(), commands.AttachMenuCommand{
		SessionID: sessionID,
		NodeID:    nodeID,
		Label:     req.Label,
		Content:   req.Content,
		Selection: req.Selection,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "attached"})
}

// DetachMenu handles DELETE /sessions/{sessionID}/nodes/{nodeID}/menu
func (h *SessionHandler) DetachMenu(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	nodeID := chi.URLParam(r, "nodeID")

	_, err := h.commandBus.Send(r.Context(), commands.DetachMenuCommand{
		SessionID: sessionID,
		NodeID:    nodeID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "detached"})
}

// CloseSession handles DELETE /sessions/{sessionID}
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	_, err := h.commandBus.Send(r.Context(), commands.CloseSessionCommand{
		SessionID: sessionID,
		UserID:    middleware.UserID(r.Context()),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	h.hub.CloseSession(sessionID)
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// Subscribe handles GET /sessions/{sessionID}/ws
func (h *SessionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	// Reject unknown sessions before upgrading the connection.
	if _, err := h.queryBus.Ask(r.Context(), queries.GetStatsQuery{SessionID: sessionID}); err != nil {
		if errors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "session not found")
			return
		}
		common.RespondAppError(w, err)
		return
	}

	h.hub.Subscribe(w, r, sessionID)
}
