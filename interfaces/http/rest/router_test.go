package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"graphbrowser/application/ports"
	"graphbrowser/application/session"
	"graphbrowser/infrastructure/config"
	"graphbrowser/infrastructure/di"
	"graphbrowser/interfaces/ws"
	"graphbrowser/visualization"
)

type stubSource struct {
	seed      *ports.QueryResult
	neighbors *ports.QueryResult
}

func (s *stubSource) RunSeedQuery(ctx context.Context, cypher string, params map[string]any, limit int) (*ports.QueryResult, error) {
	return s.seed, nil
}

func (s *stubSource) FetchNeighbors(ctx context.Context, nodeID string, knownNeighborIDs []string, limit int) (*ports.QueryResult, error) {
	if s.neighbors == nil {
		return &ports.QueryResult{}, nil
	}
	return s.neighbors, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testHandler(t *testing.T) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	source := &stubSource{
		seed: &ports.QueryResult{
			Nodes: []visualization.RawNode{
				{ID: "n1", Labels: []string{"Person"}, Properties: map[string]any{"name": "alice"}},
				{ID: "n2", Labels: []string{"Person"}, Properties: map[string]any{"name": "bob"}},
			},
			Relationships: []visualization.RawRelationship{
				{ID: "r1", Type: "KNOWS", StartID: "n1", EndID: "n2"},
			},
		},
	}

	hub := ws.NewHub(logger)
	manager := session.NewManager(source, hub, nil, logger)
	t.Cleanup(manager.Shutdown)

	cfg := &config.Config{
		ServerAddress: ":0",
		Environment:   "development",
		EnableAuth:    false,
		EnableCORS:    false,
	}

	router := NewRouter(
		cfg,
		di.ProvideCommandBus(manager, logger),
		di.ProvideQueryBus(manager),
		hub,
		nil,
		logger,
	)
	return router.Setup()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	}
	return rec, env
}

func openSession(t *testing.T, handler http.Handler) string {
	t.Helper()

	rec, env := doJSON(t, handler, http.MethodPost, "/api/v1/sessions", map[string]any{
		"query": "MATCH (n) RETURN n",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		SessionID string             `json:"sessionId"`
		Graph     *session.GraphData `json:"graph"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.SessionID)
	return created.SessionID
}

func TestCreateSessionSeedsGraph(t *testing.T) {
	handler := testHandler(t)

	rec, env := doJSON(t, handler, http.MethodPost, "/api/v1/sessions", map[string]any{
		"query": "MATCH (n) RETURN n LIMIT 25",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, env.Success)

	var created struct {
		SessionID string             `json:"sessionId"`
		Graph     *session.GraphData `json:"graph"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.SessionID)
	require.NotNil(t, created.Graph)
	assert.Len(t, created.Graph.Nodes, 2)
	assert.Len(t, created.Graph.Relationships, 1)
	assert.Equal(t, 2, created.Graph.Stats.NodeCount)
}

func TestCreateSessionRejectsMissingQuery(t *testing.T) {
	handler := testHandler(t)

	rec, env := doJSON(t, handler, http.MethodPost, "/api/v1/sessions", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestPostEventSelectsNode(t *testing.T) {
	handler := testHandler(t)
	sessionID := openSession(t, handler)

	rec, _ := doJSON(t, handler, http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/events", sessionID), map[string]any{
		"kind":   "node_clicked",
		"itemId": "n1",
	})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	rec, env := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s/graph", sessionID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data session.GraphData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	selected := map[string]bool{}
	for _, n := range data.Nodes {
		selected[n.ID] = n.Selected
	}
	assert.True(t, selected["n1"])
	assert.False(t, selected["n2"])
}

func TestPostEventRejectsUnknownKind(t *testing.T) {
	handler := testHandler(t)
	sessionID := openSession(t, handler)

	rec, env := doJSON(t, handler, http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/events", sessionID), map[string]any{
		"kind": "triple_clicked",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
}

func TestMenuAttachAndDetach(t *testing.T) {
	handler := testHandler(t)
	sessionID := openSession(t, handler)

	rec, _ := doJSON(t, handler, http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/nodes/n1/menu", sessionID), map[string]any{
		"label":     "Expand",
		"content":   "…",
		"selection": "expand",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s/graph", sessionID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var data session.GraphData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	hasMenu := map[string]bool{}
	for _, n := range data.Nodes {
		hasMenu[n.ID] = n.HasMenu
	}
	assert.True(t, hasMenu["n1"])

	rec, _ = doJSON(t, handler, http.MethodDelete, fmt.Sprintf("/api/v1/sessions/%s/nodes/n1/menu", sessionID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatsAndList(t *testing.T) {
	handler := testHandler(t)
	sessionID := openSession(t, handler)

	rec, env := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s/stats", sessionID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats visualization.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.NodeCount)
	assert.Equal(t, 1, stats.RelationshipCount)

	rec, env = doJSON(t, handler, http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var infos []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, sessionID, infos[0]["sessionId"])
}

func TestCloseSessionMakesItUnreachable(t *testing.T) {
	handler := testHandler(t)
	sessionID := openSession(t, handler)

	rec, _ := doJSON(t, handler, http.MethodDelete, "/api/v1/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s/stats", sessionID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
}

func TestUnknownSessionReturnsNotFound(t *testing.T) {
	handler := testHandler(t)

	rec, _ := doJSON(t, handler, http.MethodGet, "/api/v1/sessions/missing/graph", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	handler := testHandler(t)

	rec, _ := doJSON(t, handler, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, handler, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
