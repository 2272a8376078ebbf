package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphbrowser/application/ports"
	"graphbrowser/domain/core/entities"
	"graphbrowser/pkg/errors"
	"graphbrowser/visualization"
)

// stubSource serves a fixed seed and a fixed neighborhood.
type stubSource struct {
	mu         sync.Mutex
	seed       *ports.QueryResult
	neighbors  *ports.QueryResult
	fetchCalls int
	lastKnown  []string
}

func (s *stubSource) RunSeedQuery(ctx context.Context, cypher string, params map[string]any, limit int) (*ports.QueryResult, error) {
	return s.seed, nil
}

func (s *stubSource) FetchNeighbors(ctx context.Context, nodeID string, known []string, limit int) (*ports.QueryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchCalls++
	s.lastKnown = known
	if s.neighbors == nil {
		return &ports.QueryResult{}, nil
	}
	return s.neighbors, nil
}

// memPublisher records published view messages.
type memPublisher struct {
	mu       sync.Mutex
	messages []ports.ViewMessage
}

func (p *memPublisher) Publish(sessionID string, msg ports.ViewMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
}

func (p *memPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	for i, m := range p.messages {
		out[i] = m.Kind
	}
	return out
}

func seedResult() *ports.QueryResult {
	return &ports.QueryResult{
		Nodes: []visualization.RawNode{
			{ID: "n1", Labels: []string{"Person"}, Properties: map[string]any{"name": "alice"}},
			{ID: "n2", Labels: []string{"Person"}},
		},
		Relationships: []visualization.RawRelationship{
			{ID: "r1", Type: "KNOWS", StartID: "n1", EndID: "n2"},
		},
	}
}

func openTestSession(t *testing.T, source *stubSource, publisher *memPublisher) (*Manager, *Session) {
	t.Helper()
	m := NewManager(source, publisher, nil, nil)
	t.Cleanup(m.Shutdown)

	s, err := m.Open(context.Background(), "user-1", "MATCH (n) RETURN n", nil)
	require.NoError(t, err)
	return m, s
}

func TestOpenRejectsInvalidSeedRecords(t *testing.T) {
	seed := seedResult()
	seed.Nodes[0].ID = "  "

	m := NewManager(&stubSource{seed: seed}, &memPublisher{}, nil, nil)
	t.Cleanup(m.Shutdown)

	_, err := m.Open(context.Background(), "user-1", "MATCH (n) RETURN n", nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestOpenSeedsGraph(t *testing.T) {
	publisher := &memPublisher{}
	_, s := openTestSession(t, &stubSource{seed: seedResult()}, publisher)

	data, err := s.Data(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 2)
	assert.Len(t, data.Relationships, 1)
	assert.Equal(t, 2, data.Stats.NodeCount)

	// Binding the handler pushes one initial canvas notification.
	require.Eventually(t, func() bool {
		for _, kind := range publisher.kinds() {
			if kind == ports.ViewMessageMouseOver {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestApplySelection(t *testing.T) {
	publisher := &memPublisher{}
	_, s := openTestSession(t, &stubSource{seed: seedResult()}, publisher)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, InteractionNodeClicked, "n1"))

	data, err := s.Data(ctx)
	require.NoError(t, err)
	for _, n := range data.Nodes {
		if n.ID == "n1" {
			assert.True(t, n.Selected)
			assert.True(t, n.Fixed)
		} else {
			assert.False(t, n.Selected)
		}
	}

	// Unknown targets are silent no-ops.
	require.NoError(t, s.Apply(ctx, InteractionNodeClicked, "missing"))
	require.NoError(t, s.Apply(ctx, InteractionNodeClicked, ""))
}

func TestApplyExpansionRunsOnLoop(t *testing.T) {
	source := &stubSource{
		seed: seedResult(),
		neighbors: &ports.QueryResult{
			Nodes: []visualization.RawNode{{ID: "n3", Labels: []string{"Person"}}},
			Relationships: []visualization.RawRelationship{
				{ID: "r2", Type: "KNOWS", StartID: "n1", EndID: "n3"},
			},
		},
	}
	_, s := openTestSession(t, source, &memPublisher{})
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, InteractionNodeDblClicked, "n1"))

	require.Eventually(t, func() bool {
		data, err := s.Data(ctx)
		return err == nil && data.Stats.NodeCount == 3
	}, time.Second, 5*time.Millisecond)

	source.mu.Lock()
	assert.Equal(t, 1, source.fetchCalls)
	assert.Contains(t, source.lastKnown, "n2")
	source.mu.Unlock()

	// Second double-click collapses without another fetch.
	require.NoError(t, s.Apply(ctx, InteractionNodeDblClicked, "n1"))
	data, err := s.Data(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, data.Stats.NodeCount)
	source.mu.Lock()
	assert.Equal(t, 1, source.fetchCalls)
	source.mu.Unlock()
}

func TestMenuLifecycle(t *testing.T) {
	_, s := openTestSession(t, &stubSource{seed: seedResult()}, &memPublisher{})
	ctx := context.Background()

	menu := entities.ContextMenu{Label: "inspect", Content: "Inspect node", Selection: "n1"}
	require.NoError(t, s.AttachMenu(ctx, "n1", menu))

	data, err := s.Data(ctx)
	require.NoError(t, err)
	for _, n := range data.Nodes {
		if n.ID == "n1" {
			assert.True(t, n.HasMenu)
		}
	}

	require.NoError(t, s.DetachMenu(ctx, "n1"))
	err = s.AttachMenu(ctx, "missing", menu)
	assert.True(t, errors.IsNotFound(err))

	// a menu hover racing a detach is dropped, not dispatched
	require.NoError(t, s.Apply(ctx, InteractionMenuMouseOver, "n1"))
}

func TestClosedSessionRejectsWork(t *testing.T) {
	m, s := openTestSession(t, &stubSource{seed: seedResult()}, &memPublisher{})

	require.NoError(t, m.Close(s.ID()))
	assert.True(t, s.Closed())

	err := s.Apply(context.Background(), InteractionCanvasClicked, "")
	assert.Error(t, err)

	_, err = m.Get(s.ID())
	assert.True(t, errors.IsNotFound(err))
}

func TestManagerList(t *testing.T) {
	m, s := openTestSession(t, &stubSource{seed: seedResult()}, &memPublisher{})

	other, err := m.Open(context.Background(), "user-2", "MATCH (n) RETURN n", nil)
	require.NoError(t, err)

	assert.Len(t, m.List(""), 2)
	mine := m.List("user-1")
	require.Len(t, mine, 1)
	assert.Equal(t, s.ID(), mine[0].ID())
	assert.Equal(t, "user-2", other.UserID())
}

func TestParseInteractionKind(t *testing.T) {
	kind, err := ParseInteractionKind("node_clicked")
	require.NoError(t, err)
	assert.Equal(t, InteractionNodeClicked, kind)

	_, err = ParseInteractionKind("node_teleported")
	assert.Error(t, err)
}
