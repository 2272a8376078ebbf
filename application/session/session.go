package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"graphbrowser/application/ports"
	"graphbrowser/domain/config"
	"graphbrowser/domain/core/aggregates"
	"graphbrowser/domain/core/entities"
	"graphbrowser/domain/core/validators"
	"graphbrowser/domain/core/valueobjects"
	"graphbrowser/pkg/errors"
	"graphbrowser/pkg/observability"
	"graphbrowser/visualization"
)

// Session owns one client's exploration: a graph aggregate and the event
// handler driving it. All access runs through a single goroutine draining
// the task channel, which gives the handler the serialized event delivery
// it requires. The neighbor fetch runs on its own goroutine and re-enters
// by posting its callback onto the same channel, so results apply in
// arrival order.
type Session struct {
	id        string
	userID    string
	graph     *aggregates.Graph
	handler   *visualization.EventHandler
	publisher ports.ViewPublisher
	logger    *zap.Logger

	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once

	mu         sync.Mutex
	lastActive time.Time
}

// NodeView is the wire representation of a node in graph-data responses.
type NodeView struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
	Selected   bool           `json:"selected"`
	Fixed      bool           `json:"fixed"`
	Expanded   bool           `json:"expanded"`
	HasMenu    bool           `json:"hasMenu"`
}

// RelationshipView is the wire representation of a relationship.
type RelationshipView struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	StartID    string         `json:"startId"`
	EndID      string         `json:"endId"`
	Properties map[string]any `json:"properties"`
	Selected   bool           `json:"selected"`
}

// GraphData is a point-in-time snapshot of a session's graph.
type GraphData struct {
	SessionID     string              `json:"sessionId"`
	Nodes         []NodeView          `json:"nodes"`
	Relationships []RelationshipView  `json:"relationships"`
	Stats         visualization.Stats `json:"stats"`
}

// NewSession builds a session around an already-populated graph and starts
// its event loop. The initial canvas notification is emitted once the loop
// runs the bind task.
func NewSession(
	id string,
	userID string,
	graph *aggregates.Graph,
	source ports.GraphSource,
	publisher ports.ViewPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *Session {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		id:         id,
		userID:     userID,
		graph:      graph,
		publisher:  publisher,
		logger:     logger.With(zap.String("session_id", id)),
		tasks:      make(chan func(), 64),
		done:       make(chan struct{}),
		lastActive: time.Now(),
	}

	callbacks := visualization.Callbacks{
		OnGraphModelChange: func(stats visualization.Stats) {
			observability.GraphNodes.WithLabelValues(id).Set(float64(stats.NodeCount))
			s.publish(ports.ViewMessageStats, stats)
		},
		OnItemMouseOver: func(item visualization.Item) {
			s.publish(ports.ViewMessageMouseOver, item)
		},
		OnItemSelected: func(item visualization.Item) {
			s.publish(ports.ViewMessageSelected, item)
		},
	}

	s.handler = visualization.NewEventHandler(
		graph,
		&loopSurface{session: s},
		&asyncNeighborSource{
			session:   s,
			source:    source,
			validator: validators.NewRecordValidator(cfg),
			limit:     cfg.MaxNeighbours,
		},
		callbacks,
		s.logger,
	)

	go s.loop()
	s.post(s.handler.Bind)

	observability.SessionsTotal.Inc()
	observability.SessionsActive.Inc()
	observability.GraphNodes.WithLabelValues(id).Set(float64(graph.NodeCount()))

	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// UserID returns the owner of the session.
func (s *Session) UserID() string { return s.userID }

// CreatedAt returns when the session's graph was seeded.
func (s *Session) CreatedAt() time.Time { return s.graph.CreatedAt() }

// LastActive returns the time of the session's most recent interaction.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Apply relays one interaction event onto the session loop and waits for
// the handler to process it.
func (s *Session) Apply(ctx context.Context, kind InteractionKind, itemID string) error {
	s.touch()
	return s.run(ctx, func() {
		s.dispatch(kind, itemID)
	})
}

// Data snapshots the graph's current contents.
func (s *Session) Data(ctx context.Context) (*GraphData, error) {
	s.touch()
	var data *GraphData
	err := s.run(ctx, func() {
		data = s.snapshot()
	})
	return data, err
}

// Stats snapshots the graph's aggregate statistics.
func (s *Session) Stats(ctx context.Context) (visualization.Stats, error) {
	s.touch()
	var stats visualization.Stats
	err := s.run(ctx, func() {
		stats = visualization.GetGraphStats(s.graph)
	})
	return stats, err
}

// AttachMenu attaches a context menu to a node, making the menu the active
// hover surface for that node.
func (s *Session) AttachMenu(ctx context.Context, nodeID string, menu entities.ContextMenu) error {
	s.touch()
	var opErr error
	err := s.run(ctx, func() {
		node, err := s.lookupNode(nodeID)
		if err != nil {
			opErr = err
			return
		}
		opErr = node.AttachContextMenu(&menu)
	})
	if err != nil {
		return err
	}
	return opErr
}

// DetachMenu removes a node's context menu.
func (s *Session) DetachMenu(ctx context.Context, nodeID string) error {
	s.touch()
	var opErr error
	err := s.run(ctx, func() {
		node, err := s.lookupNode(nodeID)
		if err != nil {
			opErr = err
			return
		}
		node.DetachContextMenu()
	})
	if err != nil {
		return err
	}
	return opErr
}

// Close stops the session loop. Outstanding fetches resolve into a closed
// loop and are dropped.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		observability.SessionsActive.Dec()
		observability.GraphNodes.DeleteLabelValues(s.id)
	})
}

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Session) loop() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.tasks:
			fn()
		}
	}
}

// run enqueues a task and waits for it to finish.
func (s *Session) run(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case s.tasks <- task:
	case <-s.done:
		return errors.NewConflictError("session is closed")
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-s.done:
		return errors.NewConflictError("session is closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post enqueues a task without waiting. Used by the loop-external callers
// that have no result to report, such as resolved neighbor fetches.
func (s *Session) post(fn func()) {
	select {
	case s.tasks <- fn:
	case <-s.done:
	}
}

// dispatch resolves the interaction target and forwards it to the handler.
// Targets the graph no longer knows resolve to nil, which the handler
// treats as a no-op: the client may race against removals.
func (s *Session) dispatch(kind InteractionKind, itemID string) {
	switch kind {
	case InteractionCanvasClicked:
		s.handler.OnCanvasClicked()
	case InteractionNodeMouseOver:
		s.handler.OnNodeMouseOver(s.findNode(itemID))
	case InteractionNodeMouseOut:
		s.handler.OnNodeMouseOut(s.findNode(itemID))
	case InteractionMenuMouseOver:
		// Menu hover on a menu-less node is a handler contract violation
		// (it panics). A client can race a detach, so drop it here.
		node := s.findNode(itemID)
		if node != nil && node.ContextMenu() == nil {
			s.logger.Warn("menu hover for node without a menu",
				zap.String("node_id", itemID))
			return
		}
		s.handler.OnMenuMouseOver(node)
	case InteractionMenuMouseOut:
		s.handler.OnMenuMouseOut(s.findNode(itemID))
	case InteractionNodeClicked:
		s.handler.OnNodeClicked(s.findNode(itemID))
	case InteractionNodeDblClicked:
		s.handler.OnNodeDblClicked(s.findNode(itemID))
	case InteractionNodeUnlock:
		s.handler.OnNodeUnlock(s.findNode(itemID))
	case InteractionNodeClose:
		s.handler.OnNodeClose(s.findNode(itemID))
	case InteractionRelMouseOver:
		s.handler.OnRelMouseOver(s.findRelationship(itemID))
	case InteractionRelMouseOut:
		s.handler.OnRelMouseOut(s.findRelationship(itemID))
	case InteractionRelationshipClicked:
		s.handler.OnRelationshipClicked(s.findRelationship(itemID))
	}
}

func (s *Session) findNode(itemID string) *entities.Node {
	id, err := valueobjects.NewItemIDFromString(itemID)
	if err != nil {
		return nil
	}
	node, err := s.graph.GetNode(id)
	if err != nil {
		return nil
	}
	return node
}

func (s *Session) findRelationship(itemID string) *entities.Relationship {
	id, err := valueobjects.NewItemIDFromString(itemID)
	if err != nil {
		return nil
	}
	rel, err := s.graph.GetRelationship(id)
	if err != nil {
		return nil
	}
	return rel
}

func (s *Session) lookupNode(nodeID string) (*entities.Node, error) {
	id, err := valueobjects.NewItemIDFromString(nodeID)
	if err != nil {
		return nil, err
	}
	return s.graph.GetNode(id)
}

func (s *Session) snapshot() *GraphData {
	nodes := s.graph.Nodes()
	rels := s.graph.Relationships()

	data := &GraphData{
		SessionID:     s.id,
		Nodes:         make([]NodeView, 0, len(nodes)),
		Relationships: make([]RelationshipView, 0, len(rels)),
		Stats:         visualization.GetGraphStats(s.graph),
	}
	for _, node := range nodes {
		data.Nodes = append(data.Nodes, NodeView{
			ID:         node.ID().String(),
			Labels:     node.Labels(),
			Properties: node.Properties().Map(),
			Selected:   node.Selected(),
			Fixed:      node.Fixed(),
			Expanded:   node.Expanded(),
			HasMenu:    node.ContextMenu() != nil,
		})
	}
	for _, rel := range rels {
		data.Relationships = append(data.Relationships, RelationshipView{
			ID:         rel.ID().String(),
			Type:       rel.Type(),
			StartID:    rel.StartID().String(),
			EndID:      rel.EndID().String(),
			Properties: rel.Properties().Map(),
			Selected:   rel.Selected(),
		})
	}
	return data
}

func (s *Session) publish(kind string, payload any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(s.id, ports.ViewMessage{Kind: kind, Payload: payload})
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// loopSurface is the session's view surface: refresh requests become view
// messages pushed to subscribed clients.
type loopSurface struct {
	session *Session
	bound   visualization.Listener
}

func (v *loopSurface) Bind(listener visualization.Listener) {
	v.bound = listener
}

func (v *loopSurface) Update(scope visualization.UpdateScope) {
	v.session.publish(ports.ViewMessageUpdate, scope)
}

// asyncNeighborSource adapts the blocking GraphSource port to the handler's
// callback contract. The query runs on its own goroutine; the result
// re-enters through the session loop so it applies between interaction
// events, never during one.
type asyncNeighborSource struct {
	session   *Session
	source    ports.GraphSource
	validator *validators.RecordValidator
	limit     int
}

const neighborFetchTimeout = 30 * time.Second

func (a *asyncNeighborSource) FetchNeighbors(
	node *entities.Node,
	knownNeighborIDs []string,
	onResult func(nodes []visualization.RawNode, rels []visualization.RawRelationship),
) {
	nodeID := node.ID().String()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), neighborFetchTimeout)
		defer cancel()

		result, err := a.source.FetchNeighbors(ctx, nodeID, knownNeighborIDs, a.limit)
		if err != nil {
			observability.NeighborFetchErrors.Inc()
			a.session.logger.Error("neighbor fetch failed",
				zap.String("node_id", nodeID),
				zap.Error(err))
			return
		}
		if err := validateResult(a.validator, result); err != nil {
			observability.NeighborFetchErrors.Inc()
			a.session.logger.Warn("neighbor batch rejected",
				zap.String("node_id", nodeID),
				zap.Error(err))
			return
		}

		a.session.post(func() {
			onResult(result.Nodes, result.Relationships)
		})
	}()
}
