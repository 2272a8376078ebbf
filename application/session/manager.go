package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"graphbrowser/application/ports"
	"graphbrowser/domain/config"
	"graphbrowser/domain/core/aggregates"
	"graphbrowser/domain/core/validators"
	"graphbrowser/pkg/errors"
	"graphbrowser/visualization"
)

// Manager owns the live exploration sessions. Sessions are created by
// running a seed query, looked up by id, and reaped once idle past the
// configured timeout.
type Manager struct {
	source    ports.GraphSource
	publisher ports.ViewPublisher
	cfg       *config.DomainConfig
	validator *validators.RecordValidator
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	stop     chan struct{}
	stopOnce sync.Once
}

const sweepInterval = time.Minute

// NewManager creates a session manager and starts its idle sweep.
func NewManager(source ports.GraphSource, publisher ports.ViewPublisher, cfg *config.DomainConfig, logger *zap.Logger) *Manager {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		source:    source,
		publisher: publisher,
		cfg:       cfg,
		validator: validators.NewRecordValidator(cfg),
		logger:    logger,
		sessions:  make(map[string]*Session),
		stop:      make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Open runs the seed query and builds a session around its results.
func (m *Manager) Open(ctx context.Context, userID, cypher string, params map[string]any) (*Session, error) {
	result, err := m.source.RunSeedQuery(ctx, cypher, params, m.cfg.InitialNodeDisplay)
	if err != nil {
		return nil, errors.Wrap(err, "seed query failed")
	}
	if err := validateResult(m.validator, result); err != nil {
		return nil, err
	}

	nodes, err := visualization.MapNodes(result.Nodes)
	if err != nil {
		return nil, err
	}
	rels, err := visualization.MapRelationships(result.Relationships, visualization.NodeSetOf(nodes))
	if err != nil {
		return nil, err
	}

	graph := aggregates.NewGraphWithConfig(m.cfg)
	if err := graph.Populate(nodes, rels); err != nil {
		return nil, err
	}

	s := NewSession(uuid.New().String(), userID, graph, m.source, m.publisher, m.cfg, m.logger)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.logger.Info("session opened",
		zap.String("session_id", s.ID()),
		zap.String("user_id", userID),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("relationships", graph.RelationshipCount()))

	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session")
	}
	return s, nil
}

// Close tears down the session with the given id.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return errors.NewNotFoundError("session")
	}
	s.Close()
	m.logger.Info("session closed", zap.String("session_id", id))
	return nil
}

// List returns the live sessions, filtered by owner when userID is set.
func (m *Manager) List(userID string) []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if userID != "" && s.UserID() != userID {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Shutdown stops the sweep and closes every session.
func (m *Manager) Shutdown() {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.Close()
		delete(m.sessions, id)
	}
}

// validateResult checks every raw record in a batch; one bad record
// rejects the batch.
func validateResult(v *validators.RecordValidator, result *ports.QueryResult) error {
	for _, n := range result.Nodes {
		if err := v.ValidateNodeRecord(n.ID, n.Labels, n.Properties); err != nil {
			return err
		}
	}
	for _, r := range result.Relationships {
		if err := v.ValidateRelationshipRecord(r.ID, r.Type, r.StartID, r.EndID, r.Properties); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.reapIdle()
		}
	}
}

func (m *Manager) reapIdle() {
	cutoff := time.Now().Add(-m.cfg.SessionIdleTimeout)

	m.mu.Lock()
	var reaped []*Session
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			reaped = append(reaped, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range reaped {
		s.Close()
		m.logger.Info("idle session reaped", zap.String("session_id", s.ID()))
	}
}
