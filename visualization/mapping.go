package visualization

import (
	"graphbrowser/domain/core/aggregates"
	"graphbrowser/domain/core/entities"
	"graphbrowser/domain/core/valueobjects"
	"graphbrowser/pkg/errors"
)

// RawNode is a node record as returned by the query backend, before it is
// mapped into a domain entity.
type RawNode struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// RawRelationship is a relationship record as returned by the query backend.
type RawRelationship struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	StartID    string         `json:"startId"`
	EndID      string         `json:"endId"`
	Properties map[string]any `json:"properties"`
}

// Stats is the aggregate snapshot broadcast to the host whenever the graph
// changes shape. It is recomputed whole, never patched.
type Stats struct {
	NodeCount         int            `json:"nodeCount"`
	RelationshipCount int            `json:"relationshipCount"`
	Labels            map[string]int `json:"labels"`
	RelationshipTypes map[string]int `json:"relationshipTypes"`
}

// MapNodes converts raw node records into domain entities. Records with an
// invalid shape are rejected as a whole batch: a partial mapping would leave
// the caller guessing which records made it in.
func MapNodes(raw []RawNode) ([]*entities.Node, error) {
	nodes := make([]*entities.Node, 0, len(raw))
	for _, r := range raw {
		id, err := valueobjects.NewItemIDFromString(r.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "mapping node record %q", r.ID)
		}
		node, err := entities.NewNode(id, r.Labels, valueobjects.NewPropertiesFromMap(r.Properties))
		if err != nil {
			return nil, errors.Wrapf(err, "mapping node record %q", r.ID)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// NodeSet answers endpoint lookups during relationship mapping. The graph
// aggregate satisfies it; NodeSetOf builds one from a mapped node batch
// before the graph is populated.
type NodeSet interface {
	HasNode(id valueobjects.ItemID) bool
}

type nodeIDSet map[valueobjects.ItemID]struct{}

func (s nodeIDSet) HasNode(id valueobjects.ItemID) bool {
	_, ok := s[id]
	return ok
}

// NodeSetOf builds a NodeSet from a batch of mapped nodes.
func NodeSetOf(nodes []*entities.Node) NodeSet {
	set := make(nodeIDSet, len(nodes))
	for _, node := range nodes {
		set[node.ID()] = struct{}{}
	}
	return set
}

// MapRelationships converts raw relationship records into domain entities,
// resolving endpoints against the given node set. Records whose endpoints
// are unknown are skipped rather than rejected: an expansion payload may
// legitimately reference nodes outside the display cap.
func MapRelationships(raw []RawRelationship, nodes NodeSet) ([]*entities.Relationship, error) {
	rels := make([]*entities.Relationship, 0, len(raw))
	for _, r := range raw {
		id, err := valueobjects.NewItemIDFromString(r.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "mapping relationship record %q", r.ID)
		}
		startID, err := valueobjects.NewItemIDFromString(r.StartID)
		if err != nil {
			return nil, errors.Wrapf(err, "mapping relationship record %q", r.ID)
		}
		endID, err := valueobjects.NewItemIDFromString(r.EndID)
		if err != nil {
			return nil, errors.Wrapf(err, "mapping relationship record %q", r.ID)
		}

		if !nodes.HasNode(startID) || !nodes.HasNode(endID) {
			continue
		}

		rel, err := entities.NewRelationship(id, r.Type, startID, endID, valueobjects.NewPropertiesFromMap(r.Properties))
		if err != nil {
			return nil, errors.Wrapf(err, "mapping relationship record %q", r.ID)
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

// GetGraphStats computes the aggregate snapshot for the graph's current
// contents.
func GetGraphStats(graph *aggregates.Graph) Stats {
	stats := Stats{
		NodeCount:         graph.NodeCount(),
		RelationshipCount: graph.RelationshipCount(),
		Labels:            make(map[string]int),
		RelationshipTypes: make(map[string]int),
	}
	for _, node := range graph.Nodes() {
		for _, label := range node.Labels() {
			stats.Labels[label]++
		}
	}
	for _, rel := range graph.Relationships() {
		stats.RelationshipTypes[rel.Type()]++
	}
	return stats
}
