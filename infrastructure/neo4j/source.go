package neo4j

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"graphbrowser/application/ports"
	"graphbrowser/pkg/observability"
	"graphbrowser/visualization"
)

const neighborQuery = `
MATCH (origin)-[r]-(neighbor)
WHERE elementId(origin) = $id AND NOT elementId(neighbor) IN $known
RETURN neighbor, r
LIMIT $limit`

// Source serves seed queries and neighbor expansions from a neo4j database.
// Graph values in the result records are identified by element id, which is
// what sessions use as item ids throughout.
type Source struct {
	runner DBRunner
	logger *zap.Logger
}

var _ ports.GraphSource = (*Source)(nil)

// NewSource creates a graph source on top of a query runner.
func NewSource(runner DBRunner, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{runner: runner, logger: logger}
}

// RunSeedQuery executes the caller's cypher statement and collects every
// node and relationship the records carry. The node set is truncated at the
// display limit; relationships referencing truncated nodes are dropped
// later during mapping.
func (s *Source) RunSeedQuery(ctx context.Context, cypher string, params map[string]any, limit int) (*ports.QueryResult, error) {
	result, err := s.runner.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	collected := collectGraphValues(result)
	if limit > 0 && len(collected.Nodes) > limit {
		s.logger.Info("seed query truncated at display limit",
			zap.Int("returned", len(collected.Nodes)),
			zap.Int("limit", limit))
		collected.Nodes = collected.Nodes[:limit]
	}
	return collected, nil
}

// FetchNeighbors returns the neighborhood of a node, excluding known ids.
func (s *Source) FetchNeighbors(ctx context.Context, nodeID string, knownNeighborIDs []string, limit int) (*ports.QueryResult, error) {
	timer := prometheus.NewTimer(observability.NeighborFetchSeconds)
	defer timer.ObserveDuration()

	if knownNeighborIDs == nil {
		knownNeighborIDs = []string{}
	}
	if limit <= 0 {
		limit = 100
	}

	result, err := s.runner.Run(ctx, neighborQuery, map[string]interface{}{
		"id":    nodeID,
		"known": knownNeighborIDs,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}
	return collectGraphValues(result), nil
}

// collector deduplicates graph values by element id while preserving the
// order they first appeared in.
type collector struct {
	nodes     []visualization.RawNode
	rels      []visualization.RawRelationship
	seenNodes map[string]bool
	seenRels  map[string]bool
}

func collectGraphValues(result *neo4j.EagerResult) *ports.QueryResult {
	c := &collector{
		seenNodes: make(map[string]bool),
		seenRels:  make(map[string]bool),
	}
	for _, record := range result.Records {
		for _, value := range record.Values {
			c.add(value)
		}
	}
	return &ports.QueryResult{
		Nodes:         c.nodes,
		Relationships: c.rels,
	}
}

func (c *collector) add(value any) {
	switch v := value.(type) {
	case neo4j.Node:
		c.addNode(v)
	case neo4j.Relationship:
		c.addRelationship(v)
	case neo4j.Path:
		for _, node := range v.Nodes {
			c.addNode(node)
		}
		for _, rel := range v.Relationships {
			c.addRelationship(rel)
		}
	case []any:
		for _, item := range v {
			c.add(item)
		}
	}
}

func (c *collector) addNode(node neo4j.Node) {
	if c.seenNodes[node.ElementId] {
		return
	}
	c.seenNodes[node.ElementId] = true
	c.nodes = append(c.nodes, visualization.RawNode{
		ID:         node.ElementId,
		Labels:     node.Labels,
		Properties: node.Props,
	})
}

func (c *collector) addRelationship(rel neo4j.Relationship) {
	if c.seenRels[rel.ElementId] {
		return
	}
	c.seenRels[rel.ElementId] = true
	c.rels = append(c.rels, visualization.RawRelationship{
		ID:         rel.ElementId,
		Type:       rel.Type,
		StartID:    rel.StartElementId,
		EndID:      rel.EndElementId,
		Properties: rel.Props,
	})
}
