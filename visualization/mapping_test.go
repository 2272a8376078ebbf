package visualization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapNodes(t *testing.T) {
	t.Run("maps records into entities", func(t *testing.T) {
		nodes, err := MapNodes([]RawNode{
			{ID: "n1", Labels: []string{"Person"}, Properties: map[string]any{"name": "alice"}},
			{ID: "n2", Labels: []string{"Person", "Admin"}},
		})
		require.NoError(t, err)
		require.Len(t, nodes, 2)
		assert.Equal(t, "n1", nodes[0].ID().String())
		name, ok := nodes[0].Properties().Get("name")
		require.True(t, ok)
		assert.Equal(t, "alice", name)
		assert.Equal(t, []string{"Person", "Admin"}, nodes[1].Labels())
	})

	t.Run("rejects the batch on an empty id", func(t *testing.T) {
		_, err := MapNodes([]RawNode{{ID: ""}})
		assert.Error(t, err)
	})
}

func TestMapRelationships(t *testing.T) {
	g, _, _, _ := seededGraph(t)

	t.Run("resolves endpoints against the graph", func(t *testing.T) {
		rels, err := MapRelationships([]RawRelationship{
			{ID: "r9", Type: "KNOWS", StartID: "n1", EndID: "n2"},
		}, g)
		require.NoError(t, err)
		require.Len(t, rels, 1)
		assert.Equal(t, "KNOWS", rels[0].Type())
	})

	t.Run("skips records with unknown endpoints", func(t *testing.T) {
		rels, err := MapRelationships([]RawRelationship{
			{ID: "r9", Type: "KNOWS", StartID: "n1", EndID: "missing"},
		}, g)
		require.NoError(t, err)
		assert.Empty(t, rels)
	})

	t.Run("rejects the batch on an empty id", func(t *testing.T) {
		_, err := MapRelationships([]RawRelationship{
			{ID: "", Type: "KNOWS", StartID: "n1", EndID: "n2"},
		}, g)
		assert.Error(t, err)
	})
}

func TestGetGraphStats(t *testing.T) {
	g, _, _, _ := seededGraph(t)

	stats := GetGraphStats(g)
	assert.Equal(t, 2, stats.NodeCount)
	assert.Equal(t, 1, stats.RelationshipCount)
	assert.Equal(t, map[string]int{"Person": 2}, stats.Labels)
	assert.Equal(t, map[string]int{"KNOWS": 1}, stats.RelationshipTypes)
}

func TestMappingDoesNotMutateInputs(t *testing.T) {
	g, _, _, _ := seededGraph(t)
	raw := []RawNode{{ID: "n5", Labels: []string{"Person"}}}

	nodes, err := MapNodes(raw)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "n5", raw[0].ID)
	assert.Equal(t, 2, g.NodeCount())
}
