package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphbrowser/domain/config"
	"graphbrowser/domain/core/entities"
	"graphbrowser/domain/core/valueobjects"
	"graphbrowser/domain/events"
)

func testNode(t *testing.T, id string) *entities.Node {
	t.Helper()
	itemID, err := valueobjects.NewItemIDFromString(id)
	require.NoError(t, err)
	node, err := entities.NewNode(itemID, []string{"Person"}, valueobjects.NewProperties())
	require.NoError(t, err)
	return node
}

func testRel(t *testing.T, id, startID, endID string) *entities.Relationship {
	t.Helper()
	relID, err := valueobjects.NewItemIDFromString(id)
	require.NoError(t, err)
	start, err := valueobjects.NewItemIDFromString(startID)
	require.NoError(t, err)
	end, err := valueobjects.NewItemIDFromString(endID)
	require.NoError(t, err)
	rel, err := entities.NewRelationship(relID, "KNOWS", start, end, valueobjects.NewProperties())
	require.NoError(t, err)
	return rel
}

func mustID(t *testing.T, id string) valueobjects.ItemID {
	t.Helper()
	itemID, err := valueobjects.NewItemIDFromString(id)
	require.NoError(t, err)
	return itemID
}

func TestPopulate(t *testing.T) {
	t.Run("seeds nodes and relationships", func(t *testing.T) {
		g := NewGraph()
		err := g.Populate(
			[]*entities.Node{testNode(t, "n1"), testNode(t, "n2")},
			[]*entities.Relationship{testRel(t, "r1", "n1", "n2")},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, g.NodeCount())
		assert.Equal(t, 1, g.RelationshipCount())
		require.NoError(t, g.Validate())

		evts := g.GetUncommittedEvents()
		require.Len(t, evts, 1)
		assert.Equal(t, "graph.populated", evts[0].GetEventType())
	})

	t.Run("rejects a second population", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.Populate([]*entities.Node{testNode(t, "n1")}, nil))
		err := g.Populate([]*entities.Node{testNode(t, "n2")}, nil)
		assert.Error(t, err)
	})

	t.Run("rejects seeds above the display limit", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.MaxNodes = 1
		g := NewGraphWithConfig(cfg)
		err := g.Populate([]*entities.Node{testNode(t, "n1"), testNode(t, "n2")}, nil)
		assert.Error(t, err)
		assert.Equal(t, 0, g.NodeCount())
	})

	t.Run("rejects relationships with unknown endpoints", func(t *testing.T) {
		g := NewGraph()
		err := g.Populate(
			[]*entities.Node{testNode(t, "n1")},
			[]*entities.Relationship{testRel(t, "r1", "n1", "missing")},
		)
		assert.Error(t, err)
	})
}

func TestMergeFromOrigin(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Populate(
		[]*entities.Node{testNode(t, "n1"), testNode(t, "n2")},
		[]*entities.Relationship{testRel(t, "r1", "n1", "n2")},
	))
	origin := mustID(t, "n1")

	t.Run("inserts new items and skips known ones", func(t *testing.T) {
		added := g.MergeNodesFrom(origin, []*entities.Node{
			testNode(t, "n2"), // already known
			testNode(t, "n3"),
			nil,
		})
		require.Len(t, added, 1)
		assert.Equal(t, "n3", added[0].String())
		assert.Equal(t, 3, g.NodeCount())

		addedRels := g.MergeRelationshipsFrom(origin, []*entities.Relationship{
			testRel(t, "r1", "n1", "n2"), // duplicate id
			testRel(t, "r2", "n1", "n3"),
			testRel(t, "r3", "n1", "missing"), // endpoint unknown
		})
		require.Len(t, addedRels, 1)
		assert.Equal(t, "r2", addedRels[0].String())
		assert.Equal(t, 2, g.RelationshipCount())
		require.NoError(t, g.Validate())
	})

	t.Run("replaying the same payload is a no-op", func(t *testing.T) {
		added := g.MergeNodesFrom(origin, []*entities.Node{testNode(t, "n3")})
		assert.Empty(t, added)
		addedRels := g.MergeRelationshipsFrom(origin, []*entities.Relationship{testRel(t, "r2", "n1", "n3")})
		assert.Empty(t, addedRels)
	})

	t.Run("stops inserting at the display limit", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.MaxNodes = 2
		capped := NewGraphWithConfig(cfg)
		require.NoError(t, capped.Populate([]*entities.Node{testNode(t, "n1")}, nil))

		added := capped.MergeNodesFrom(mustID(t, "n1"), []*entities.Node{
			testNode(t, "n2"), testNode(t, "n3"),
		})
		assert.Len(t, added, 1)
		assert.Equal(t, 2, capped.NodeCount())
	})
}

func TestCollapse(t *testing.T) {
	t.Run("removes only expansion-introduced items", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.Populate(
			[]*entities.Node{testNode(t, "n1"), testNode(t, "n2")},
			[]*entities.Relationship{testRel(t, "r1", "n1", "n2")},
		))
		origin := mustID(t, "n1")
		g.MergeNodesFrom(origin, []*entities.Node{testNode(t, "n3")})
		g.MergeRelationshipsFrom(origin, []*entities.Relationship{testRel(t, "r2", "n1", "n3")})

		g.Collapse(origin)

		assert.False(t, g.HasNode(mustID(t, "n3")))
		assert.True(t, g.HasNode(mustID(t, "n2")))
		assert.Equal(t, 1, g.RelationshipCount())
		require.NoError(t, g.Validate())
	})

	t.Run("collapses child expansions recursively", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.Populate([]*entities.Node{testNode(t, "n1")}, nil))
		n1 := mustID(t, "n1")
		n2 := mustID(t, "n2")

		g.MergeNodesFrom(n1, []*entities.Node{testNode(t, "n2")})
		g.MergeRelationshipsFrom(n1, []*entities.Relationship{testRel(t, "r1", "n1", "n2")})
		g.MergeNodesFrom(n2, []*entities.Node{testNode(t, "n3")})
		g.MergeRelationshipsFrom(n2, []*entities.Relationship{testRel(t, "r2", "n2", "n3")})
		require.Equal(t, 3, g.NodeCount())

		g.Collapse(n1)

		assert.Equal(t, 1, g.NodeCount())
		assert.Equal(t, 0, g.RelationshipCount())
		assert.True(t, g.HasNode(n1))
		require.NoError(t, g.Validate())
	})

	t.Run("collapse without a prior expansion is a no-op", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.Populate([]*entities.Node{testNode(t, "n1")}, nil))
		g.MarkEventsAsCommitted()

		g.Collapse(mustID(t, "n1"))

		assert.Equal(t, 1, g.NodeCount())
		assert.Empty(t, g.GetUncommittedEvents())
	})
}

func TestRemoveNode(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Populate(
		[]*entities.Node{testNode(t, "n1"), testNode(t, "n2"), testNode(t, "n3")},
		[]*entities.Relationship{
			testRel(t, "r1", "n1", "n2"),
			testRel(t, "r2", "n3", "n1"),
		},
	))
	g.MarkEventsAsCommitted()

	require.NoError(t, g.RemoveNode(mustID(t, "n1")))

	assert.False(t, g.HasNode(mustID(t, "n1")))
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 0, g.RelationshipCount())
	require.NoError(t, g.Validate())

	evts := g.GetUncommittedEvents()
	require.Len(t, evts, 1)
	removed, ok := evts[0].(events.NodeRemoved)
	require.True(t, ok)
	assert.Len(t, removed.RelationshipIDs, 2)

	assert.Error(t, g.RemoveNode(mustID(t, "n1")))
}

func TestNeighborIDs(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Populate(
		[]*entities.Node{testNode(t, "n1"), testNode(t, "n2"), testNode(t, "n3")},
		[]*entities.Relationship{
			testRel(t, "r1", "n1", "n2"),
			testRel(t, "r2", "n3", "n1"),
			testRel(t, "r3", "n2", "n3"),
		},
	))

	ids := g.NeighborIDs(mustID(t, "n1"))
	assert.Len(t, ids, 2)
	assert.Len(t, g.Neighbors(mustID(t, "n1")), 2)
	assert.Empty(t, g.NeighborIDs(mustID(t, "unknown")))
}
