package neo4j

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	result     *neo4j.EagerResult
	lastQuery  string
	lastParams map[string]interface{}
}

func (f *fakeRunner) Run(ctx context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error) {
	f.lastQuery = query
	f.lastParams = params
	return f.result, nil
}

func dbNode(id string, labels ...string) neo4j.Node {
	return neo4j.Node{ElementId: id, Labels: labels, Props: map[string]any{}}
}

func dbRel(id, relType, startID, endID string) neo4j.Relationship {
	return neo4j.Relationship{
		ElementId:      id,
		Type:           relType,
		StartElementId: startID,
		EndElementId:   endID,
		Props:          map[string]any{},
	}
}

func eagerResult(values ...[]any) *neo4j.EagerResult {
	records := make([]*neo4j.Record, 0, len(values))
	for _, vals := range values {
		records = append(records, &neo4j.Record{Values: vals})
	}
	return &neo4j.EagerResult{Records: records}
}

func TestRunSeedQueryCollectsAndDeduplicates(t *testing.T) {
	runner := &fakeRunner{result: eagerResult(
		[]any{dbNode("n1", "Person"), dbNode("n2", "Person"), dbRel("r1", "KNOWS", "n1", "n2")},
		[]any{dbNode("n1", "Person"), dbRel("r1", "KNOWS", "n1", "n2")},
	)}
	source := NewSource(runner, nil)

	result, err := source.RunSeedQuery(context.Background(), "MATCH (n) RETURN n", nil, 0)
	require.NoError(t, err)
	assert.Len(t, result.Nodes, 2)
	assert.Len(t, result.Relationships, 1)
	assert.Equal(t, "n1", result.Nodes[0].ID)
	assert.Equal(t, []string{"Person"}, result.Nodes[0].Labels)
}

func TestRunSeedQueryTruncatesAtLimit(t *testing.T) {
	runner := &fakeRunner{result: eagerResult(
		[]any{dbNode("n1"), dbNode("n2"), dbNode("n3")},
	)}
	source := NewSource(runner, nil)

	result, err := source.RunSeedQuery(context.Background(), "MATCH (n) RETURN n", nil, 2)
	require.NoError(t, err)
	assert.Len(t, result.Nodes, 2)
}

func TestFetchNeighborsPassesExclusions(t *testing.T) {
	runner := &fakeRunner{result: eagerResult(
		[]any{dbNode("n3"), dbRel("r2", "KNOWS", "n1", "n3")},
	)}
	source := NewSource(runner, nil)

	result, err := source.FetchNeighbors(context.Background(), "n1", []string{"n2"}, 50)
	require.NoError(t, err)
	assert.Len(t, result.Nodes, 1)
	assert.Len(t, result.Relationships, 1)
	assert.Equal(t, "n1", runner.lastParams["id"])
	assert.Equal(t, []string{"n2"}, runner.lastParams["known"])
	assert.Equal(t, 50, runner.lastParams["limit"])
	assert.Contains(t, runner.lastQuery, "elementId(origin)")
}
