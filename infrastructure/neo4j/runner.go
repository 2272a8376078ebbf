package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// DBRunner abstracts the execution of a Cypher query, allowing for
// different implementations or stubbing in tests.
type DBRunner interface {
	// Run executes a Cypher query with parameters and returns a
	// fully-buffered result.
	Run(ctx context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error)
}

// Executor is the driver-backed DBRunner. ExecuteQuery handles session and
// transaction management, so one executor serves all sessions.
type Executor struct {
	driver neo4j.DriverWithContext
	dbName string
}

// NewExecutor creates a driver and wraps it in an Executor.
func NewExecutor(uri, username, password, dbName string) (*Executor, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("could not create Neo4j driver: %w", err)
	}
	return &Executor{driver: driver, dbName: dbName}, nil
}

// Verify checks connectivity to the database.
func (e *Executor) Verify(ctx context.Context) error {
	return e.driver.VerifyConnectivity(ctx)
}

// Run executes a Cypher query and buffers all records in memory.
func (e *Executor) Run(ctx context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		e.driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(e.dbName),
	)
	if err != nil {
		return nil, fmt.Errorf("error executing neo4j query: %w", err)
	}
	return result, nil
}

// Close releases the driver's connection pool.
func (e *Executor) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}
