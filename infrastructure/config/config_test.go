package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, "neo4j", cfg.Neo4jUser)
	assert.Equal(t, "neo4j", cfg.Neo4jDatabase)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.True(t, cfg.EnableAuth)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("NEO4J_URI", "neo4j://db:7687")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("ENABLE_AUTH", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "neo4j://db:7687", cfg.Neo4jURI)
	assert.Equal(t, 5, cfg.RateLimitRequests)
	assert.False(t, cfg.EnableAuth)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "lots")
	t.Setenv("ENABLE_CORS", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.True(t, cfg.EnableCORS)
}

func TestValidateProductionRequirements(t *testing.T) {
	cfg := &Config{Environment: "production", EnableAuth: true}
	require.Error(t, cfg.Validate())

	cfg.JWTSecret = "secret"
	require.Error(t, cfg.Validate(), "database password still missing")

	cfg.Neo4jPassword = "pw"
	require.NoError(t, cfg.Validate())

	// auth disabled: secret is not required
	cfg = &Config{Environment: "production", Neo4jPassword: "pw"}
	require.NoError(t, cfg.Validate())
}
