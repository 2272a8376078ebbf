package config

import "time"

// DomainConfig holds the configurable display and exploration constraints
type DomainConfig struct {
	// Graph constraints
	MaxNodes         int
	MaxRelationships int

	// Expansion limits
	MaxNeighbours int

	// Initial query limits
	InitialNodeDisplay int

	// Session constraints
	SessionIdleTimeout time.Duration

	// Validation settings
	AllowEmptyLabels bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodes:           1000,
		MaxRelationships:   5000,
		MaxNeighbours:      100,
		InitialNodeDisplay: 300,
		SessionIdleTimeout: 30 * time.Minute,
		AllowEmptyLabels:   true,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	// Tighter display limits for shared deployments
	cfg.MaxNodes = 500
	cfg.MaxRelationships = 2500
	cfg.MaxNeighbours = 50
	cfg.InitialNodeDisplay = 150
	cfg.SessionIdleTimeout = 15 * time.Minute

	return cfg
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	cfg.MaxNodes = 10000
	cfg.MaxRelationships = 50000
	cfg.MaxNeighbours = 1000
	cfg.SessionIdleTimeout = 24 * time.Hour

	return cfg
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}
