package di

import (
	"context"

	"go.uber.org/zap"

	commandbus "graphbrowser/application/commands/bus"
	"graphbrowser/application/ports"
	querybus "graphbrowser/application/queries/bus"
	"graphbrowser/application/session"
	domainconfig "graphbrowser/domain/config"
	"graphbrowser/infrastructure/config"
	"graphbrowser/infrastructure/neo4j"
	"graphbrowser/interfaces/ws"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	Executor     *neo4j.Executor
	GraphSource  ports.GraphSource
	Hub          *ws.Hub
	Sessions     *session.Manager
	CommandBus   *commandbus.CommandBus
	QueryBus     *querybus.QueryBus
}

// Ready reports whether the database is reachable.
func (c *Container) Ready(ctx context.Context) error {
	return c.Executor.Verify(ctx)
}

// Shutdown releases all held resources.
func (c *Container) Shutdown(ctx context.Context) {
	c.Sessions.Shutdown()
	if err := c.Executor.Close(ctx); err != nil {
		c.Logger.Warn("Failed to close database driver", zap.Error(err))
	}
}
