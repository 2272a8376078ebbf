package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"graphbrowser/application/commands"
	commandbus "graphbrowser/application/commands/bus"
	"graphbrowser/application/ports"
	"graphbrowser/application/queries"
	querybus "graphbrowser/application/queries/bus"
	"graphbrowser/application/session"
	domainconfig "graphbrowser/domain/config"
	"graphbrowser/infrastructure/config"
	"graphbrowser/infrastructure/neo4j"
	"graphbrowser/interfaces/ws"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideDomainConfig selects interaction limits for the environment
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return domainconfig.LoadDomainConfig(cfg.Environment)
}

// ProvideExecutor creates the Neo4j query executor
func ProvideExecutor(cfg *config.Config) (*neo4j.Executor, error) {
	return neo4j.NewExecutor(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
}

// ProvideGraphSource creates a graph source backed by Neo4j
func ProvideGraphSource(executor *neo4j.Executor, logger *zap.Logger) ports.GraphSource {
	return neo4j.NewSource(executor, logger)
}

// ProvideHub creates the websocket hub that pushes view updates
func ProvideHub(logger *zap.Logger) *ws.Hub {
	return ws.NewHub(logger)
}

// ProvideViewPublisher exposes the hub as the session view publisher
func ProvideViewPublisher(hub *ws.Hub) ports.ViewPublisher {
	return hub
}

// ProvideSessionManager creates the session manager
func ProvideSessionManager(
	source ports.GraphSource,
	publisher ports.ViewPublisher,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *session.Manager {
	return session.NewManager(source, publisher, domainCfg, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(sessions *session.Manager, logger *zap.Logger) *commandbus.CommandBus {
	commandBus := commandbus.NewCommandBus()

	openHandler := commands.NewOpenSessionHandler(sessions, logger)
	commandBus.Register(commands.OpenSessionCommand{}, commandbus.CommandHandlerFunc(
		func(ctx context.Context, cmd commandbus.Command) (interface{}, error) {
			openCmd, ok := cmd.(commands.OpenSessionCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return openHandler.Handle(ctx, openCmd)
		},
	))

	interactHandler := commands.NewInteractHandler(sessions, logger)
	commandBus.Register(commands.InteractCommand{}, commandbus.CommandHandlerFunc(
		func(ctx context.Context, cmd commandbus.Command) (interface{}, error) {
			interactCmd, ok := cmd.(commands.InteractCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return nil, interactHandler.Handle(ctx, interactCmd)
		},
	))

	menuHandler := commands.NewContextMenuHandler(sessions, logger)
	commandBus.Register(commands.AttachMenuCommand{}, commandbus.CommandHandlerFunc(
		func(ctx context.Context, cmd commandbus.Command) (interface{}, error) {
			attachCmd, ok := cmd.(commands.AttachMenuCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return nil, menuHandler.HandleAttach(ctx, attachCmd)
		},
	))
	commandBus.Register(commands.DetachMenuCommand{}, commandbus.CommandHandlerFunc(
		func(ctx context.Context, cmd commandbus.Command) (interface{}, error) {
			detachCmd, ok := cmd.(commands.DetachMenuCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return nil, menuHandler.HandleDetach(ctx, detachCmd)
		},
	))

	closeHandler := commands.NewCloseSessionHandler(sessions, logger)
	commandBus.Register(commands.CloseSessionCommand{}, commandbus.CommandHandlerFunc(
		func(ctx context.Context, cmd commandbus.Command) (interface{}, error) {
			closeCmd, ok := cmd.(commands.CloseSessionCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return nil, closeHandler.Handle(ctx, closeCmd)
		},
	))

	return commandBus
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(sessions *session.Manager) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	graphDataHandler := queries.NewGetGraphDataHandler(sessions)
	queryBus.Register(queries.GetGraphDataQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetGraphDataQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return graphDataHandler.Handle(ctx, getQuery)
		},
	))

	statsHandler := queries.NewGetStatsHandler(sessions)
	queryBus.Register(queries.GetStatsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetStatsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return statsHandler.Handle(ctx, getQuery)
		},
	))

	listHandler := queries.NewListSessionsHandler(sessions)
	queryBus.Register(queries.ListSessionsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListSessionsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listHandler.Handle(ctx, listQuery)
		},
	))

	return queryBus
}
