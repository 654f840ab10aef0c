// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/movewise/swap-router/internal/config"
	"github.com/movewise/swap-router/internal/di"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/token"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	TokenRegistry() *token.Registry
	NetworkState() *token.State
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config       *config.Config
	logger       logger.LoggerInterface
	registry     *token.Registry
	networkState *token.State
	container    di.Container
}

// New creates a new Monolith instance.
func New(cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	// Well-known coins for the configured chain
	registry := token.DefaultRegistry()

	network := token.Mainnet
	if cfg.Network.Testnet {
		network = token.Testnet
	}
	networkState := token.NewState(network)

	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("tokenRegistry", registry)
	container.Register("networkState", networkState)

	return &app{
		config:       cfg,
		logger:       log,
		registry:     registry,
		networkState: networkState,
		container:    container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) TokenRegistry() *token.Registry {
	return a.registry
}

func (a *app) NetworkState() *token.State {
	return a.networkState
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close releases shared resources.
func (a *app) Close() error {
	return nil
}
