// Package routing implements the quote-routing bounded context: the
// synthetic DEX quoter, the multi-DEX fan-out, the aggregator tier, and
// the swap executor.
package routing

import (
	"context"

	marketDI "github.com/movewise/swap-router/business/market/di"
	"github.com/movewise/swap-router/business/routing/app"
	"github.com/movewise/swap-router/business/routing/domain"
	routingDI "github.com/movewise/swap-router/business/routing/di"
	"github.com/movewise/swap-router/business/routing/infra/panora"
	"github.com/movewise/swap-router/internal/config"
	"github.com/movewise/swap-router/internal/di"
	"github.com/movewise/swap-router/internal/httpclient"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/monolith"
	"github.com/movewise/swap-router/internal/token"
)

// Module implements the routing bounded context.
type Module struct{}

// dexRegistry maps configured DEX entries into immutable descriptors,
// preserving configuration order.
func dexRegistry(cfg *config.Config) []domain.DexDescriptor {
	dexes := make([]domain.DexDescriptor, 0, len(cfg.Dexes))
	for _, d := range cfg.Dexes {
		dexes = append(dexes, domain.DexDescriptor{
			Key:             d.Key,
			Name:            d.Name,
			FeeFraction:     d.FeeFraction,
			GasEstimate:     d.GasEstimate,
			LiquiditySource: d.LiquiditySource,
			RouterMainnet:   d.RouterMainnet,
			RouterTestnet:   d.RouterTestnet,
			URL:             d.URL,
		})
	}
	return dexes
}

// RegisterServices registers all routing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register AggregatorProvider (Panora) - private dependency
	di.RegisterToken(c, routingDI.AggregatorProvider, func(sr di.ServiceRegistry) app.AggregatorProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		state := sr.Get("networkState").(*token.State)

		headers := map[string]string{}
		if cfg.Aggregator.APIKey != "" {
			headers["x-api-key"] = cfg.Aggregator.APIKey
		}

		client, err := httpclient.NewInstrumentedClient(
			httpclient.WithProviderName("panora"),
			httpclient.WithBaseURL(cfg.Aggregator.BaseURL),
			httpclient.WithRequestTimeout(cfg.Aggregator.Timeout),
			httpclient.WithHeaders(headers),
		)
		if err != nil {
			panic("failed to create panora http client: " + err.Error())
		}

		return panora.New(client, panora.Config{
			SlippagePercent: cfg.Aggregator.SlippagePercent,
			ChainID:         cfg.Aggregator.ChainID,
			ChainIDTestnet:  cfg.Aggregator.ChainIDTestnet,
		}, state, log)
	})

	// Register Quoter - private dependency
	di.RegisterToken(c, routingDI.Quoter, func(sr di.ServiceRegistry) *app.Quoter {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewQuoter(marketDI.GetPriceService(sr), marketDI.GetPoolService(sr), log)
	})

	// Register FanOut - private dependency
	di.RegisterToken(c, routingDI.FanOut, func(sr di.ServiceRegistry) *app.FanOut {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewFanOut(routingDI.GetQuoter(sr), marketDI.GetPoolService(sr), dexRegistry(cfg), log)
	})

	// Register Fallback - private dependency
	di.RegisterToken(c, routingDI.Fallback, func(sr di.ServiceRegistry) *app.Fallback {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewFallback(marketDI.GetPriceService(sr), dexRegistry(cfg), log)
	})

	// Register Router (public - exposed to other modules)
	di.RegisterToken(c, routingDI.Router, func(sr di.ServiceRegistry) *app.Router {
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("tokenRegistry").(*token.Registry)
		state := sr.Get("networkState").(*token.State)

		return app.NewRouter(
			routingDI.GetAggregatorProvider(sr),
			routingDI.GetFanOut(sr),
			routingDI.GetFallback(sr),
			registry,
			state,
			log,
		)
	})

	// Register Executor (public - exposed to other modules)
	di.RegisterToken(c, routingDI.Executor, func(sr di.ServiceRegistry) *app.Executor {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("tokenRegistry").(*token.Registry)
		state := sr.Get("networkState").(*token.State)

		return app.NewExecutor(routingDI.GetRouter(sr), registry, state, dexRegistry(cfg), log)
	})

	return nil
}

// Startup initializes the routing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	// Resolve eagerly so misconfiguration surfaces at startup, not on
	// the first request.
	routingDI.GetRouter(mono.Services())
	routingDI.GetExecutor(mono.Services())

	log.Info(ctx, "routing module started", "dexes", len(mono.Config().Dexes))
	return nil
}
