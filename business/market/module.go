// Package market implements the market-data bounded context: cached USD
// prices and per-DEX liquidity snapshots.
package market

import (
	"context"

	"github.com/movewise/swap-router/business/market/app"
	marketDI "github.com/movewise/swap-router/business/market/di"
	"github.com/movewise/swap-router/business/market/infra/coingecko"
	"github.com/movewise/swap-router/business/market/infra/defillama"
	"github.com/movewise/swap-router/internal/config"
	"github.com/movewise/swap-router/internal/di"
	"github.com/movewise/swap-router/internal/httpclient"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/monolith"
	"github.com/movewise/swap-router/internal/ratelimit"
)

// Module implements the market bounded context.
type Module struct{}

// RegisterServices registers all market services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register PriceSource (CoinGecko) - private dependency
	di.RegisterToken(c, marketDI.PriceSource, func(sr di.ServiceRegistry) app.PriceSource {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := httpclient.NewInstrumentedClient(
			httpclient.WithProviderName("coingecko"),
			httpclient.WithBaseURL(cfg.Prices.BaseURL),
			httpclient.WithRequestTimeout(cfg.Prices.Timeout),
		)
		if err != nil {
			panic("failed to create coingecko http client: " + err.Error())
		}
		return coingecko.New(client, cfg.Prices.IDs, log)
	})

	// Register LiquiditySource (DefiLlama) - private dependency
	di.RegisterToken(c, marketDI.LiquiditySource, func(sr di.ServiceRegistry) app.LiquiditySource {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := httpclient.NewInstrumentedClient(
			httpclient.WithProviderName("defillama"),
			httpclient.WithBaseURL(cfg.Pools.BaseURL),
			httpclient.WithRequestTimeout(cfg.Pools.Timeout),
		)
		if err != nil {
			panic("failed to create defillama http client: " + err.Error())
		}
		return defillama.New(client, cfg.Network.Chain, log)
	})

	// Register PriceService (public - exposed to other modules)
	di.RegisterToken(c, marketDI.PriceService, func(sr di.ServiceRegistry) *app.PriceService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		limiter := ratelimit.NewSpaced(cfg.Prices.MinInterval)
		return app.NewPriceService(marketDI.GetPriceSource(sr), limiter, cfg.Prices.TTL, log)
	})

	// Register PoolService (public - exposed to other modules)
	di.RegisterToken(c, marketDI.PoolService, func(sr di.ServiceRegistry) *app.PoolService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		dexes := make([]app.DexSource, 0, len(cfg.Dexes))
		for _, d := range cfg.Dexes {
			dexes = append(dexes, app.DexSource{Name: d.Name, Project: d.LiquiditySource})
		}
		return app.NewPoolService(marketDI.GetLiquiditySource(sr), dexes, cfg.Pools.TTL, log)
	})

	return nil
}

// Startup wires cache invalidation into network-mode switches and warms
// the price cache with one batched call.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	prices := marketDI.GetPriceService(mono.Services())
	pools := marketDI.GetPoolService(mono.Services())

	mono.NetworkState().OnReset(prices.Reset)
	mono.NetworkState().OnReset(pools.Reset)

	// Warm the price cache; one rate-limited upstream call for all symbols.
	symbols := mono.TokenRegistry().Symbols()
	results := prices.USDPrices(ctx, symbols)
	for _, res := range results {
		log.Debug(ctx, "warmed price", "symbol", res.Symbol, "usd", res.USD, "origin", string(res.Origin))
	}

	log.Info(ctx, "market module started", "symbols", len(symbols), "dexes", len(mono.Config().Dexes))
	return nil
}
