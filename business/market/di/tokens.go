// Package di contains dependency injection tokens for the market context.
package di

import (
	"github.com/movewise/swap-router/business/market/app"
	"github.com/movewise/swap-router/internal/di"
)

// Public service tokens - exposed to other modules
var (
	PriceService = di.NewToken[*app.PriceService]("market.PriceService")
	PoolService  = di.NewToken[*app.PoolService]("market.PoolService")
)

// Private dependency tokens - internal to the market module
var (
	PriceSource     = di.NewToken[app.PriceSource]("market:priceSource")
	LiquiditySource = di.NewToken[app.LiquiditySource]("market:liquiditySource")
)

// Helper functions for type-safe access
func GetPriceService(c di.ServiceRegistry) *app.PriceService {
	return di.GetToken(c, PriceService)
}

func GetPoolService(c di.ServiceRegistry) *app.PoolService {
	return di.GetToken(c, PoolService)
}

func GetPriceSource(c di.ServiceRegistry) app.PriceSource {
	return di.GetToken(c, PriceSource)
}

func GetLiquiditySource(c di.ServiceRegistry) app.LiquiditySource {
	return di.GetToken(c, LiquiditySource)
}
