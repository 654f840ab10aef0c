// Package di contains dependency injection tokens for the routing context.
package di

import (
	"github.com/movewise/swap-router/business/routing/app"
	"github.com/movewise/swap-router/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Router   = di.NewToken[*app.Router]("routing.Router")
	Executor = di.NewToken[*app.Executor]("routing.Executor")
)

// Private dependency tokens - internal to the routing module
var (
	AggregatorProvider = di.NewToken[app.AggregatorProvider]("routing:aggregatorProvider")
	Quoter             = di.NewToken[*app.Quoter]("routing:quoter")
	FanOut             = di.NewToken[*app.FanOut]("routing:fanOut")
	Fallback           = di.NewToken[*app.Fallback]("routing:fallback")
)

// Helper functions for type-safe access
func GetRouter(c di.ServiceRegistry) *app.Router {
	return di.GetToken(c, Router)
}

func GetExecutor(c di.ServiceRegistry) *app.Executor {
	return di.GetToken(c, Executor)
}

func GetAggregatorProvider(c di.ServiceRegistry) app.AggregatorProvider {
	return di.GetToken(c, AggregatorProvider)
}

func GetQuoter(c di.ServiceRegistry) *app.Quoter {
	return di.GetToken(c, Quoter)
}

func GetFanOut(c di.ServiceRegistry) *app.FanOut {
	return di.GetToken(c, FanOut)
}

func GetFallback(c di.ServiceRegistry) *app.Fallback {
	return di.GetToken(c, Fallback)
}
