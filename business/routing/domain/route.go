package domain

// RouteSource says which tier produced a route.
type RouteSource string

const (
	// RouteSourceAggregator means the external aggregator supplied it.
	RouteSourceAggregator RouteSource = "aggregator"
	// RouteSourceFanOut means the synthetic multi-DEX fan-out won.
	RouteSourceFanOut RouteSource = "fanout"
	// RouteSourceFallback means the price-only synthesizer produced it.
	RouteSourceFallback RouteSource = "fallback"
)

// AlternativeRoute is a non-primary candidate kept for display.
type AlternativeRoute struct {
	Protocol           string
	ExpectedOutput     string
	PriceImpactPercent float64
	EstimatedGas       float64
}

// SwapRoute is the external routing contract: one primary protocol plus
// zero or more alternatives sorted by descending expected output.
// Immutable once returned.
type SwapRoute struct {
	FromToken          string
	ToToken            string
	FromAmount         string
	ExpectedOutput     string
	PriceImpactPercent float64
	EstimatedGas       float64
	Protocol           string
	Source             RouteSource
	AlternativeRoutes  []AlternativeRoute
	TransactionPayload *EntryFunctionPayload
}
