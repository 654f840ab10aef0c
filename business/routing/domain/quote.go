package domain

import (
	"sort"

	"github.com/movewise/swap-router/internal/token"
)

// DexQuote is one synthesized estimate for a single DEX. Quotes are
// produced fresh per request and never cached.
type DexQuote struct {
	DexKey             string
	DexName            string
	OutputAmount       string // decimal string, 6 places
	PriceImpactPercent string // decimal string, 2 places
	FeePercent         string
	DexURL             string
	GasEstimate        float64
}

// SortQuotesDescending orders quotes by numeric output amount, best
// first. Malformed amounts compare as zero.
func SortQuotesDescending(quotes []DexQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return token.CompareOutputs(quotes[i].OutputAmount, quotes[j].OutputAmount) > 0
	})
}
