// Package domain contains the core domain types for the routing context.
package domain

import (
	"github.com/movewise/swap-router/internal/apperror"
	"github.com/movewise/swap-router/internal/token"
)

// DexDescriptor is one static registry entry for a synthetic DEX model.
// Entries are immutable at runtime.
type DexDescriptor struct {
	Key             string
	Name            string
	FeeFraction     float64
	GasEstimate     float64
	LiquiditySource string
	RouterMainnet   string
	RouterTestnet   string
	URL             string
}

// Router returns the DEX router address for the given network.
func (d DexDescriptor) Router(network token.Network) (string, error) {
	addr := d.RouterMainnet
	if network == token.Testnet {
		addr = d.RouterTestnet
	}
	if addr == "" {
		return "", apperror.New(apperror.CodeUnsupportedToken,
			apperror.WithContext(d.Key+" has no router on "+string(network)))
	}
	return token.CanonicalAddress(addr), nil
}

// FeePercent returns the DEX fee as a formatted percentage string.
func (d DexDescriptor) FeePercent() string {
	return token.FormatPercent(d.FeeFraction * 100)
}
