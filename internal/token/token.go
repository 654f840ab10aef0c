// Package token holds the supported token set, per-network address
// resolution, and the amount formatting policy shared by every quote path.
package token

import (
	"strings"

	"github.com/movewise/swap-router/internal/apperror"
)

// Network selects which chain deployment addresses resolve against.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Token is the metadata of a supported coin. It is a reference entity:
// the symbol is identity within a registry, addresses vary per network.
type Token struct {
	symbol    string
	name      string
	decimals  uint8
	addresses map[Network]string
}

// New creates a Token with mainnet and testnet coin-type addresses.
// An empty address means the token is not deployed on that network.
func New(symbol, name string, decimals uint8, mainnetAddr, testnetAddr string) *Token {
	if symbol == "" {
		panic("token: empty symbol")
	}
	if decimals > 30 {
		panic("token: suspicious decimals (>30)")
	}

	return &Token{
		symbol:   symbol,
		name:     name,
		decimals: decimals,
		addresses: map[Network]string{
			Mainnet: mainnetAddr,
			Testnet: testnetAddr,
		},
	}
}

// Symbol returns the ticker symbol (e.g., "APT", "USDC").
func (t *Token) Symbol() string {
	return t.symbol
}

// Name returns the human-readable name (e.g., "Aptos Coin").
func (t *Token) Name() string {
	if t.name == "" {
		return t.symbol
	}
	return t.name
}

// Decimals returns the number of decimal places.
func (t *Token) Decimals() uint8 {
	return t.decimals
}

// Address returns the canonical coin-type address on the given network.
func (t *Token) Address(network Network) (string, error) {
	addr, ok := t.addresses[network]
	if !ok || addr == "" {
		return "", apperror.New(apperror.CodeUnsupportedToken,
			apperror.WithContext(t.symbol+" has no address on "+string(network)))
	}
	return CanonicalAddress(addr), nil
}

// String returns a human-readable representation.
func (t *Token) String() string {
	return t.symbol
}

// CanonicalAddress normalizes a coin-type address to carry a 0x prefix on
// its account part ("1::aptos_coin::AptosCoin" -> "0x1::aptos_coin::AptosCoin").
func CanonicalAddress(addr string) string {
	if addr == "" {
		return addr
	}
	if strings.HasPrefix(addr, "0x") {
		return addr
	}
	return "0x" + addr
}
