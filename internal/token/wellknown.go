package token

// Well-known tokens. The LayerZero bridged stables share one mainnet
// account; testnet uses the faucet-funded devnet coins.
var (
	APT = New("APT", "Aptos Coin", 8,
		"0x1::aptos_coin::AptosCoin",
		"0x1::aptos_coin::AptosCoin",
	)

	USDC = New("USDC", "USD Coin", 6,
		"0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC",
		"0x43417434fd869edee76cca2a4d2301e528a1551b1d719b75c350c3c97d15b8b9::coins::USDC",
	)

	USDT = New("USDT", "Tether USD", 6,
		"0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDT",
		"0x43417434fd869edee76cca2a4d2301e528a1551b1d719b75c350c3c97d15b8b9::coins::USDT",
	)

	DAI = New("DAI", "Dai Stablecoin", 8,
		"0xd6f822fbd9ee79d25b10b04b6e7ea18cbbf6cf4d0dd0d271ae3e0972bcc5d4e8::coin::DAI",
		"",
	)
)

// DefaultRegistry returns a registry pre-populated with the supported set.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(APT)
	r.Register(USDC)
	r.Register(USDT)
	r.Register(DAI)
	return r
}
