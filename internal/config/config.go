// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Network    NetworkConfig    `mapstructure:"network"`
	Prices     PricesConfig     `mapstructure:"prices"`
	Pools      PoolsConfig      `mapstructure:"pools"`
	Aggregator AggregatorConfig `mapstructure:"aggregator"`
	Dexes      []DexConfig      `mapstructure:"dexes"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// NetworkConfig selects the target chain deployment.
type NetworkConfig struct {
	Chain   string `mapstructure:"chain"` // Chain name as the liquidity source spells it
	Testnet bool   `mapstructure:"testnet"`
}

// PricesConfig holds price source settings.
type PricesConfig struct {
	BaseURL     string            `mapstructure:"base_url"`
	TTL         time.Duration     `mapstructure:"ttl"`
	MinInterval time.Duration     `mapstructure:"min_interval"`
	Timeout     time.Duration     `mapstructure:"timeout"`
	IDs         map[string]string `mapstructure:"ids"` // symbol -> upstream coin id
}

// PoolsConfig holds liquidity/TVL source settings.
type PoolsConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	TTL     time.Duration `mapstructure:"ttl"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AggregatorConfig holds external swap-aggregator settings.
type AggregatorConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	APIKey          string        `mapstructure:"api_key"`
	SlippagePercent float64       `mapstructure:"slippage_percent"`
	Timeout         time.Duration `mapstructure:"timeout"`
	ChainID         uint32        `mapstructure:"chain_id"`
	ChainIDTestnet  uint32        `mapstructure:"chain_id_testnet"`
}

// DexConfig describes one synthetic DEX model.
type DexConfig struct {
	Key             string  `mapstructure:"key"`
	Name            string  `mapstructure:"name"`
	FeeFraction     float64 `mapstructure:"fee_fraction"`
	GasEstimate     float64 `mapstructure:"gas_estimate"`
	LiquiditySource string  `mapstructure:"liquidity_source"` // project id at the TVL source
	RouterMainnet   string  `mapstructure:"router_mainnet"`
	RouterTestnet   string  `mapstructure:"router_testnet"`
	URL             string  `mapstructure:"url"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	// Environment variables override file values (SWAPROUTER_PRICES_TTL etc).
	v.SetEnvPrefix("SWAPROUTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, defaults apply; a malformed file is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if len(c.Dexes) == 0 {
		return fmt.Errorf("config: at least one dex must be configured")
	}
	for _, d := range c.Dexes {
		if d.Key == "" || d.Name == "" {
			return fmt.Errorf("config: dex entries need key and name")
		}
		if d.FeeFraction < 0 || d.FeeFraction >= 1 {
			return fmt.Errorf("config: dex %s fee_fraction %v outside [0,1)", d.Key, d.FeeFraction)
		}
	}
	if c.Prices.MinInterval <= 0 {
		return fmt.Errorf("config: prices.min_interval must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "swap-router")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("network.chain", "Aptos")
	v.SetDefault("network.testnet", false)

	v.SetDefault("prices.base_url", "https://api.coingecko.com")
	v.SetDefault("prices.ttl", 5*time.Minute)
	v.SetDefault("prices.min_interval", 1100*time.Millisecond)
	v.SetDefault("prices.timeout", 8*time.Second)
	v.SetDefault("prices.ids", map[string]string{
		"apt":  "aptos",
		"usdc": "usd-coin",
		"usdt": "tether",
		"dai":  "dai",
	})

	v.SetDefault("pools.base_url", "https://yields.llama.fi")
	v.SetDefault("pools.ttl", 5*time.Minute)
	v.SetDefault("pools.timeout", 8*time.Second)

	v.SetDefault("aggregator.base_url", "https://api.panora.exchange")
	v.SetDefault("aggregator.slippage_percent", 0.5)
	v.SetDefault("aggregator.timeout", 8*time.Second)
	v.SetDefault("aggregator.chain_id", 1)
	v.SetDefault("aggregator.chain_id_testnet", 2)

	v.SetDefault("dexes", []map[string]any{
		{
			"key":              "liquidswap",
			"name":             "Liquidswap",
			"fee_fraction":     0.003,
			"gas_estimate":     0.0002,
			"liquidity_source": "liquidswap",
			"router_mainnet":   "0x190d44266241744264b964a37b8f09863167a12d3e70cda39376cfb4e3561e12",
			"router_testnet":   "0x12e12de0af996d9611b0b78928cd9f4cbf50d94d972043cdd829baa77a78929b",
			"url":              "https://liquidswap.com",
		},
		{
			"key":              "pancakeswap",
			"name":             "PancakeSwap",
			"fee_fraction":     0.0025,
			"gas_estimate":     0.0002,
			"liquidity_source": "pancakeswap-amm",
			"router_mainnet":   "0xc7efb4076dbe143cbcd98cfaaa929ecfc8f299203dfff63b95ccb6bfe19850fa",
			"router_testnet":   "0x9cadb8b9fb10601407fa1023bea795b04e250d8d4f5a0e1bf2e171daaa7a890b",
			"url":              "https://aptos.pancakeswap.finance",
		},
		{
			"key":              "thala",
			"name":             "ThalaSwap",
			"fee_fraction":     0.003,
			"gas_estimate":     0.0003,
			"liquidity_source": "thala-swap",
			"router_mainnet":   "0x48271d39d0b05bd6efca2278f22277d6fcc375504f9839fd73f74ace240861af",
			"router_testnet":   "0x785a9b3f2e2b6ba24c7c3a6bd4f8cf539261937bfd988fca959ab49cdbeae9a1",
			"url":              "https://app.thala.fi",
		},
	})

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "swap-router")
	v.SetDefault("telemetry.prometheus_port", 9090)
}
