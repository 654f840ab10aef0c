// Package main is the entry point for the swap-router quoting service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/movewise/swap-router/business/market"
	marketDI "github.com/movewise/swap-router/business/market/di"
	"github.com/movewise/swap-router/business/routing"
	routingDI "github.com/movewise/swap-router/business/routing/di"
	"github.com/movewise/swap-router/internal/apm"
	"github.com/movewise/swap-router/internal/config"
	"github.com/movewise/swap-router/internal/health"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/metrics"
	"github.com/movewise/swap-router/internal/monolith"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type options struct {
	configPath string
	tokenIn    string
	tokenOut   string
	amount     string
	wallet     string
	slippage   float64
	deadline   int64
	testnet    bool
	allQuotes  bool
	swap       bool
	serve      bool
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.tokenIn, "from", "APT", "Input token symbol")
	flag.StringVar(&opts.tokenOut, "to", "USDC", "Output token symbol")
	flag.StringVar(&opts.amount, "amount", "1", "Input amount")
	flag.StringVar(&opts.wallet, "wallet", "", "Wallet address (required with -swap)")
	flag.Float64Var(&opts.slippage, "slippage", 0.5, "Slippage tolerance percent")
	flag.Int64Var(&opts.deadline, "deadline", 300, "Transaction deadline in seconds")
	flag.BoolVar(&opts.testnet, "testnet", false, "Resolve addresses against testnet")
	flag.BoolVar(&opts.allQuotes, "quotes", false, "Print every per-DEX quote instead of the best route")
	flag.BoolVar(&opts.swap, "swap", false, "Build a signable swap payload")
	flag.BoolVar(&opts.serve, "serve", false, "Keep running and serve health/metrics endpoints")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("swap-router %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.testnet {
		cfg.Network.Testnet = true
	}

	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	log := logger.New(os.Stderr, logLevel, cfg.App.Name, nil)
	log.Info(ctx, "starting swap router",
		"version", version,
		"environment", cfg.App.Environment,
		"testnet", cfg.Network.Testnet,
	)

	// Initialize observability if enabled
	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.OTLPHTTPProvider, log))
		log.Info(ctx, "tracing initialized", "endpoint", cfg.Telemetry.OTLPEndpoint)

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Market first: routing depends on its price and pool services.
	modules := []monolith.Module{
		&market.Module{},
		&routing.Module{},
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	if opts.serve {
		return serve(ctx, cfg, mono, log)
	}

	return runOnce(ctx, opts, mono)
}

// runOnce answers a single quote or swap request and prints JSON.
func runOnce(ctx context.Context, opts options, mono monolith.Monolith) error {
	services := mono.Services()

	var result any
	switch {
	case opts.swap:
		executor := routingDI.GetExecutor(services)
		result = executor.ExecuteSwap(ctx, opts.wallet, opts.tokenIn, opts.tokenOut, opts.amount, opts.slippage, opts.deadline)
	case opts.allQuotes:
		router := routingDI.GetRouter(services)
		quotes, err := router.AllDexQuotes(ctx, opts.tokenIn, opts.tokenOut, opts.amount)
		if err != nil {
			return err
		}
		result = quotes
	default:
		router := routingDI.GetRouter(services)
		route, err := router.BestSwapRoute(ctx, opts.tokenIn, opts.tokenOut, opts.amount)
		if err != nil {
			return err
		}
		result = route
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// serve keeps the process alive behind health and metrics endpoints.
func serve(ctx context.Context, cfg *config.Config, mono monolith.Monolith, log logger.LoggerInterface) error {
	healthServer := health.NewServer(8081, version, log)

	prices := marketDI.GetPriceService(mono.Services())
	healthServer.RegisterCheck("price-cache", func(context.Context) (bool, string) {
		if prices.CachedSymbols() == 0 {
			return false, "price cache is empty"
		}
		return true, ""
	})

	pools := marketDI.GetPoolService(mono.Services())
	healthServer.RegisterCheck("pool-cache", func(context.Context) (bool, string) {
		for _, d := range cfg.Dexes {
			if _, ok := pools.Snapshot(d.Name); ok {
				return true, ""
			}
		}
		return false, "no dex has a liquidity snapshot"
	})

	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", 8081)
	}
	defer healthServer.Stop(context.Background())

	// Warm the pool cache so the readiness probe passes once upstreams
	// have answered.
	if err := pools.EnsureFresh(ctx); err != nil {
		log.Warn(ctx, "initial pool refresh failed", "error", err.Error())
	}

	<-ctx.Done()
	log.Info(ctx, "shutting down")
	return nil
}
