package app

import (
	"context"
	"fmt"

	"github.com/movewise/swap-router/business/routing/domain"
	"github.com/movewise/swap-router/internal/apperror"
	"github.com/movewise/swap-router/internal/logger"
	"github.com/movewise/swap-router/internal/token"
)

// Executor turns a selected route into a signable transaction payload.
// It never signs or submits anything; that is the wallet's job.
type Executor struct {
	router   *Router
	registry *token.Registry
	state    *token.State
	dexes    []domain.DexDescriptor
	log      logger.LoggerInterface
}

// NewExecutor creates an Executor. The first registered DEX is the
// default protocol for locally built payloads.
func NewExecutor(router *Router, registry *token.Registry, state *token.State, dexes []domain.DexDescriptor, log logger.LoggerInterface) *Executor {
	if len(dexes) == 0 {
		panic("routing: executor needs at least one dex")
	}
	return &Executor{router: router, registry: registry, state: state, dexes: dexes, log: log}
}

// ExecuteSwap re-derives the best route and returns a payload the
// wallet can sign. An aggregator-supplied payload is passed through
// verbatim; otherwise a payload for the default DEX is built locally
// with a zero minimum output (slippage protection stays with the
// aggregator or the wallet, not this layer). Failures come back as
// values, never panics.
func (e *Executor) ExecuteSwap(ctx context.Context, walletAddress, tokenIn, tokenOut, amount string, slippagePercent float64, deadlineSeconds int64) domain.SwapResult {
	if walletAddress == "" {
		return failure("wallet address is required")
	}
	if slippagePercent < 0 || slippagePercent > 100 {
		return failure(fmt.Sprintf("slippage percent %v outside [0,100]", slippagePercent))
	}

	route, err := e.router.BestSwapRoute(ctx, tokenIn, tokenOut, amount)
	if err != nil {
		return failure(err.Error())
	}

	if route.TransactionPayload != nil {
		return domain.SwapResult{Success: true, Payload: route.TransactionPayload}
	}

	payload, err := e.buildPayload(tokenIn, tokenOut, amount)
	if err != nil {
		e.log.Warn(ctx, "payload build failed",
			"tokenIn", tokenIn, "tokenOut", tokenOut, "error", err.Error())
		return failure(err.Error())
	}

	return domain.SwapResult{Success: true, Payload: payload}
}

// buildPayload constructs a Move entry-function call against the
// default DEX's router on the current network.
func (e *Executor) buildPayload(tokenIn, tokenOut, amount string) (*domain.EntryFunctionPayload, error) {
	network := e.state.Current()
	dex := e.dexes[0]

	routerAddr, err := dex.Router(network)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodePayloadBuildFailed, "resolve router address")
	}

	in, ok := e.registry.Get(tokenIn)
	if !ok {
		return nil, apperror.New(apperror.CodeUnsupportedToken, apperror.WithContext(tokenIn))
	}
	out, ok := e.registry.Get(tokenOut)
	if !ok {
		return nil, apperror.New(apperror.CodeUnsupportedToken, apperror.WithContext(tokenOut))
	}

	inAddr, err := in.Address(network)
	if err != nil {
		return nil, err
	}
	outAddr, err := out.Address(network)
	if err != nil {
		return nil, err
	}

	amt, err := token.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	return &domain.EntryFunctionPayload{
		Type:     "entry_function_payload",
		Function: routerAddr + "::scripts_v2::swap",
		TypeArguments: []string{
			inAddr,
			outAddr,
			routerAddr + "::curves::Uncorrelated",
		},
		Arguments: []any{
			token.BaseUnits(amt, in.Decimals()),
			"0",
		},
	}, nil
}

func failure(msg string) domain.SwapResult {
	return domain.SwapResult{Success: false, Error: msg}
}
