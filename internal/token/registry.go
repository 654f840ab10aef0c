package token

import (
	"fmt"
	"strings"
	"sync"
)

// Registry is a thread-safe registry of supported tokens keyed by symbol.
type Registry struct {
	bySymbol map[string]*Token
	order    []string
	mu       sync.RWMutex
}

// NewRegistry creates a new empty token registry.
func NewRegistry() *Registry {
	return &Registry{
		bySymbol: make(map[string]*Token),
	}
}

// Register adds a token to the registry.
// Panics if a token with the same symbol is already registered.
func (r *Registry) Register(t *Token) {
	if t == nil {
		panic("token: cannot register nil token")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(t.Symbol())
	if _, exists := r.bySymbol[key]; exists {
		panic(fmt.Sprintf("token: %s already registered", t.Symbol()))
	}

	r.bySymbol[key] = t
	r.order = append(r.order, t.Symbol())
}

// Get retrieves a token by symbol (case-insensitive).
func (r *Registry) Get(symbol string) (*Token, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.bySymbol[strings.ToLower(symbol)]
	return t, ok
}

// MustGet retrieves a token by symbol, panics if not found.
func (r *Registry) MustGet(symbol string) *Token {
	t, ok := r.Get(symbol)
	if !ok {
		panic(fmt.Sprintf("token: %s not found in registry", symbol))
	}
	return t
}

// Symbols returns all registered symbols in registration order.
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}
