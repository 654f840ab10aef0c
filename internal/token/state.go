package token

import "sync"

// State holds the process-wide network mode. Switching the mode runs every
// registered reset hook before the flag flips, so no reader can observe the
// new mode while stale-network cache data is still live.
type State struct {
	mu      sync.RWMutex
	network Network
	resets  []func()
}

// NewState creates a State starting on the given network.
func NewState(network Network) *State {
	return &State{network: network}
}

// Current returns the active network.
func (s *State) Current() Network {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.network
}

// OnReset registers a hook invoked whenever the network mode changes.
func (s *State) OnReset(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, f)
}

// SetTestnet switches between mainnet and testnet. Reset hooks run first,
// under the lock, then the mode flips; a no-op switch runs nothing.
func (s *State) SetTestnet(testnet bool) {
	target := Mainnet
	if testnet {
		target = Testnet
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.network == target {
		return
	}

	for _, f := range s.resets {
		f()
	}
	s.network = target
}
