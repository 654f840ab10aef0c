package token

import (
	"testing"

	"github.com/movewise/swap-router/internal/apperror"
)

func TestCanonicalAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already_prefixed", "0x1::aptos_coin::AptosCoin", "0x1::aptos_coin::AptosCoin"},
		{"missing_prefix", "1::aptos_coin::AptosCoin", "0x1::aptos_coin::AptosCoin"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalAddress(tt.in); got != tt.want {
				t.Errorf("CanonicalAddress(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToken_Address_UnsupportedNetwork(t *testing.T) {
	// DAI has no testnet deployment.
	_, err := DAI.Address(Testnet)
	if err == nil {
		t.Fatal("expected error for DAI on testnet")
	}
	if apperror.GetCode(err) != apperror.CodeUnsupportedToken {
		t.Errorf("expected CodeUnsupportedToken, got %s", apperror.GetCode(err))
	}
}

func TestRegistry_CaseInsensitiveLookup(t *testing.T) {
	r := DefaultRegistry()

	for _, symbol := range []string{"APT", "apt", "Apt"} {
		if _, ok := r.Get(symbol); !ok {
			t.Errorf("expected lookup %q to succeed", symbol)
		}
	}

	if _, ok := r.Get("DOGE"); ok {
		t.Error("expected lookup of unregistered symbol to fail")
	}
}

func TestRegistry_SymbolsPreserveOrder(t *testing.T) {
	r := DefaultRegistry()

	want := []string{"APT", "USDC", "USDT", "DAI"}
	got := r.Symbols()
	if len(got) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFormatOutput(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{67.5, "67.500000"},
		{0, "0.000000"},
		{0.1234567, "0.123457"},
	}

	for _, tt := range tests {
		if got := FormatOutput(tt.in); got != tt.want {
			t.Errorf("FormatOutput(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBaseUnits(t *testing.T) {
	tests := []struct {
		amount   float64
		decimals uint8
		want     string
	}{
		{1.5, 8, "150000000"},
		{10, 6, "10000000"},
		{0.0000001, 6, "0"}, // below precision, truncated
	}

	for _, tt := range tests {
		if got := BaseUnits(tt.amount, tt.decimals); got != tt.want {
			t.Errorf("BaseUnits(%v, %d) = %q, want %q", tt.amount, tt.decimals, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := ParseAmount("10"); err != nil {
		t.Errorf("ParseAmount(10) failed: %v", err)
	}
	for _, bad := range []string{"", "abc", "-5", "0"} {
		if _, err := ParseAmount(bad); err == nil {
			t.Errorf("ParseAmount(%q) should fail", bad)
		}
	}
}

func TestCompareOutputs(t *testing.T) {
	if CompareOutputs("12.000000", "5.000000") <= 0 {
		t.Error("12 should compare greater than 5")
	}
	if CompareOutputs("not-a-number", "1.000000") >= 0 {
		t.Error("malformed output should compare as zero")
	}
}

func TestState_SetTestnet_RunsResetsBeforeFlip(t *testing.T) {
	s := NewState(Mainnet)

	var observed Network
	s.OnReset(func() {
		// The reset hook must fire while the old mode is still active.
		observed = s.network
	})

	s.SetTestnet(true)
	if observed != Mainnet {
		t.Errorf("reset hook saw network %q, want %q", observed, Mainnet)
	}
	if s.Current() != Testnet {
		t.Errorf("network = %q, want %q", s.Current(), Testnet)
	}
}

func TestState_NoOpSwitchSkipsResets(t *testing.T) {
	s := NewState(Mainnet)

	calls := 0
	s.OnReset(func() { calls++ })

	s.SetTestnet(false)
	if calls != 0 {
		t.Errorf("no-op switch ran %d resets, want 0", calls)
	}
}
