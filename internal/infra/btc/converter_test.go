package btc

import (
	"math"
	"testing"
	"time"
)

func TestQuoteMXNUsesMockedRates(t *testing.T) {
	conv := NewConverter(nil)
	quote := conv.QuoteMXN(18000)

	// 18000 MXN at BTC/USD 45000 and USD/MXN 18.5.
	want := 18000.0 / (45000.0 * 18.5)
	if math.Abs(quote.AmountBTC-want) > 1e-12 {
		t.Fatalf("amount = %.12f, want %.12f", quote.AmountBTC, want)
	}
	if quote.BTCRateUSD != 45000 {
		t.Fatalf("rate = %f, want 45000", quote.BTCRateUSD)
	}
	if quote.QuotedAt.IsZero() {
		t.Fatal("quote must carry its timestamp")
	}
}

func TestRefreshAdvancesTimestamp(t *testing.T) {
	conv := NewConverter(nil)
	first := conv.QuoteMXN(100).QuotedAt
	time.Sleep(5 * time.Millisecond)
	conv.Refresh()
	second := conv.QuoteMXN(100).QuotedAt
	if !second.After(first) {
		t.Fatalf("timestamp did not advance: %v -> %v", first, second)
	}
}
