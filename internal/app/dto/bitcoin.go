package dto

import (
	"time"

	"compramex/internal/infra/btc"
)

// BitcoinQuote is the price-conversion widget payload.
type BitcoinQuote struct {
	AmountBTC  float64   `json:"amount_btc"`
	BTCRateUSD float64   `json:"btc_rate_usd"`
	QuotedAt   time.Time `json:"quoted_at"`
}

// MapBitcoinQuote converts a converter quote.
func MapBitcoinQuote(q btc.Quote) BitcoinQuote {
	return BitcoinQuote{
		AmountBTC:  q.AmountBTC,
		BTCRateUSD: q.BTCRateUSD,
		QuotedAt:   q.QuotedAt,
	}
}
