// Package btc quotes product prices in Bitcoin. The exchange rates are
// mocked: the original screen ships fixed BTC/USD and USD/MXN rates, and a
// real market-data feed stays out of scope. The quote timestamp is still
// honest so the UI can show when the number was computed.
package btc

import (
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	mockBTCUSDRate = 45000.0
	mockUSDMXNRate = 18.5
)

// Quote is one MXN-to-BTC conversion.
type Quote struct {
	AmountBTC  float64
	BTCRateUSD float64
	QuotedAt   time.Time
}

// Converter holds the current rate snapshot.
type Converter struct {
	mu        sync.RWMutex
	btcUSD    float64
	usdMXN    float64
	refreshed time.Time
	logger    *slog.Logger
}

// NewConverter seeds the mocked rates.
func NewConverter(logger *slog.Logger) *Converter {
	return &Converter{
		btcUSD:    mockBTCUSDRate,
		usdMXN:    mockUSDMXNRate,
		refreshed: time.Now().UTC(),
		logger:    logger,
	}
}

// QuoteMXN converts an MXN price using the current snapshot.
func (c *Converter) QuoteMXN(priceMXN int64) Quote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	btcMXN := c.btcUSD * c.usdMXN
	return Quote{
		AmountBTC:  float64(priceMXN) / btcMXN,
		BTCRateUSD: c.btcUSD,
		QuotedAt:   c.refreshed,
	}
}

// Refresh re-stamps the snapshot. With mocked rates only the timestamp
// moves; a market-data integration would swap the rates here.
func (c *Converter) Refresh() {
	c.mu.Lock()
	c.refreshed = time.Now().UTC()
	c.mu.Unlock()
	if c.logger != nil {
		c.logger.Debug("btc rate refreshed", "btc_usd", mockBTCUSDRate, "usd_mxn", mockUSDMXNRate)
	}
}

// Schedule registers the periodic refresh on the given cron runner.
func (c *Converter) Schedule(runner *cron.Cron, spec string) error {
	if spec == "" {
		spec = "@every 5m"
	}
	_, err := runner.AddFunc(spec, c.Refresh)
	return err
}
