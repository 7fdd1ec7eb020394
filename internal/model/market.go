package model

import "time"

// Coin is a tracked asset and its identifiers at each provider.
type Coin struct {
	ID             string `yaml:"id" json:"id"` // CoinGecko id
	Symbol         string `yaml:"symbol" json:"symbol"`
	Name           string `yaml:"name" json:"name"`
	ExchangeTicker string `yaml:"exchange_ticker" json:"exchange_ticker"` // ChangeNOW ticker, empty when unsupported
}

// AssetSnapshot is a point-in-time set of market metrics for one asset.
// Zero MarketCap or Volume24h means the provider did not report it.
type AssetSnapshot struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Symbol       string    `json:"symbol"`
	Price        float64   `json:"price"`
	Change24hPct float64   `json:"change_24h_pct"`
	MarketCap    float64   `json:"market_cap"`
	Volume24h    float64   `json:"volume_24h"`
	LastUpdated  time.Time `json:"last_updated"`
}

// PricePoint is a single sample of a price history.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// PriceHistory holds a coin's price series for a lookback window.
type PriceHistory struct {
	CoinID     string
	VsCurrency string
	Days       int
	Points     []PricePoint
}

// HistoryStats summarises a PriceHistory.
type HistoryStats struct {
	First     float64
	Last      float64
	High      float64
	Low       float64
	ChangePct float64
	SMA       float64
	SMAPeriod int
	RSI       float64
	Points    int
}
