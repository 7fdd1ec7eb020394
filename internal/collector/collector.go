package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"CryptoTracker/internal/calculator"
	"CryptoTracker/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Snapshots []model.AssetSnapshot
	History   map[string][]model.PricePoint
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMarkets(_ context.Context, coins []model.Coin, _ string) ([]model.AssetSnapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	byID := make(map[string]model.AssetSnapshot, len(m.Snapshots))
	for _, s := range m.Snapshots {
		byID[s.ID] = s
	}
	out := make([]model.AssetSnapshot, 0, len(coins))
	for _, c := range coins {
		if s, ok := byID[c.ID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchPriceHistory(_ context.Context, coinID, vsCurrency string, days int) (*model.PriceHistory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	points, ok := m.History[coinID]
	if !ok {
		points = generateMockHistory(100, days)
	}
	return &model.PriceHistory{CoinID: coinID, VsCurrency: vsCurrency, Days: days, Points: points}, nil
}

func generateMockHistory(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Time:  time.Now().AddDate(0, 0, -(count - i)),
			Price: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}

// Collector fetches market data for the configured coins.
type Collector struct {
	Fetcher    Fetcher
	Coins      []model.Coin
	VsCurrency string
	logger     zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, coins []model.Coin, vsCurrency string) *Collector {
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	return &Collector{
		Fetcher:    fetcher,
		Coins:      coins,
		VsCurrency: vsCurrency,
		logger:     log.With().Str("component", "collector").Str("source", fetcher.Name()).Logger(),
	}
}

// Collect fetches the latest snapshot of every configured coin.
func (c *Collector) Collect(ctx context.Context) ([]model.AssetSnapshot, error) {
	snaps, err := c.Fetcher.FetchMarkets(ctx, c.Coins, c.VsCurrency)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	if missing := len(c.Coins) - len(snaps); missing > 0 {
		c.logger.Warn().Int("missing", missing).Msg("provider returned fewer coins than configured")
	}
	c.logger.Info().Int("coins", len(snaps)).Msg("markets collected")
	return snaps, nil
}

// Lookup finds a configured coin by symbol or id, ignoring case.
func (c *Collector) Lookup(symbolOrID string) (model.Coin, bool) {
	for _, coin := range c.Coins {
		if strings.EqualFold(coin.Symbol, symbolOrID) || strings.EqualFold(coin.ID, symbolOrID) {
			return coin, true
		}
	}
	return model.Coin{}, false
}

// History fetches a coin's price history and summarises it.
func (c *Collector) History(ctx context.Context, symbolOrID string, days int) (model.Coin, *model.PriceHistory, *model.HistoryStats, error) {
	coin, ok := c.Lookup(symbolOrID)
	if !ok {
		return model.Coin{}, nil, nil, fmt.Errorf("unknown coin %q", symbolOrID)
	}
	hist, err := c.Fetcher.FetchPriceHistory(ctx, coin.ID, c.VsCurrency, days)
	if err != nil {
		return coin, nil, nil, fmt.Errorf("fetch history: %w", err)
	}
	stats, err := calculator.Summarize(hist)
	if err != nil {
		return coin, hist, nil, fmt.Errorf("summarize history: %w", err)
	}
	return coin, hist, stats, nil
}
