package collector

import (
	"context"

	"CryptoTracker/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchMarkets(ctx context.Context, coins []model.Coin, vsCurrency string) ([]model.AssetSnapshot, error)
	FetchPriceHistory(ctx context.Context, coinID, vsCurrency string, days int) (*model.PriceHistory, error)
	Name() string
}
