package collector

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"CryptoTracker/internal/model"
	"CryptoTracker/internal/platform/httpx"
)

const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// CoinGeckoFetcher implements Fetcher using the CoinGecko public API.
type CoinGeckoFetcher struct {
	BaseURL string
	Client  *httpx.Client
}

// NewCoinGeckoFetcher creates a fetcher. apiKey is the optional demo key.
func NewCoinGeckoFetcher(baseURL, apiKey, proxyURL string, requestsPerMinute int) *CoinGeckoFetcher {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	headers := map[string]string{}
	if apiKey != "" {
		headers["x-cg-demo-api-key"] = apiKey
	}
	return &CoinGeckoFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: httpx.NewClient(httpx.Options{
			Name:              "coingecko",
			Timeout:           15 * time.Second,
			RequestsPerMinute: requestsPerMinute,
			Proxy:             proxyURL,
			Headers:           headers,
		}),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// cgMarket is one element of the /coins/markets response. Numeric fields are
// nullable upstream.
type cgMarket struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             *float64 `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	MarketCap                *float64 `json:"market_cap"`
	TotalVolume              *float64 `json:"total_volume"`
	LastUpdated              string   `json:"last_updated"`
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// FetchMarkets returns snapshots in the order of coins. Coins the provider
// did not return are left out.
func (f *CoinGeckoFetcher) FetchMarkets(ctx context.Context, coins []model.Coin, vsCurrency string) ([]model.AssetSnapshot, error) {
	ids := make([]string, len(coins))
	for i, c := range coins {
		ids[i] = c.ID
	}
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("ids", strings.Join(ids, ","))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", "100")
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "24h")

	var markets []cgMarket
	if err := f.Client.GetJSON(ctx, f.BaseURL+"/coins/markets?"+q.Encode(), &markets); err != nil {
		return nil, fmt.Errorf("coingecko markets: %w", err)
	}

	byID := make(map[string]cgMarket, len(markets))
	for _, m := range markets {
		byID[m.ID] = m
	}

	snaps := make([]model.AssetSnapshot, 0, len(coins))
	for _, c := range coins {
		m, ok := byID[c.ID]
		if !ok {
			continue
		}
		snap := model.AssetSnapshot{
			ID:           m.ID,
			Name:         m.Name,
			Symbol:       strings.ToUpper(m.Symbol),
			Price:        orZero(m.CurrentPrice),
			Change24hPct: orZero(m.PriceChangePercentage24h),
			MarketCap:    orZero(m.MarketCap),
			Volume24h:    orZero(m.TotalVolume),
		}
		if ts, err := time.Parse(time.RFC3339, m.LastUpdated); err == nil {
			snap.LastUpdated = ts
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// FetchPriceHistory returns the price series for the last days. Granularity
// is daily above a week and left to the provider (hourly) otherwise.
func (f *CoinGeckoFetcher) FetchPriceHistory(ctx context.Context, coinID, vsCurrency string, days int) (*model.PriceHistory, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("days", strconv.Itoa(days))
	if days > 7 {
		q.Set("interval", "daily")
	}
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?%s", f.BaseURL, url.PathEscape(coinID), q.Encode())

	var chart struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := f.Client.GetJSON(ctx, endpoint, &chart); err != nil {
		return nil, fmt.Errorf("coingecko market chart: %w", err)
	}

	points := make([]model.PricePoint, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) < 2 {
			continue
		}
		points = append(points, model.PricePoint{
			Time:  time.UnixMilli(int64(p[0])).UTC(),
			Price: p[1],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no price data available for %s", coinID)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	return &model.PriceHistory{
		CoinID:     coinID,
		VsCurrency: vsCurrency,
		Days:       days,
		Points:     points,
	}, nil
}
