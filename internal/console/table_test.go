package console

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"CryptoTracker/internal/model"
)

func TestRenderMarkets(t *testing.T) {
	out := RenderMarkets([]model.AssetSnapshot{
		{Symbol: "BTC", Name: "Bitcoin", Price: 50000, Change24hPct: -2.5, MarketCap: 1e12, Volume24h: 3e10},
		{Symbol: "ETH", Name: "Ethereum", Price: 2000, Change24hPct: 1.25, MarketCap: 240e9, Volume24h: 9e6},
	})
	for _, want := range []string{"Market overview", "Symbol", "BTC", "$50,000.0000", "-2.50%", "$1000.00B", "+1.25%", "$9.00M"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderSuggestions(t *testing.T) {
	out := RenderSuggestions([]model.Recommendation{
		{Symbol: "BTC", Action: model.ActionBuy, Confidence: 90, TargetPrice: 60000, CurrentPrice: 50000,
			Reasoning: []string{"Oversold condition (-20.0%)"}},
		{Symbol: "SOL", Action: model.ActionSell, Confidence: 70, TargetPrice: 95, CurrentPrice: 100},
	})
	for _, want := range []string{"Suggestions", "BUY", "90%", "$60,000.0000", "Oversold condition (-20.0%)", "SELL", "70%"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, "No suggestions available. Try refreshing market data first.", RenderSuggestions(nil))
}

func TestRenderQuoteAndHistory(t *testing.T) {
	out := RenderQuote(&model.ExchangeQuote{
		From: "BTC", To: "ETH",
		MinAmount:       decimal.RequireFromString("0.0004"),
		Amount:          decimal.NewFromInt(1),
		EstimatedAmount: decimal.RequireFromString("16.5"),
		Rate:            decimal.RequireFromString("16.5"),
		NetworkFee:      "Variable",
	})
	assert.Contains(t, out, "BTC → ETH")
	assert.Contains(t, out, "16.50000000 ETH")
	assert.Contains(t, out, "1:16.500000")

	out = RenderHistory(model.Coin{Symbol: "ETH", Name: "Ethereum"}, 90, &model.HistoryStats{
		First: 1800, Last: 2000, ChangePct: 11.11, SMA: 1900, SMAPeriod: 20, RSI: 55.55, Points: 91,
	})
	assert.Contains(t, out, "ETH Ethereum 90d")
	assert.Contains(t, out, "SMA20")
	assert.Contains(t, out, "+11.11%")
	assert.Contains(t, out, "91")
}
