package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoTracker/internal/model"
)

func series(prices ...float64) []model.PricePoint {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{Time: start.AddDate(0, 0, i), Price: p}
	}
	return points
}

func TestCalculateSMA(t *testing.T) {
	sma, err := CalculateSMA([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, sma, 1e-9)

	sma, err = CalculateSMA([]float64{3, 4}, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, sma)

	_, err = CalculateSMA([]float64{1, 2}, 5)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestCalculateRSI(t *testing.T) {
	rsi, err := CalculateRSI([]float64{1, 2, 3}, 14)
	require.NoError(t, err)
	assert.Equal(t, 50.0, rsi)

	rising := make([]float64, 30)
	falling := make([]float64, 30)
	for i := range rising {
		rising[i] = 100 + float64(i) + float64(i%2)*0.5
		falling[i] = 200 - float64(i) - float64(i%2)*0.5
	}
	up, err := CalculateRSI(rising, 14)
	require.NoError(t, err)
	assert.Greater(t, up, 70.0)

	down, err := CalculateRSI(falling, 14)
	require.NoError(t, err)
	assert.Less(t, down, 30.0)

	_, err = CalculateRSI(rising, 1)
	assert.Error(t, err)
}

func TestCalculateRange(t *testing.T) {
	high, low, err := CalculateRange(series(5, 9, 2, 7))
	require.NoError(t, err)
	assert.Equal(t, 9.0, high)
	assert.Equal(t, 2.0, low)

	_, _, err = CalculateRange(nil)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	stats, err := Summarize(&model.PriceHistory{CoinID: "bitcoin", Days: 7, Points: series(100, 110, 90, 120)})
	require.NoError(t, err)

	assert.Equal(t, 100.0, stats.First)
	assert.Equal(t, 120.0, stats.Last)
	assert.Equal(t, 120.0, stats.High)
	assert.Equal(t, 90.0, stats.Low)
	assert.InDelta(t, 20.0, stats.ChangePct, 1e-9)
	assert.Equal(t, 4, stats.SMAPeriod)
	assert.InDelta(t, 105.0, stats.SMA, 1e-9)
	assert.Equal(t, 50.0, stats.RSI)
	assert.Equal(t, 4, stats.Points)

	_, err = Summarize(&model.PriceHistory{})
	assert.Error(t, err)
}
