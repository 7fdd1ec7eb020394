package calculator

import (
	"errors"

	"CryptoTracker/internal/model"
)

const (
	smaPeriod = 20
	rsiPeriod = 14
)

// Summarize computes the headline statistics for a price history.
func Summarize(h *model.PriceHistory) (*model.HistoryStats, error) {
	if h == nil || len(h.Points) == 0 {
		return nil, errors.New("empty price history")
	}
	prices := extractPrices(h.Points)

	high, low, err := CalculateRange(h.Points)
	if err != nil {
		return nil, err
	}

	period := smaPeriod
	if len(prices) < period {
		period = len(prices)
	}
	sma, err := CalculateSMA(prices, period)
	if err != nil {
		return nil, err
	}
	rsi, err := CalculateRSI(prices, rsiPeriod)
	if err != nil {
		return nil, err
	}

	first, last := prices[0], prices[len(prices)-1]
	return &model.HistoryStats{
		First:     first,
		Last:      last,
		High:      high,
		Low:       low,
		ChangePct: CalculateChangePct(first, last),
		SMA:       sma,
		SMAPeriod: period,
		RSI:       rsi,
		Points:    len(prices),
	}, nil
}
