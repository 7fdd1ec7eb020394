package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"
)

// CalculateRSI returns the latest Wilder RSI of prices over period.
// Returns 50.0 if there are fewer than period+1 prices.
func CalculateRSI(prices []float64, period int) (float64, error) {
	if period < 2 {
		return 0, errors.New("period must be at least 2")
	}
	if len(prices) < period+1 {
		return 50.0, nil // default when data insufficient
	}
	rsi := talib.Rsi(prices, period)
	return rsi[len(rsi)-1], nil
}
