package calculator

import (
	"errors"
	"math"

	"CryptoTracker/internal/model"
)

// CalculateRange scans the history and returns its highest and lowest price.
func CalculateRange(points []model.PricePoint) (high, low float64, err error) {
	if len(points) == 0 {
		return 0, 0, errors.New("no price points provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range points {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
	}
	return high, low, nil
}

// CalculateChangePct returns the percentage move from first to last.
func CalculateChangePct(first, last float64) float64 {
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}
