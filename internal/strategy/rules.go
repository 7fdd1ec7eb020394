package strategy

import (
	"fmt"

	"CryptoTracker/internal/model"
)

// SymbolClass groups symbols that get special treatment by the identity rule.
type SymbolClass int

const (
	ClassOther SymbolClass = iota
	ClassMajor
	ClassStablecoin
)

// Classify maps a symbol to its fixed class.
func Classify(symbol string) SymbolClass {
	switch symbol {
	case "BTC", "ETH":
		return ClassMajor
	case "USDT", "USDC":
		return ClassStablecoin
	default:
		return ClassOther
	}
}

// scoreMomentum reacts to the 24h change. Exactly one branch fires.
func scoreMomentum(s model.AssetSnapshot) (Adjustment, bool) {
	change := s.Change24hPct
	switch {
	case change > 15:
		return Adjustment{
			Action:       model.ActionSell,
			Confidence:   20,
			Reason:       fmt.Sprintf("Strong upward momentum (+%.1f%%)", change),
			TargetFactor: 0.95,
		}, true
	case change > 5:
		if s.Volume24h > s.MarketCap*0.1 {
			return Adjustment{
				Action:       model.ActionBuy,
				Confidence:   15,
				Reason:       "Good momentum with high volume",
				TargetFactor: 1.1,
			}, true
		}
		return Adjustment{
			Action: model.ActionHold,
			Reason: fmt.Sprintf("Moderate gain (+%.1f%%)", change),
		}, true
	case change < -15:
		return Adjustment{
			Action:       model.ActionBuy,
			Confidence:   25,
			Reason:       fmt.Sprintf("Oversold condition (%.1f%%)", change),
			TargetFactor: 1.2,
		}, true
	case change < -5:
		return Adjustment{
			Action:       model.ActionBuy,
			Confidence:   10,
			Reason:       fmt.Sprintf("Dip buying opportunity (%.1f%%)", change),
			TargetFactor: 1.15,
		}, true
	default:
		return Adjustment{Reason: fmt.Sprintf("Sideways movement (%.1f%%)", change)}, true
	}
}

// scoreVolume compares 24h volume against market cap. Skipped when the cap is unknown.
func scoreVolume(s model.AssetSnapshot) (Adjustment, bool) {
	if s.MarketCap <= 0 {
		return Adjustment{}, false
	}
	ratio := s.Volume24h / s.MarketCap
	switch {
	case ratio > 0.2:
		return Adjustment{Confidence: 10, Reason: "High trading volume"}, true
	case ratio < 0.05:
		return Adjustment{Confidence: -5, Reason: "Low trading volume"}, true
	}
	return Adjustment{}, false
}

func scoreMarketCap(s model.AssetSnapshot) (Adjustment, bool) {
	switch {
	case s.MarketCap > 50e9:
		return Adjustment{Confidence: 5, Reason: "Large-cap stability"}, true
	case s.MarketCap < 1e9:
		return Adjustment{Confidence: -5, Reason: "Small-cap volatility"}, true
	}
	return Adjustment{}, false
}

// scoreIdentity boosts majors. Stablecoins discard everything before it.
func scoreIdentity(s model.AssetSnapshot) (Adjustment, bool) {
	switch Classify(s.Symbol) {
	case ClassMajor:
		return Adjustment{Confidence: 10, Reason: "Major cryptocurrency"}, true
	case ClassStablecoin:
		return Adjustment{
			Override:     true,
			Confidence:   90,
			Action:       model.ActionHold,
			Reason:       "Stablecoin - hold for stability",
			TargetFactor: 1,
		}, true
	}
	return Adjustment{}, false
}
