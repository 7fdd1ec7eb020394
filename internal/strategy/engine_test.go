package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoTracker/internal/model"
)

func snap(symbol string, price, change, marketCap, volume float64) model.AssetSnapshot {
	return model.AssetSnapshot{
		ID:           symbol,
		Name:         symbol,
		Symbol:       symbol,
		Price:        price,
		Change24hPct: change,
		MarketCap:    marketCap,
		Volume24h:    volume,
	}
}

func TestScore_OversoldMajor(t *testing.T) {
	rec, ok := Score(snap("BTC", 50000, -20, 1e12, 5e10))
	require.True(t, ok)

	assert.Equal(t, model.ActionBuy, rec.Action)
	assert.Equal(t, 90, rec.Confidence)
	assert.InDelta(t, 60000, rec.TargetPrice, 1e-6)
	assert.Equal(t, 50000.0, rec.CurrentPrice)
	// volume ratio is exactly 0.05, which is not "low"
	assert.Equal(t, []string{
		"Oversold condition (-20.0%)",
		"Large-cap stability",
		"Major cryptocurrency",
	}, rec.Reasoning)
}

func TestScore_UnknownCapSideways(t *testing.T) {
	rec, ok := Score(snap("XYZ", 1, 0, 0, 0))
	require.True(t, ok)

	assert.Equal(t, model.ActionHold, rec.Action)
	assert.Equal(t, 45, rec.Confidence)
	assert.Equal(t, 1.0, rec.TargetPrice)
	assert.Equal(t, []string{"Sideways movement (0.0%)", "Small-cap volatility"}, rec.Reasoning)
	assert.Equal(t, "Sideways movement (0.0%) | Small-cap volatility", rec.ReasoningText())
}

func TestScore_SkipsUnpriced(t *testing.T) {
	_, ok := Score(snap("BTC", 0, -20, 1e12, 5e10))
	assert.False(t, ok)
	_, ok = Score(snap("BTC", -1, 0, 0, 0))
	assert.False(t, ok)
}

func TestScore_MomentumBranches(t *testing.T) {
	tests := []struct {
		name       string
		in         model.AssetSnapshot
		action     model.Action
		confidence int
		target     float64
		reasons    []string
	}{
		{
			name:       "strong rally sells",
			in:         snap("SOL", 100, 20, 10e9, 1e9),
			action:     model.ActionSell,
			confidence: 70,
			target:     95,
			reasons:    []string{"Strong upward momentum (+20.0%)"},
		},
		{
			name:       "gain on heavy volume buys",
			in:         snap("ADA", 10, 8, 10e9, 3e9),
			action:     model.ActionBuy,
			confidence: 75,
			target:     11,
			reasons:    []string{"Good momentum with high volume", "High trading volume"},
		},
		{
			name:       "gain on thin volume holds",
			in:         snap("ADA", 10, 8, 10e9, 0.6e9),
			action:     model.ActionHold,
			confidence: 50,
			target:     10,
			reasons:    []string{"Moderate gain (+8.0%)"},
		},
		{
			name:       "dip buys",
			in:         snap("LINK", 20, -7.25, 10e9, 1e9),
			action:     model.ActionBuy,
			confidence: 60,
			target:     23,
			reasons:    []string{"Dip buying opportunity (-7.2%)"},
		},
		{
			name:       "boundary 15 is moderate not strong",
			in:         snap("LTC", 100, 15, 10e9, 0.6e9),
			action:     model.ActionHold,
			confidence: 50,
			target:     100,
			reasons:    []string{"Moderate gain (+15.0%)"},
		},
		{
			name:       "boundary -5 is sideways",
			in:         snap("LTC", 100, -5, 10e9, 0.6e9),
			action:     model.ActionHold,
			confidence: 50,
			target:     100,
			reasons:    []string{"Sideways movement (-5.0%)"},
		},
		{
			name:       "boundary -15 is a dip",
			in:         snap("LTC", 100, -15, 10e9, 0.6e9),
			action:     model.ActionBuy,
			confidence: 60,
			target:     115,
			reasons:    []string{"Dip buying opportunity (-15.0%)"},
		},
		{
			name:       "unknown cap with any volume counts as heavy",
			in:         snap("NEW", 1, 6, 0, 10),
			action:     model.ActionBuy,
			confidence: 60,
			target:     1.1,
			reasons:    []string{"Good momentum with high volume", "Small-cap volatility"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := Score(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.action, rec.Action)
			assert.Equal(t, tt.confidence, rec.Confidence)
			assert.InDelta(t, tt.target, rec.TargetPrice, 1e-9)
			assert.Equal(t, tt.reasons, rec.Reasoning)
		})
	}
}

func TestScore_VolumeBoundaries(t *testing.T) {
	// ratio exactly 0.2 earns nothing
	rec, _ := Score(snap("DOT", 5, 0, 10e9, 2e9))
	assert.Equal(t, 50, rec.Confidence)
	assert.Equal(t, []string{"Sideways movement (0.0%)"}, rec.Reasoning)

	rec, _ = Score(snap("DOT", 5, 0, 10e9, 0.4e9))
	assert.Equal(t, 45, rec.Confidence)
	assert.Contains(t, rec.Reasoning, "Low trading volume")
}

func TestScore_Stablecoin(t *testing.T) {
	inputs := []model.AssetSnapshot{
		snap("USDT", 1.0002, 0.01, 100e9, 50e9),
		snap("USDC", 0.999, -30, 30e9, 1),
		snap("USDT", 1, 40, 0, 0),
	}
	for _, in := range inputs {
		rec, ok := Score(in)
		require.True(t, ok)
		assert.Equal(t, model.ActionHold, rec.Action)
		assert.Equal(t, 90, rec.Confidence)
		assert.Equal(t, in.Price, rec.TargetPrice)
		assert.Equal(t, []string{"Stablecoin - hold for stability"}, rec.Reasoning)
	}
}

func TestScore_ClampsHigh(t *testing.T) {
	// 50 + 25 + 10 + 5 + 10 = 100
	rec, ok := Score(snap("ETH", 2000, -25, 300e9, 90e9))
	require.True(t, ok)
	assert.Equal(t, MaxConfidence, rec.Confidence)
}

func TestScore_ConfidenceAlwaysInRange(t *testing.T) {
	changes := []float64{-50, -15.01, -15, -10, -5.01, -5, 0, 5, 5.01, 10, 15, 15.01, 80}
	caps := []float64{0, 5e8, 1e9, 20e9, 50e9, 60e9, 1e12}
	ratios := []float64{0, 0.01, 0.05, 0.1, 0.2, 0.5, 3}
	symbols := []string{"BTC", "ETH", "USDT", "USDC", "DOGE"}

	for _, sym := range symbols {
		for _, c := range changes {
			for _, mc := range caps {
				for _, r := range ratios {
					rec, ok := Score(snap(sym, 3.5, c, mc, mc*r))
					require.True(t, ok)
					assert.GreaterOrEqual(t, rec.Confidence, MinConfidence)
					assert.LessOrEqual(t, rec.Confidence, MaxConfidence)
				}
			}
		}
	}
}

func TestRank_SortsStableAndTruncates(t *testing.T) {
	var in []model.AssetSnapshot
	// twelve identical mid-caps: all score 50
	for _, sym := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		in = append(in, snap(sym, 1, 0, 10e9, 1e9))
	}
	in = append(in, snap("USDT", 1, 0, 100e9, 50e9)) // 90
	in = append(in, snap("ZERO", 0, -30, 1e12, 1e12)) // skipped

	recs := Rank(in)
	require.Len(t, recs, TopN)
	assert.Equal(t, "USDT", recs[0].Symbol)

	want := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	for i, sym := range want {
		assert.Equal(t, sym, recs[i+1].Symbol)
	}
	for _, r := range recs {
		assert.NotEqual(t, "ZERO", r.Symbol)
	}
}

func TestRank_ShortInput(t *testing.T) {
	recs := Rank([]model.AssetSnapshot{
		snap("XYZ", 1, 0, 0, 0),
		snap("BTC", 50000, -20, 1e12, 5e10),
		snap("NOPE", 0, 0, 0, 0),
	})
	require.Len(t, recs, 2)
	assert.Equal(t, "BTC", recs[0].Symbol)
	assert.Equal(t, "XYZ", recs[1].Symbol)

	assert.Empty(t, Rank(nil))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassMajor, Classify("BTC"))
	assert.Equal(t, ClassMajor, Classify("ETH"))
	assert.Equal(t, ClassStablecoin, Classify("USDT"))
	assert.Equal(t, ClassStablecoin, Classify("USDC"))
	assert.Equal(t, ClassOther, Classify("btc"))
	assert.Equal(t, ClassOther, Classify("DAI"))
}
