package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"CryptoTracker/internal/model"
)

// FormatUSD renders a price with four decimals and thousands separators.
func FormatUSD(v float64) string {
	return "$" + humanize.FormatFloat("#,###.####", v)
}

// FormatCompactUSD renders market cap and volume as $x.xxB, $x.xxM or a whole dollar amount.
func FormatCompactUSD(v float64) string {
	switch {
	case v > 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v > 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return "$" + humanize.FormatFloat("#,###.", v)
	}
}

// FormatChange renders a signed percentage change.
func FormatChange(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

func changeIcon(pct float64) string {
	if pct >= 0 {
		return "🟢"
	}
	return "🔴"
}

// FormatMarketOverview formats the cached market snapshots into a Telegram message.
func FormatMarketOverview(snaps []model.AssetSnapshot, refreshedAt time.Time) string {
	if len(snaps) == 0 {
		return "No market data yet. Try /refresh first."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Market overview</b> | %s\n\n", refreshedAt.Format("2006-01-02 15:04")))
	for _, s := range snaps {
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s: %s (%s)\n",
			changeIcon(s.Change24hPct), s.Symbol, html.EscapeString(s.Name), FormatUSD(s.Price), FormatChange(s.Change24hPct)))
		b.WriteString(fmt.Sprintf("   cap %s | vol %s\n", FormatCompactUSD(s.MarketCap), FormatCompactUSD(s.Volume24h)))
	}
	return b.String()
}

// FormatSuggestions formats a ranking with a summary header.
func FormatSuggestions(recs []model.Recommendation, coinsAnalyzed int, analyzedAt time.Time) string {
	if len(recs) == 0 {
		return "No suggestions available. Try refreshing market data first."
	}

	counts := map[model.Action]int{}
	for _, r := range recs {
		counts[r.Action]++
	}

	var b strings.Builder
	b.WriteString("🎯 <b>Market analysis</b>\n\n")
	b.WriteString(fmt.Sprintf("Analyzed %d cryptocurrencies, %d suggestions\n", coinsAnalyzed, len(recs)))
	b.WriteString(fmt.Sprintf("BUY %d | SELL %d | HOLD %d\n\n",
		counts[model.ActionBuy], counts[model.ActionSell], counts[model.ActionHold]))

	for i, r := range recs {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> %s %d%%\n", i+1, r.Symbol, actionIcon(r.Action), r.Confidence))
		b.WriteString(fmt.Sprintf("   target %s | now %s\n", FormatUSD(r.TargetPrice), FormatUSD(r.CurrentPrice)))
		b.WriteString(fmt.Sprintf("   <i>%s</i>\n", html.EscapeString(r.ReasoningText())))
	}

	b.WriteString("\n⚠️ Automated analysis of 24h price data. Do your own research before trading.\n")
	b.WriteString(fmt.Sprintf("Last updated: %s", analyzedAt.Format("2006-01-02 15:04:05")))
	return b.String()
}

func actionIcon(a model.Action) string {
	switch a {
	case model.ActionBuy:
		return "🟢 BUY"
	case model.ActionSell:
		return "🔴 SELL"
	default:
		return "🟡 HOLD"
	}
}

// FormatExchangeQuote formats a ChangeNOW quote.
func FormatExchangeQuote(q *model.ExchangeQuote) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💱 <b>%s → %s</b>\n\n", q.From, q.To))
	b.WriteString(fmt.Sprintf("Minimum: %s %s\n", q.MinAmount.StringFixed(8), q.From))
	if q.CustomAmount {
		b.WriteString(fmt.Sprintf("For your amount of %s %s\n", q.Amount.StringFixed(8), q.From))
	} else {
		b.WriteString(fmt.Sprintf("For %s %s (minimum or 1 unit)\n", q.Amount.StringFixed(8), q.From))
	}
	b.WriteString(fmt.Sprintf("You get ≈ %s %s\n", q.EstimatedAmount.StringFixed(8), q.To))
	b.WriteString(fmt.Sprintf("Rate: 1:%s\n", q.Rate.StringFixed(6)))
	if q.RangeMax.Valid {
		b.WriteString(fmt.Sprintf("Maximum: %s %s\n", q.RangeMax.Decimal.StringFixed(8), q.From))
	}
	b.WriteString(fmt.Sprintf("Network fee: %s | Service fee: %s\n", q.NetworkFee, q.ServiceFee))
	b.WriteString("\nRates move quickly. Verify on ChangeNOW before exchanging.")
	return b.String()
}

// FormatPriceHistory formats a history summary for a coin.
func FormatPriceHistory(coin model.Coin, days int, stats *model.HistoryStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 <b>%s</b> %s | %dd\n\n", coin.Symbol, html.EscapeString(coin.Name), days))
	b.WriteString(fmt.Sprintf("First: %s\n", FormatUSD(stats.First)))
	b.WriteString(fmt.Sprintf("Last: %s (%s)\n", FormatUSD(stats.Last), FormatChange(stats.ChangePct)))
	b.WriteString(fmt.Sprintf("High: %s | Low: %s\n", FormatUSD(stats.High), FormatUSD(stats.Low)))
	b.WriteString(fmt.Sprintf("SMA%d: %s | RSI14: %.0f\n", stats.SMAPeriod, FormatUSD(stats.SMA), stats.RSI))
	b.WriteString(fmt.Sprintf("Points: %d", stats.Points))
	return b.String()
}
