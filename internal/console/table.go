package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"CryptoTracker/internal/model"
	"CryptoTracker/internal/notifier"
)

var (
	subtle  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	special = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	danger  = lipgloss.AdaptiveColor{Light: "#D14343", Dark: "#F25D5D"}
	caution = lipgloss.AdaptiveColor{Light: "#C9A227", Dark: "#FFD700"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func actionColor(a model.Action) lipgloss.TerminalColor {
	switch a {
	case model.ActionBuy:
		return special
	case model.ActionSell:
		return danger
	default:
		return caution
	}
}

func changeColor(pct float64) lipgloss.TerminalColor {
	if pct >= 0 {
		return special
	}
	return danger
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(subtle)).
		Headers(headers...)
}

// RenderMarkets renders the market overview table.
func RenderMarkets(snaps []model.AssetSnapshot) string {
	t := newTable("Symbol", "Name", "Price", "24h", "Market Cap", "Volume")
	for _, s := range snaps {
		t.Row(s.Symbol, s.Name, notifier.FormatUSD(s.Price), notifier.FormatChange(s.Change24hPct),
			notifier.FormatCompactUSD(s.MarketCap), notifier.FormatCompactUSD(s.Volume24h))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 3 && row >= 0 && row < len(snaps) {
			return cellStyle.Foreground(changeColor(snaps[row].Change24hPct))
		}
		return cellStyle
	})
	return titleStyle.Render("Market overview") + "\n" + t.String()
}

// RenderSuggestions renders a ranking with action-coloured rows.
func RenderSuggestions(recs []model.Recommendation) string {
	if len(recs) == 0 {
		return "No suggestions available. Try refreshing market data first."
	}
	t := newTable("#", "Symbol", "Action", "Confidence", "Target", "Current", "Reasoning")
	for i, r := range recs {
		t.Row(fmt.Sprint(i+1), r.Symbol, string(r.Action), fmt.Sprintf("%d%%", r.Confidence),
			notifier.FormatUSD(r.TargetPrice), notifier.FormatUSD(r.CurrentPrice), r.ReasoningText())
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 2 && row >= 0 && row < len(recs) {
			return cellStyle.Bold(true).Foreground(actionColor(recs[row].Action))
		}
		return cellStyle
	})
	return titleStyle.Render("Suggestions") + "\n" + t.String()
}

// RenderQuote renders an exchange quote as a single-row table.
func RenderQuote(q *model.ExchangeQuote) string {
	t := newTable("Pair", "Amount", "Estimated", "Rate", "Minimum", "Network Fee")
	t.Row(q.From+" → "+q.To,
		q.Amount.StringFixed(8)+" "+q.From,
		q.EstimatedAmount.StringFixed(8)+" "+q.To,
		"1:"+q.Rate.StringFixed(6),
		q.MinAmount.StringFixed(8)+" "+q.From,
		q.NetworkFee)
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return t.String()
}

// RenderHistory renders price history statistics.
func RenderHistory(coin model.Coin, days int, stats *model.HistoryStats) string {
	t := newTable("Metric", "Value")
	t.Row("First", notifier.FormatUSD(stats.First))
	t.Row("Last", notifier.FormatUSD(stats.Last))
	t.Row("Change", notifier.FormatChange(stats.ChangePct))
	t.Row("High", notifier.FormatUSD(stats.High))
	t.Row("Low", notifier.FormatUSD(stats.Low))
	t.Row(fmt.Sprintf("SMA%d", stats.SMAPeriod), notifier.FormatUSD(stats.SMA))
	t.Row("RSI14", fmt.Sprintf("%.1f", stats.RSI))
	t.Row("Points", fmt.Sprint(stats.Points))
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	title := strings.TrimSpace(fmt.Sprintf("%s %s %dd", coin.Symbol, coin.Name, days))
	return titleStyle.Render(title) + "\n" + t.String()
}
