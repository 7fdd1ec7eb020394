package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"CryptoTracker/internal/collector"
	"CryptoTracker/internal/exchange"
	"CryptoTracker/internal/notifier"
	"CryptoTracker/internal/platform/httpx"
)

const helpText = `Available commands:
• /prices - market overview
• /suggest - ranked suggestions
• /history SYMBOL [7d|30d|90d|1y] - price history summary
• /quote FROM TO [amount] - ChangeNOW exchange estimate
• /refresh - fetch latest prices`

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return helpText
	}
	// "/prices@SomeBot" in group chats
	cmd, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch cmd {
	case "/prices":
		if err := s.ensureFresh(ctx); err != nil {
			return userError("Error fetching data", err)
		}
		return notifier.FormatMarketOverview(s.Cache.Ordered(s.Collector.Coins), s.Cache.RefreshedAt())
	case "/suggest":
		if err := s.ensureFresh(ctx); err != nil {
			return userError("Error analyzing market", err)
		}
		recs, n := s.Analyze()
		_, at := s.Cache.Recommendations()
		return notifier.FormatSuggestions(recs, n, at)
	case "/history":
		return s.history(ctx, args)
	case "/quote":
		return s.quote(ctx, args)
	case "/refresh":
		snaps, err := s.Refresh(ctx)
		if err != nil {
			return userError("Error fetching data", err)
		}
		return fmt.Sprintf("✅ Prices updated for %d coins", len(snaps))
	default:
		return helpText
	}
}

func (s *Scheduler) history(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "Usage: /history SYMBOL [7d|30d|90d|1y]"
	}
	period := ""
	if len(args) > 1 {
		period = args[1]
	}
	days, err := collector.ParsePeriod(period)
	if err != nil {
		return "❌ " + err.Error()
	}
	coin, _, stats, err := s.Collector.History(ctx, args[0], days)
	if err != nil {
		return userError("Error loading history", err)
	}
	return notifier.FormatPriceHistory(coin, days, stats)
}

func (s *Scheduler) quote(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return "Usage: /quote FROM TO [amount]"
	}
	from, ok := s.Collector.Lookup(args[0])
	if !ok {
		return fmt.Sprintf("❌ Unknown coin %q", args[0])
	}
	to, ok := s.Collector.Lookup(args[1])
	if !ok {
		return fmt.Sprintf("❌ Unknown coin %q", args[1])
	}

	var amount decimal.NullDecimal
	if len(args) > 2 {
		d, err := decimal.NewFromString(args[2])
		if err != nil {
			return "❌ Please enter a valid amount"
		}
		amount = decimal.NewNullDecimal(d)
	}

	q, err := s.Quoter.Quote(ctx, from, to, amount)
	if err != nil {
		return userError("Error fetching exchange data", err)
	}
	if err := s.Recorder.RecordQuote(q); err != nil {
		s.logger.Error().Err(err).Msg("record quote")
	}
	return notifier.FormatExchangeQuote(q)
}

var quoteErrors = []error{
	exchange.ErrSameCurrency,
	exchange.ErrUnsupported,
	exchange.ErrInvalidAmount,
	exchange.ErrBelowMinimum,
}

// userError turns an error into a chat reply.
func userError(prefix string, err error) string {
	for _, qe := range quoteErrors {
		if errors.Is(err, qe) {
			return "❌ " + err.Error()
		}
	}
	msg := fmt.Sprintf("❌ %s: %v", prefix, err)
	if httpx.IsRateLimited(err) {
		msg += " (Rate limited - please wait)"
	}
	return msg
}
