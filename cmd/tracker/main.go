package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"CryptoTracker/internal/cache"
	"CryptoTracker/internal/collector"
	"CryptoTracker/internal/config"
	"CryptoTracker/internal/console"
	"CryptoTracker/internal/exchange"
	"CryptoTracker/internal/notifier"
	"CryptoTracker/internal/recorder"
	"CryptoTracker/internal/scheduler"
)

func main() {
	var (
		cfgPath = flag.String("config", "configs/config.yaml", "path to the YAML config (CONFIG_PATH overrides the default)")
		once    = flag.Bool("once", false, "refresh, print overview and suggestions, then exit")
		history = flag.String("history", "", "print price history summary for SYMBOL and exit")
		period  = flag.String("period", "30d", "history period: 7d, 30d, 90d or 1y")
		quote   = flag.String("quote", "", "print a ChangeNOW quote for FROM:TO and exit")
		amount  = flag.String("amount", "", "amount to quote (default: max(minimum, 1))")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	path := *cfgPath
	if v := os.Getenv("CONFIG_PATH"); v != "" && !isFlagSet("config") {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	fetcher := collector.NewCoinGeckoFetcher(cfg.CoinGecko.BaseURL, cfg.CoinGecko.APIKey, cfg.Proxy, cfg.CoinGecko.RequestsPerMinute)
	col := collector.NewCollector(fetcher, cfg.Coins, cfg.CoinGecko.VsCurrency)
	quoter := exchange.NewQuoter(exchange.NewClient(cfg.ChangeNOW.BaseURL, cfg.ChangeNOW.APIKey, cfg.Proxy, cfg.ChangeNOW.RequestsPerMinute))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *history != "":
		os.Exit(runHistory(ctx, col, *history, *period))
	case *quote != "":
		os.Exit(runQuote(ctx, col, quoter, *quote, *amount))
	}

	store, err := cache.NewStore(cfg.Cache.StateFile)
	if err != nil {
		log.Fatal().Err(err).Msg("init market cache")
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	var (
		sender notifier.Sender = notifier.NewLogSender()
		tn     *notifier.TelegramNotifier
	)
	if cfg.TelegramEnabled() && !*once {
		tn, err = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		if err != nil {
			log.Fatal().Err(err).Msg("init telegram")
		}
		sender = tn
	}

	sched := scheduler.NewScheduler(ctx, col, quoter, store, sender, rec)

	if *once {
		if _, err := sched.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("refresh")
			rec.Close()
			os.Exit(1)
		}
		recs, _ := sched.Analyze()
		fmt.Println(console.RenderMarkets(store.Ordered(cfg.Coins)))
		fmt.Println(console.RenderSuggestions(recs))
		return
	}

	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.AnalysisCron, cfg.Schedule.OverviewCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Int64("chat", cfg.Telegram.ChatID).Msg("telegram polling started")
	} else {
		log.Warn().Msg("telegram not configured, notifications go to the log")
	}

	go sched.RunRefreshNow()

	log.Info().Int("coins", len(cfg.Coins)).Msg("CryptoTracker is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping...")
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func runHistory(ctx context.Context, col *collector.Collector, symbol, period string) int {
	days, err := collector.ParsePeriod(period)
	if err != nil {
		log.Error().Err(err).Msg("history")
		return 2
	}
	coin, _, stats, err := col.History(ctx, symbol, days)
	if err != nil {
		log.Error().Err(err).Str("coin", symbol).Msg("history")
		return 1
	}
	fmt.Println(console.RenderHistory(coin, days, stats))
	return 0
}

func runQuote(ctx context.Context, col *collector.Collector, quoter *exchange.Quoter, pair, amountStr string) int {
	fromSym, toSym, ok := strings.Cut(pair, ":")
	if !ok {
		log.Error().Str("quote", pair).Msg("quote must look like FROM:TO")
		return 2
	}
	from, ok := col.Lookup(fromSym)
	if !ok {
		log.Error().Str("coin", fromSym).Msg("unknown coin")
		return 2
	}
	to, ok := col.Lookup(toSym)
	if !ok {
		log.Error().Str("coin", toSym).Msg("unknown coin")
		return 2
	}

	var amount decimal.NullDecimal
	if amountStr != "" {
		d, err := decimal.NewFromString(amountStr)
		if err != nil {
			log.Error().Err(err).Msg("please enter a valid amount")
			return 2
		}
		amount = decimal.NewNullDecimal(d)
	}

	q, err := quoter.Quote(ctx, from, to, amount)
	if err != nil {
		log.Error().Err(err).Msg("quote")
		return 1
	}
	fmt.Println(console.RenderQuote(q))
	fmt.Println("Rates move quickly. Verify on ChangeNOW before exchanging.")
	return 0
}
