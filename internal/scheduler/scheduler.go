package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"CryptoTracker/internal/cache"
	"CryptoTracker/internal/collector"
	"CryptoTracker/internal/exchange"
	"CryptoTracker/internal/model"
	"CryptoTracker/internal/notifier"
	"CryptoTracker/internal/recorder"
	"CryptoTracker/internal/strategy"
)

// Scheduler manages all cron tasks and answers operator commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Quoter    *exchange.Quoter
	Cache     *cache.Store
	Notifier  notifier.Sender
	Recorder  recorder.Recorder
	Ctx       context.Context
	logger    zerolog.Logger
}

// NewScheduler creates a new Scheduler. Overlapping runs of the same task are skipped.
func NewScheduler(ctx context.Context, col *collector.Collector, q *exchange.Quoter, store *cache.Store, sender notifier.Sender, rec recorder.Recorder) *Scheduler {
	logger := log.With().Str("component", "scheduler").Logger()
	cl := cronLogger{logger: logger}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		Collector: col,
		Quoter:    q,
		Cache:     store,
		Notifier:  sender,
		Recorder:  rec,
		Ctx:       ctx,
		logger:    logger,
	}
}

// RegisterAll registers the refresh, analysis and overview tasks.
func (s *Scheduler) RegisterAll(refreshCron, analysisCron, overviewCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	if _, err := s.Cron.AddFunc(overviewCron, s.overviewTask); err != nil {
		return fmt.Errorf("register overview task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Int("tasks", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

// Refresh collects the latest market data into the cache and records it.
func (s *Scheduler) Refresh(ctx context.Context) ([]model.AssetSnapshot, error) {
	snaps, err := s.Collector.Collect(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.Update(snaps)
	if err := s.Recorder.RecordSnapshots(snaps); err != nil {
		s.logger.Error().Err(err).Msg("record snapshots")
	}
	return snaps, nil
}

// Analyze ranks the cached snapshots, stores and records the ranking.
// It returns the ranking and the number of coins that were scored.
func (s *Scheduler) Analyze() ([]model.Recommendation, int) {
	snaps := s.Cache.Ordered(s.Collector.Coins)
	recs := strategy.Rank(snaps)
	s.Cache.SetRecommendations(recs)

	run := recorder.NewSuggestionRun(recs)
	if err := s.Recorder.RecordSuggestions(run); err != nil {
		s.logger.Error().Err(err).Msg("record suggestions")
	}
	s.logger.Info().Str("run", run.ID.String()).Int("coins", len(snaps)).Int("suggestions", len(recs)).Msg("analysis complete")
	return recs, len(snaps)
}

// ensureFresh refreshes the cache when it has never been filled.
func (s *Scheduler) ensureFresh(ctx context.Context) error {
	if !s.Cache.RefreshedAt().IsZero() {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}

// RunRefreshNow executes the refresh task immediately.
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	if _, err := s.Refresh(s.Ctx); err != nil {
		s.logger.Error().Err(err).Msg("refresh failed")
	}
}

func (s *Scheduler) analysisTask() {
	if err := s.ensureFresh(s.Ctx); err != nil {
		s.logger.Error().Err(err).Msg("analysis refresh failed")
		s.trySend(userError("Error analyzing market", err))
		return
	}
	recs, n := s.Analyze()
	_, at := s.Cache.Recommendations()
	s.trySend(notifier.FormatSuggestions(recs, n, at))
}

func (s *Scheduler) overviewTask() {
	s.trySend(notifier.FormatMarketOverview(s.Cache.Ordered(s.Collector.Coins), s.Cache.RefreshedAt()))
}

func (s *Scheduler) trySend(text string) {
	if err := notifier.SendWithRetry(s.Ctx, s.Notifier, text, 3); err != nil {
		s.logger.Error().Err(err).Msg("send notification")
	}
}
