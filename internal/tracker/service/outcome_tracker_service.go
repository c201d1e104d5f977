package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/internal/tracker/config"
	"signal-outcome-tracker/internal/tracker/repository"
	"signal-outcome-tracker/pkg/common"
	"signal-outcome-tracker/pkg/logger"
	"signal-outcome-tracker/pkg/telegram"
	"signal-outcome-tracker/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// OutcomeTrackerService runs the scheduled signal outcome tracking batch.
type OutcomeTrackerService interface {
	RunOutcomeTracking(ctx context.Context) error
}

// NewOutcomeTrackerService creates a new outcome tracker service.
func NewOutcomeTrackerService(
	cfg *config.Config,
	log *logger.Logger,
	signalEventRepo repository.SignalEventRepository,
	signalOutcomeRepo repository.SignalOutcomeRepository,
	marketDataRepo repository.MarketDataRepository,
	telemetry TelemetryEmitter,
	redisClient *redis.Client,
	telegramNotifier telegram.Notifier,
) OutcomeTrackerService {
	return &outcomeTrackerService{
		cfg:               cfg,
		logger:            log,
		signalEventRepo:   signalEventRepo,
		signalOutcomeRepo: signalOutcomeRepo,
		marketDataRepo:    marketDataRepo,
		telemetry:         telemetry,
		redisClient:       redisClient,
		telegramNotifier:  telegramNotifier,
		now:               utils.TimeNowUTC,
	}
}

type outcomeTrackerService struct {
	cfg               *config.Config
	logger            *logger.Logger
	signalEventRepo   repository.SignalEventRepository
	signalOutcomeRepo repository.SignalOutcomeRepository
	marketDataRepo    repository.MarketDataRepository
	telemetry         TelemetryEmitter
	redisClient       *redis.Client
	telegramNotifier  telegram.Notifier
	now               func() time.Time
}

// runCounters aggregates per-signal results across the batch workers.
type runCounters struct {
	mu        sync.Mutex
	processed int
	completed int
	errors    int
}

func (c *runCounters) addProcessed(completed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed++
	if completed {
		c.completed++
	}
}

func (c *runCounters) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors++
}

// RunOutcomeTracking selects up to the configured batch of pending signals
// older than the minimum age and evaluates each against the current market
// price. Individual signal failures are counted and skipped; only a failure
// of the selection query itself is returned to the caller. One monitoring
// record is written per run regardless of per-signal results.
func (s *outcomeTrackerService) RunOutcomeTracking(ctx context.Context) error {
	startedAt := s.now()
	olderThan := startedAt.Add(-s.cfg.Tracker.MinSignalAge)

	events, err := s.signalEventRepo.FindPendingForEvaluation(ctx, olderThan, s.cfg.Tracker.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to select pending signals: %w", err)
	}

	s.logger.InfoContext(ctx, "Outcome tracking run started",
		logger.IntField("eligible", len(events)),
		logger.IntField("batch_size", s.cfg.Tracker.BatchSize))

	counters := &runCounters{}
	sem := make(chan struct{}, s.cfg.Tracker.MaxConcurrentSignals)
	var wg sync.WaitGroup

	for i := range events {
		// Once the run deadline has passed, remaining signals are counted
		// as errors and retried next tick.
		if ctx.Err() != nil {
			counters.mu.Lock()
			counters.errors += len(events) - i
			counters.mu.Unlock()
			break
		}

		event := events[i]
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			s.evaluateSignal(ctx, &event, counters)
		}()
	}
	wg.Wait()

	finishedAt := s.now()
	counters.mu.Lock()
	summary := telegram.RunSummary{
		Processed:  counters.processed,
		Completed:  counters.completed,
		Errors:     counters.errors,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	counters.mu.Unlock()

	s.logger.InfoContext(ctx, "Outcome tracking run finished",
		logger.IntField("processed", summary.Processed),
		logger.IntField("completed", summary.Completed),
		logger.IntField("errors", summary.Errors))

	// The monitoring record must survive the run deadline: a tick that ran
	// out of time is exactly the one whose counters matter.
	emitCtx := context.WithoutCancel(ctx)
	s.telemetry.Emit(emitCtx, common.MetricOutcomeTrackingRun, float64(summary.Processed), map[string]interface{}{
		"processed": summary.Processed,
		"completed": summary.Completed,
		"errors":    summary.Errors,
	})

	if s.telegramNotifier != nil && summary.Processed+summary.Errors > 0 {
		if err := s.telegramNotifier.SendMessage(telegram.FormatRunSummaryForTelegram(summary)); err != nil {
			s.logger.Error("Failed to send run summary to Telegram", logger.ErrorField(err))
		}
	}

	return nil
}

// evaluateSignal runs the full pipeline for one signal: price lookup,
// horizon classification, return computation, outcome upsert and, on the
// terminal horizon, the pending to completed transition.
func (s *outcomeTrackerService) evaluateSignal(ctx context.Context, event *entity.SignalEvent, counters *runCounters) {
	if !s.acquireLease(ctx, event.ID) {
		s.logger.DebugContext(ctx, "Signal locked by another run, skipping", logger.Field("signal_id", event.SignalID))
		return
	}

	price, err := s.marketDataRepo.GetPrice(ctx, event.Symbol, event.AssetClass)
	if err != nil {
		if errors.Is(err, repository.ErrMissingAPIKey) {
			s.logger.ErrorContext(ctx, "Quote provider not configured, skipping signal",
				logger.StringField("symbol", event.Symbol),
				logger.Field("signal_id", event.SignalID))
		} else {
			s.logger.WarnContext(ctx, "No price for signal, will retry next tick",
				logger.ErrorField(err),
				logger.StringField("symbol", event.Symbol),
				logger.Field("signal_id", event.SignalID))
		}
		counters.addError()
		return
	}

	now := s.now()
	horizon := ClassifyHorizon(event.Timestamp, now)
	returnPct, wasCorrect := ComputeOutcome(event.Direction, event.PriceAtSignal, price)
	patch := entity.NewOutcomePatch(event.ID, horizon, price, returnPct, wasCorrect, now)

	if err := s.signalOutcomeRepo.Upsert(ctx, patch); err != nil {
		s.logger.ErrorContext(ctx, "Failed to upsert signal outcome",
			logger.ErrorField(err),
			logger.Field("signal_id", event.SignalID))
		counters.addError()
		return
	}

	completed := false
	if horizon == entity.Horizon24h {
		if err := s.signalEventRepo.MarkCompleted(ctx, event.ID); err != nil {
			s.logger.ErrorContext(ctx, "Failed to mark signal completed",
				logger.ErrorField(err),
				logger.Field("signal_id", event.SignalID))
			counters.addError()
			return
		}
		completed = true
	}

	s.logger.DebugContext(ctx, "Signal evaluated",
		logger.Field("signal_id", event.SignalID),
		logger.StringField("horizon", string(horizon)),
		logger.Float64Field("return_pct", returnPct),
		logger.Field("was_correct", wasCorrect))

	counters.addProcessed(completed)
}

// acquireLease takes a short-lived per-signal lock so a concurrently
// retried tick does not evaluate the same signal twice. Without Redis, or
// when Redis is down, evaluation proceeds unguarded; the outcome upsert is
// idempotent either way.
func (s *outcomeTrackerService) acquireLease(ctx context.Context, signalEventID int64) bool {
	if s.redisClient == nil {
		return true
	}

	key := fmt.Sprintf(common.RedisKeySignalEvalLease, signalEventID)
	ok, err := s.redisClient.SetNX(ctx, key, 1, common.SignalEvalLeaseTTL).Result()
	if err != nil {
		s.logger.Warn("Failed to acquire signal lease, proceeding without it", logger.ErrorField(err))
		return true
	}
	return ok
}
