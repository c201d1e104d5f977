package service

import (
	"context"
	"fmt"
	"time"

	"signal-outcome-tracker/internal/tracker/dto"
	"signal-outcome-tracker/internal/tracker/repository"
	"signal-outcome-tracker/pkg/common"
	"signal-outcome-tracker/pkg/logger"
)

// LearningMetricsService recomputes and serves the daily accuracy
// aggregates that the weight adapter and dashboards consume.
type LearningMetricsService interface {
	RecomputeForDate(ctx context.Context, date time.Time) error
	GetMetrics(ctx context.Context, param dto.GetLearningMetricsParam) ([]dto.LearningMetricResponse, error)
	GetAccuracySummary(ctx context.Context) ([]dto.HorizonAccuracy, error)
}

// NewLearningMetricsService creates a new learning metrics service.
func NewLearningMetricsService(
	metricRepo repository.LearningMetricRepository,
	outcomeRepo repository.SignalOutcomeRepository,
	telemetry TelemetryEmitter,
	log *logger.Logger,
) LearningMetricsService {
	return &learningMetricsService{
		metricRepo:  metricRepo,
		outcomeRepo: outcomeRepo,
		telemetry:   telemetry,
		logger:      log,
	}
}

type learningMetricsService struct {
	metricRepo  repository.LearningMetricRepository
	outcomeRepo repository.SignalOutcomeRepository
	telemetry   TelemetryEmitter
	logger      *logger.Logger
}

// RecomputeForDate rebuilds the aggregates for all signals emitted on the
// given date. The derivation reads only signal_events and signal_outcomes,
// so rerunning it after late outcome evaluations converges to the same rows.
func (s *learningMetricsService) RecomputeForDate(ctx context.Context, date time.Time) error {
	metrics, err := s.metricRepo.AggregateDaily(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to aggregate learning metrics: %w", err)
	}

	var failures int
	for i := range metrics {
		if err := s.metricRepo.Upsert(ctx, &metrics[i]); err != nil {
			s.logger.ErrorContext(ctx, "Failed to upsert learning metric",
				logger.ErrorField(err),
				logger.StringField("symbol", metrics[i].Symbol),
				logger.StringField("timeframe", string(metrics[i].Timeframe)))
			failures++
		}
	}

	s.logger.InfoContext(ctx, "Learning metrics recomputed",
		logger.StringField("date", date.Format("2006-01-02")),
		logger.IntField("rows", len(metrics)),
		logger.IntField("failures", failures))

	s.telemetry.Emit(context.WithoutCancel(ctx), common.MetricLearningMetricsRecompute, float64(len(metrics)), map[string]interface{}{
		"date":     date.Format("2006-01-02"),
		"rows":     len(metrics),
		"failures": failures,
	})

	if failures > 0 {
		return fmt.Errorf("failed to upsert %d of %d learning metrics", failures, len(metrics))
	}
	return nil
}

// GetMetrics retrieves aggregate rows for the dashboard read API.
func (s *learningMetricsService) GetMetrics(ctx context.Context, param dto.GetLearningMetricsParam) ([]dto.LearningMetricResponse, error) {
	metrics, err := s.metricRepo.Get(ctx, param)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LearningMetricResponse, 0, len(metrics))
	for _, m := range metrics {
		responses = append(responses, dto.LearningMetricResponse{
			Date:           m.Date.Format("2006-01-02"),
			Symbol:         m.Symbol,
			Direction:      string(m.Direction),
			Timeframe:      string(m.Timeframe),
			TotalSignals:   m.TotalSignals,
			CorrectSignals: m.CorrectSignals,
			AvgReturn:      m.AvgReturn,
			MaxReturn:      m.MaxReturn,
			MinReturn:      m.MinReturn,
			AccuracyPct:    m.AccuracyPct,
		})
	}
	return responses, nil
}

// GetAccuracySummary retrieves the live per-horizon accuracy aggregate.
func (s *learningMetricsService) GetAccuracySummary(ctx context.Context) ([]dto.HorizonAccuracy, error) {
	return s.outcomeRepo.AccuracySummary(ctx)
}
