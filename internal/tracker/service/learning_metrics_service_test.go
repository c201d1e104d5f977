package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/internal/tracker/dto"
	"signal-outcome-tracker/pkg/common"
	"signal-outcome-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLearningMetricRepo struct {
	aggregated   []entity.LearningMetric
	aggregateErr error
	upserted     []entity.LearningMetric
	upsertErr    error
	stored       []entity.LearningMetric
}

func (f *fakeLearningMetricRepo) AggregateDaily(ctx context.Context, date time.Time) ([]entity.LearningMetric, error) {
	if f.aggregateErr != nil {
		return nil, f.aggregateErr
	}
	return f.aggregated, nil
}

func (f *fakeLearningMetricRepo) Upsert(ctx context.Context, metric *entity.LearningMetric) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, *metric)
	return nil
}

func (f *fakeLearningMetricRepo) Get(ctx context.Context, param dto.GetLearningMetricsParam) ([]entity.LearningMetric, error) {
	return f.stored, nil
}

func newTestMetricsService(t *testing.T, metricRepo *fakeLearningMetricRepo) (LearningMetricsService, *fakeTelemetry) {
	t.Helper()

	log, err := logger.New("error", "json")
	require.NoError(t, err)

	telemetry := &fakeTelemetry{}
	return NewLearningMetricsService(metricRepo, newFakeSignalOutcomeRepo(), telemetry, log), telemetry
}

func TestRecomputeForDate(t *testing.T) {
	date := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	t.Run("upserts every derived row and emits telemetry", func(t *testing.T) {
		metricRepo := &fakeLearningMetricRepo{aggregated: []entity.LearningMetric{
			{Symbol: "BTCUSDT", Direction: entity.DirectionBuy, Timeframe: entity.Horizon1h, TotalSignals: 4, CorrectSignals: 3},
			{Symbol: "BTCUSDT", Direction: entity.DirectionBuy, Timeframe: entity.Horizon24h, TotalSignals: 2, CorrectSignals: 1},
		}}

		svc, telemetry := newTestMetricsService(t, metricRepo)
		require.NoError(t, svc.RecomputeForDate(context.Background(), date))

		assert.Len(t, metricRepo.upserted, 2)
		require.Len(t, telemetry.emitted, 1)
		assert.Equal(t, common.MetricLearningMetricsRecompute, telemetry.emitted[0].name)
		assert.Equal(t, "2025-05-31", telemetry.emitted[0].metadata["date"])
	})

	t.Run("aggregation failure is returned", func(t *testing.T) {
		metricRepo := &fakeLearningMetricRepo{aggregateErr: errors.New("relation missing")}

		svc, _ := newTestMetricsService(t, metricRepo)
		assert.Error(t, svc.RecomputeForDate(context.Background(), date))
	})

	t.Run("upsert failures are reported after the full pass", func(t *testing.T) {
		metricRepo := &fakeLearningMetricRepo{
			aggregated: []entity.LearningMetric{{Symbol: "AAPL"}},
			upsertErr:  errors.New("write failed"),
		}

		svc, telemetry := newTestMetricsService(t, metricRepo)
		assert.Error(t, svc.RecomputeForDate(context.Background(), date))
		require.Len(t, telemetry.emitted, 1)
		assert.Equal(t, 1, telemetry.emitted[0].metadata["failures"])
	})
}

func TestGetMetrics(t *testing.T) {
	metricRepo := &fakeLearningMetricRepo{stored: []entity.LearningMetric{
		{
			Date:           time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			Symbol:         "BTCUSDT",
			Direction:      entity.DirectionStrongBuy,
			Timeframe:      entity.Horizon4h,
			TotalSignals:   10,
			CorrectSignals: 7,
			AccuracyPct:    70,
		},
	}}

	svc, _ := newTestMetricsService(t, metricRepo)
	responses, err := svc.GetMetrics(context.Background(), dto.GetLearningMetricsParam{})

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "2025-05-31", responses[0].Date)
	assert.Equal(t, "STRONG_BUY", responses[0].Direction)
	assert.Equal(t, "4h", responses[0].Timeframe)
	assert.Equal(t, 70.0, responses[0].AccuracyPct)
}
