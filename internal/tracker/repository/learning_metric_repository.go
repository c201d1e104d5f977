package repository

import (
	"context"
	"time"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/internal/tracker/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LearningMetricRepository defines the interface for learning metric data operations.
type LearningMetricRepository interface {
	AggregateDaily(ctx context.Context, date time.Time) ([]entity.LearningMetric, error)
	Upsert(ctx context.Context, metric *entity.LearningMetric) error
	Get(ctx context.Context, param dto.GetLearningMetricsParam) ([]entity.LearningMetric, error)
}

// NewLearningMetricRepository creates a new GORM-based learning metric repository.
func NewLearningMetricRepository(db *gorm.DB) LearningMetricRepository {
	return &learningMetricRepository{db: db}
}

type learningMetricRepository struct {
	db *gorm.DB
}

// AggregateDaily derives the (symbol, direction, timeframe) aggregates for
// all signals emitted on the given date from signal_events joined with
// signal_outcomes. Only horizons that were actually evaluated contribute
// rows; the result is recomputable at any time.
func (r *learningMetricRepository) AggregateDaily(ctx context.Context, date time.Time) ([]entity.LearningMetric, error) {
	var metrics []entity.LearningMetric

	query := `
		SELECT ?::date AS date, symbol, direction, timeframe,
		       COUNT(*) AS total_signals,
		       COUNT(*) FILTER (WHERE was_correct) AS correct_signals,
		       AVG(return_pct) AS avg_return,
		       MAX(return_pct) AS max_return,
		       MIN(return_pct) AS min_return,
		       ROUND(COUNT(*) FILTER (WHERE was_correct) * 100.0 / COUNT(*), 2) AS accuracy_pct
		FROM (
			SELECT e.symbol, e.direction, h.timeframe, h.return_pct, h.was_correct
			FROM signal_events e
			JOIN signal_outcomes o ON o.signal_event_id = e.id
			CROSS JOIN LATERAL (
				VALUES ('1h', o.return_1h, o.was_correct_1h),
				       ('4h', o.return_4h, o.was_correct_4h),
				       ('24h', o.return_24h, o.was_correct_24h)
			) AS h(timeframe, return_pct, was_correct)
			WHERE e.timestamp >= ?::date
			  AND e.timestamp < ?::date + INTERVAL '1 day'
			  AND h.was_correct IS NOT NULL
		) AS evaluated
		GROUP BY symbol, direction, timeframe`

	day := date.Format("2006-01-02")
	if err := r.db.WithContext(ctx).Raw(query, day, day, day).Scan(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

// Upsert writes one aggregate row, replacing the counters when the
// (date, symbol, direction, timeframe) key already exists.
func (r *learningMetricRepository) Upsert(ctx context.Context, metric *entity.LearningMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "date"}, {Name: "symbol"}, {Name: "direction"}, {Name: "timeframe"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_signals", "correct_signals", "avg_return", "max_return", "min_return", "accuracy_pct", "updated_at",
		}),
	}).Create(metric).Error
}

// Get retrieves aggregate rows matching the filter, newest date first.
func (r *learningMetricRepository) Get(ctx context.Context, param dto.GetLearningMetricsParam) ([]entity.LearningMetric, error) {
	var metrics []entity.LearningMetric

	query := r.db.WithContext(ctx).Model(&entity.LearningMetric{})
	if param.From != nil {
		query = query.Where("date >= ?", param.From.Format("2006-01-02"))
	}
	if param.To != nil {
		query = query.Where("date <= ?", param.To.Format("2006-01-02"))
	}
	if param.Symbol != "" {
		query = query.Where("symbol = ?", param.Symbol)
	}
	if param.Direction != "" {
		query = query.Where("direction = ?", param.Direction)
	}
	if param.Timeframe != "" {
		query = query.Where("timeframe = ?", param.Timeframe)
	}
	if param.Limit > 0 {
		query = query.Limit(param.Limit)
	}

	if err := query.Order("date desc").Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}
