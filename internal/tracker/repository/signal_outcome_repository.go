package repository

import (
	"context"
	"errors"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/internal/tracker/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SignalOutcomeRepository defines the interface for signal outcome data operations.
type SignalOutcomeRepository interface {
	FindBySignalEventID(ctx context.Context, signalEventID int64) (*entity.SignalOutcome, error)
	Upsert(ctx context.Context, patch entity.SignalOutcomePatch) error
	AccuracySummary(ctx context.Context) ([]dto.HorizonAccuracy, error)
}

// NewSignalOutcomeRepository creates a new GORM-based signal outcome repository.
func NewSignalOutcomeRepository(db *gorm.DB) SignalOutcomeRepository {
	return &signalOutcomeRepository{db: db}
}

type signalOutcomeRepository struct {
	db *gorm.DB
}

// FindBySignalEventID retrieves the outcome row for a signal event, or nil
// when none exists yet.
func (r *signalOutcomeRepository) FindBySignalEventID(ctx context.Context, signalEventID int64) (*entity.SignalOutcome, error) {
	var outcome entity.SignalOutcome
	err := r.db.WithContext(ctx).Where("signal_event_id = ?", signalEventID).First(&outcome).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// Upsert merges a partial outcome into the row for its signal event. The
// read-modify-write runs in one transaction with the existing row locked, so
// the merge is atomic per signal_event_id; no cross-signal transaction is
// taken. Horizon columns already recorded are preserved by the patch merge,
// which makes retried ticks idempotent.
func (r *signalOutcomeRepository) Upsert(ctx context.Context, patch entity.SignalOutcomePatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var outcome entity.SignalOutcome
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("signal_event_id = ?", patch.SignalEventID).
			First(&outcome).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(patch.ToOutcome()).Error
		}
		if err != nil {
			return err
		}

		patch.Apply(&outcome)
		return tx.Save(&outcome).Error
	})
}

// AccuracySummary computes live per-horizon accuracy over all evaluated
// outcomes, for the dashboard read API.
func (r *signalOutcomeRepository) AccuracySummary(ctx context.Context) ([]dto.HorizonAccuracy, error) {
	var summaries []dto.HorizonAccuracy

	query := `
		SELECT horizon, total, correct,
		       CASE WHEN total > 0 THEN ROUND(correct * 100.0 / total, 2) ELSE 0 END AS accuracy_pct
		FROM (
			SELECT '1h' AS horizon,
			       COUNT(was_correct_1h) AS total,
			       COUNT(*) FILTER (WHERE was_correct_1h) AS correct
			FROM signal_outcomes
			UNION ALL
			SELECT '4h', COUNT(was_correct_4h), COUNT(*) FILTER (WHERE was_correct_4h)
			FROM signal_outcomes
			UNION ALL
			SELECT '24h', COUNT(was_correct_24h), COUNT(*) FILTER (WHERE was_correct_24h)
			FROM signal_outcomes
		) AS horizon_counts`

	if err := r.db.WithContext(ctx).Raw(query).Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}
