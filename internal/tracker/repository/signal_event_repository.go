package repository

import (
	"context"
	"time"

	"signal-outcome-tracker/internal/entity"

	"gorm.io/gorm"
)

// SignalEventRepository defines the interface for signal event data operations.
type SignalEventRepository interface {
	Create(ctx context.Context, event *entity.SignalEvent) error
	FindByID(ctx context.Context, id int64) (*entity.SignalEvent, error)
	FindPendingForEvaluation(ctx context.Context, olderThan time.Time, limit int) ([]entity.SignalEvent, error)
	MarkCompleted(ctx context.Context, id int64) error
}

// NewSignalEventRepository creates a new GORM-based signal event repository.
func NewSignalEventRepository(db *gorm.DB) SignalEventRepository {
	return &signalEventRepository{db: db}
}

type signalEventRepository struct {
	db *gorm.DB
}

// Create creates a new signal event.
func (r *signalEventRepository) Create(ctx context.Context, event *entity.SignalEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID retrieves a signal event by its ID.
func (r *signalEventRepository) FindByID(ctx context.Context, id int64) (*entity.SignalEvent, error) {
	var event entity.SignalEvent
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindPendingForEvaluation selects signals eligible for outcome tracking:
// still pending, old enough to have aged into a horizon, and without an
// outcome row yet. Oldest first so backlogged signals drain before fresh
// ones, capped to bound per-tick cost.
func (r *signalEventRepository) FindPendingForEvaluation(ctx context.Context, olderThan time.Time, limit int) ([]entity.SignalEvent, error) {
	var events []entity.SignalEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.SignalStatusPending).
		Where("timestamp <= ?", olderThan).
		Where("NOT EXISTS (SELECT 1 FROM signal_outcomes WHERE signal_outcomes.signal_event_id = signal_events.id)").
		Order("timestamp asc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MarkCompleted flips a pending signal event to completed. The status filter
// makes the transition fire at most once even under concurrent ticks.
func (r *signalEventRepository) MarkCompleted(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.SignalEvent{}).
		Where("id = ? AND status = ?", id, entity.SignalStatusPending).
		Update("status", entity.SignalStatusCompleted).Error
}
