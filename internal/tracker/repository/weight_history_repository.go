package repository

import (
	"context"
	"errors"

	"signal-outcome-tracker/internal/entity"

	"gorm.io/gorm"
)

// WeightHistoryRepository defines the interface for weight history data operations.
// The table is append-only; there is no update or delete path.
type WeightHistoryRepository interface {
	Create(ctx context.Context, history *entity.WeightHistory) error
	Latest(ctx context.Context) (*entity.WeightHistory, error)
	FindAll(ctx context.Context, limit int) ([]entity.WeightHistory, error)
}

// NewWeightHistoryRepository creates a new GORM-based weight history repository.
func NewWeightHistoryRepository(db *gorm.DB) WeightHistoryRepository {
	return &weightHistoryRepository{db: db}
}

type weightHistoryRepository struct {
	db *gorm.DB
}

// Create appends a new snapshot with the next version number. Version
// assignment and insert run in one transaction; the unique index on version
// rejects a concurrent writer that raced to the same number.
func (r *weightHistoryRepository) Create(ctx context.Context, history *entity.WeightHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		err := tx.Model(&entity.WeightHistory{}).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error
		if err != nil {
			return err
		}

		history.Version = maxVersion + 1
		return tx.Create(history).Error
	})
}

// Latest retrieves the highest-version snapshot, or nil when none exists.
func (r *weightHistoryRepository) Latest(ctx context.Context) (*entity.WeightHistory, error) {
	var history entity.WeightHistory
	err := r.db.WithContext(ctx).Order("version desc").First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// FindAll retrieves snapshots newest first.
func (r *weightHistoryRepository) FindAll(ctx context.Context, limit int) ([]entity.WeightHistory, error) {
	var histories []entity.WeightHistory
	query := r.db.WithContext(ctx).Order("version desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}
