package repository

import (
	"context"

	"signal-outcome-tracker/internal/entity"

	"gorm.io/gorm"
)

// SystemMonitoringRepository defines the interface for monitoring record operations.
type SystemMonitoringRepository interface {
	Create(ctx context.Context, record *entity.SystemMonitoringRecord) error
	FindRecent(ctx context.Context, metricName string, limit int) ([]entity.SystemMonitoringRecord, error)
}

// NewSystemMonitoringRepository creates a new GORM-based monitoring repository.
func NewSystemMonitoringRepository(db *gorm.DB) SystemMonitoringRepository {
	return &systemMonitoringRepository{db: db}
}

type systemMonitoringRepository struct {
	db *gorm.DB
}

// Create writes one monitoring record.
func (r *systemMonitoringRepository) Create(ctx context.Context, record *entity.SystemMonitoringRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindRecent retrieves the newest records, optionally filtered by name.
func (r *systemMonitoringRepository) FindRecent(ctx context.Context, metricName string, limit int) ([]entity.SystemMonitoringRecord, error) {
	var records []entity.SystemMonitoringRecord
	query := r.db.WithContext(ctx).Order("created_at desc")
	if metricName != "" {
		query = query.Where("metric_name = ?", metricName)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
