package service

import (
	"context"

	"signal-outcome-tracker/internal/tracker/dto"
	"signal-outcome-tracker/internal/tracker/repository"
	"signal-outcome-tracker/pkg/logger"
)

// MonitoringService serves system monitoring records to dashboards.
type MonitoringService interface {
	RecentRecords(ctx context.Context, metricName string, limit int) ([]dto.MonitoringRecordResponse, error)
}

// NewMonitoringService creates a new monitoring service.
func NewMonitoringService(monitoringRepo repository.SystemMonitoringRepository, log *logger.Logger) MonitoringService {
	return &monitoringService{
		monitoringRepo: monitoringRepo,
		logger:         log,
	}
}

type monitoringService struct {
	monitoringRepo repository.SystemMonitoringRepository
	logger         *logger.Logger
}

// RecentRecords retrieves the newest monitoring records, optionally filtered
// by metric name.
func (s *monitoringService) RecentRecords(ctx context.Context, metricName string, limit int) ([]dto.MonitoringRecordResponse, error) {
	records, err := s.monitoringRepo.FindRecent(ctx, metricName, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MonitoringRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, dto.MonitoringRecordResponse{
			MetricName:  r.MetricName,
			MetricValue: r.MetricValue,
			Metadata:    r.Metadata,
			CreatedAt:   r.CreatedAt,
		})
	}
	return responses, nil
}
