package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeMonitoringRepo struct {
	records        []entity.SystemMonitoringRecord
	findErr        error
	metricNameSeen string
	limitSeen      int
}

func (f *fakeMonitoringRepo) Create(ctx context.Context, record *entity.SystemMonitoringRecord) error {
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeMonitoringRepo) FindRecent(ctx context.Context, metricName string, limit int) ([]entity.SystemMonitoringRecord, error) {
	f.metricNameSeen = metricName
	f.limitSeen = limit
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.records, nil
}

func TestMonitoringService_RecentRecords(t *testing.T) {
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	createdAt := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	repo := &fakeMonitoringRepo{records: []entity.SystemMonitoringRecord{
		{
			MetricName:  "outcome_tracking_run",
			MetricValue: 42,
			Metadata:    datatypes.JSON(`{"errors":3}`),
			CreatedAt:   createdAt,
		},
	}}

	svc := NewMonitoringService(repo, log)
	records, err := svc.RecentRecords(context.Background(), "outcome_tracking_run", 10)

	require.NoError(t, err)
	assert.Equal(t, "outcome_tracking_run", repo.metricNameSeen)
	assert.Equal(t, 10, repo.limitSeen)
	require.Len(t, records, 1)
	assert.Equal(t, "outcome_tracking_run", records[0].MetricName)
	assert.Equal(t, 42.0, records[0].MetricValue)
	assert.Equal(t, createdAt, records[0].CreatedAt)
}

func TestMonitoringService_RecentRecordsFailure(t *testing.T) {
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	repo := &fakeMonitoringRepo{findErr: errors.New("connection refused")}

	svc := NewMonitoringService(repo, log)
	_, err = svc.RecentRecords(context.Background(), "", 50)

	assert.Error(t, err)
}
