package service

import (
	"context"
	"encoding/json"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/internal/tracker/repository"
	"signal-outcome-tracker/pkg/logger"

	"gorm.io/datatypes"
)

// TelemetryEmitter records run-level counters in system_monitoring.
// Emission is best effort: a failed write is logged and never aborts the
// pipeline that produced it.
type TelemetryEmitter interface {
	Emit(ctx context.Context, metricName string, value float64, metadata map[string]interface{})
}

// NewTelemetryEmitter creates a new telemetry emitter.
func NewTelemetryEmitter(monitoringRepo repository.SystemMonitoringRepository, log *logger.Logger) TelemetryEmitter {
	return &telemetryEmitter{
		monitoringRepo: monitoringRepo,
		logger:         log,
	}
}

type telemetryEmitter struct {
	monitoringRepo repository.SystemMonitoringRepository
	logger         *logger.Logger
}

// Emit writes one monitoring record.
func (t *telemetryEmitter) Emit(ctx context.Context, metricName string, value float64, metadata map[string]interface{}) {
	record := &entity.SystemMonitoringRecord{
		MetricName:  metricName,
		MetricValue: value,
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			t.logger.Error("Failed to marshal telemetry metadata", logger.ErrorField(err), logger.StringField("metric_name", metricName))
		} else {
			record.Metadata = datatypes.JSON(raw)
		}
	}

	if err := t.monitoringRepo.Create(ctx, record); err != nil {
		t.logger.Error("Failed to write monitoring record", logger.ErrorField(err), logger.StringField("metric_name", metricName))
	}
}
