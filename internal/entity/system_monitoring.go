package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SystemMonitoringRecord is a free-form observability counter. Every tracker
// run writes one; dashboards read them to diagnose slow metric convergence.
type SystemMonitoringRecord struct {
	ID          int64          `json:"id"`
	MetricName  string         `gorm:"not null;index" json:"metric_name"`
	MetricValue float64        `gorm:"not null" json:"metric_value"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (SystemMonitoringRecord) TableName() string {
	return "system_monitoring"
}
