package dto

import (
	"time"

	"gorm.io/datatypes"
)

// MonitoringRecordResponse is one system monitoring row as served to
// dashboards.
type MonitoringRecordResponse struct {
	MetricName  string         `json:"metric_name"`
	MetricValue float64        `json:"metric_value"`
	Metadata    datatypes.JSON `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}
