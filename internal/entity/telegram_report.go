package entity

import "time"

// TelegramReport is written by the reporting side when a digest is delivered.
// The tracker never writes these; the entity exists so the table shape stays
// pinned for the readers.
type TelegramReport struct {
	ID         int64     `json:"id"`
	ReportType string    `gorm:"not null" json:"report_type"`
	Content    string    `gorm:"type:text" json:"content"`
	SentAt     time.Time `json:"sent_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TelegramReport) TableName() string {
	return "telegram_reports"
}
