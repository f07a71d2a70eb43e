package models

import "time"

// WeeklyWindow is one working interval of a practitioner's recurring weekly
// schedule. A weekday may hold several disjoint rows (morning/afternoon split).
type WeeklyWindow struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	PractitionerID uint `gorm:"index:idx_weekly_windows_practitioner_weekday" json:"practitioner_id"`

	Weekday int `gorm:"index:idx_weekly_windows_practitioner_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"` // "HH:MM", 24-hour
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
