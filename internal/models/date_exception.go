package models

import "time"

// DateException kinds. At most one exception per practitioner per date.
const (
	ExceptionUnavailable  = "unavailable"
	ExceptionSpecialHours = "special_hours"
	ExceptionMeeting      = "meeting"
	ExceptionBreak        = "break"
)

type DateException struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	PractitionerID uint `gorm:"uniqueIndex:idx_date_exceptions_practitioner_date" json:"practitioner_id"`

	Date string `gorm:"size:10;uniqueIndex:idx_date_exceptions_practitioner_date" json:"date"` // "YYYY-MM-DD"
	Kind string `gorm:"size:20;not null" json:"kind"`

	// Unused when Kind is "unavailable".
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Label string `gorm:"size:100" json:"label"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
