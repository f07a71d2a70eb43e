package models

import (
	"strconv"
	"strings"
	"time"
)

// RecurringBreak repeats every week on the listed weekdays until removed.
type RecurringBreak struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	PractitionerID uint `gorm:"index" json:"practitioner_id"`

	Name      string `gorm:"size:100" json:"name"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	// Comma-separated weekday numbers, 0=Sunday .. 6=Saturday, e.g. "1,2,3,4,5".
	Weekdays string `gorm:"size:20" json:"weekdays"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppliesOn reports whether the break is active on the given weekday.
func (b *RecurringBreak) AppliesOn(weekday int) bool {
	for _, part := range strings.Split(b.Weekdays, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if d == weekday {
			return true
		}
	}
	return false
}
