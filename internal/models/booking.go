package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint   `json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic"`

	PractitionerID uint `gorm:"index:idx_bookings_practitioner_date" json:"practitioner_id"`
	Practitioner   User `gorm:"foreignKey:PractitionerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"practitioner"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Date        string `gorm:"size:10;index:idx_bookings_practitioner_date" json:"date"` // "YYYY-MM-DD"
	StartMinute int    `json:"start_minute"`
	DurationMin int    `json:"duration_min"`

	Status           string `gorm:"size:20;default:'confirmed'" json:"status"`
	ConfirmationCode string `gorm:"size:36;uniqueIndex" json:"confirmation_code"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndMinute is the booking's exclusive end, minutes since midnight.
func (b *Booking) EndMinute() int {
	return b.StartMinute + b.DurationMin
}
