package models

import "time"

// One rating stub per appointment, created empty when the booking is
// confirmed. Score stays NULL until the customer scores it; a NULL score
// never enters the sharpener's average.
type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CustomerID  uint `gorm:"index" json:"customer_id"`
	SharpenerID uint `gorm:"index" json:"sharpener_id"`

	Score   *int   `json:"score"` // 1..5, NULL while unscored
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
