package models

import "time"

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	CustomerID uint `gorm:"index" json:"customer_id"`
	Customer   User `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	SharpenerID uint `gorm:"index" json:"sharpener_id"`
	Sharpener   User `gorm:"foreignKey:SharpenerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	LocationID uint     `json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	MachineID uint `json:"machine_id"`

	AvailabilityID uint         `gorm:"index" json:"availability_id"`
	Availability   Availability `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date      string `gorm:"size:10;not null" json:"date"`      // YYYY-MM-DD
	StartTime string `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	Status string `gorm:"size:20;default:'pending';index" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
