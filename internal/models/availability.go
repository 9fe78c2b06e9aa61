package models

import "time"

// An open window a sharpener declares for one machine on one date.
// Start/End are "HH:MM" wall-clock strings in the location's timezone;
// the window is capacity, not a single bookable unit.
type Availability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SharpenerID uint `gorm:"index" json:"sharpener_id"`

	LocationID uint     `gorm:"index" json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	MachineID uint    `gorm:"index" json:"machine_id"`
	Machine   Machine `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date      string `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:5;not null" json:"start_time"`  // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`    // HH:MM

	Price float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
