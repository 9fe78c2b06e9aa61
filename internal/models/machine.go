package models

import "time"

// A sharpening machine at a location. Availabilities are declared per
// machine so two machines at the same shop can be booked independently.
type Machine struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LocationID uint     `gorm:"index" json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Model       string `gorm:"size:100" json:"model"`
	Description string `gorm:"size:255" json:"description"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
