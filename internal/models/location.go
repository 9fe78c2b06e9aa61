package models

import "time"

type Location struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SharpenerID uint `gorm:"index" json:"sharpener_id"`
	Sharpener   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Street string `gorm:"size:255" json:"street"`
	City   string `gorm:"size:100;not null" json:"city"`
	State  string `gorm:"size:50" json:"state"`
	Zip    string `gorm:"size:20" json:"zip"`
	Phone  string `gorm:"size:20" json:"phone"`

	Timezone string `gorm:"size:50" json:"timezone"`
	PhotoURL string `gorm:"size:512" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
