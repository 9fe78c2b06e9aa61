package models

import "time"

const (
	RoleCustomer  = "customer"
	RoleSharpener = "sharpener"
	RoleAdmin     = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'customer'" json:"role"`

	// Aggregate over the sharpener's scored ratings, recomputed on
	// every new score so reads stay a single row lookup.
	RatingAvg   float64 `gorm:"default:0" json:"rating_avg"`
	RatingCount int     `gorm:"default:0" json:"rating_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
