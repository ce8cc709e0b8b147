package models

import (
	"time"

	"github.com/google/uuid"
)

// Business is one walk-in location owned by a User. An account can own any
// number of businesses; only active ones are visible to the dashboards.
type Business struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Location string `gorm:"not null" json:"location"`
	Logo     string `json:"logo"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
}
