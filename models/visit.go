package models

import (
	"time"

	"github.com/google/uuid"
)

// Visit is a single customer walk-in. It is always paired with both its
// creating account and one of that account's businesses; every query repeats
// the pairing so visits never leak across businesses or accounts.
//
// WalkinDate is stored as YYYY-MM-DD and the clock fields as HH:MM:SS, so
// range predicates compare lexicographically the same way on every driver.
// ClockOut stays NULL until the visit is explicitly closed.
type Visit struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	BusinessID uint      `gorm:"index;not null" json:"businessId"`

	CustomerName      string  `gorm:"not null" json:"customerName"`
	CustomerDOB       string  `json:"customerDob"`
	ContactNumber     string  `gorm:"not null" json:"contactNumber"`
	Companion         string  `json:"companion"`
	CompanionRelation string  `json:"companionRelation"`
	Purpose           string  `json:"purpose"`
	Notes             string  `json:"notes"`
	WalkinDate        string  `gorm:"type:varchar(10);not null;index" json:"walkinDate"`
	ClockIn           string  `gorm:"type:varchar(8);not null" json:"clockIn"`
	ClockOut          *string `gorm:"type:varchar(8)" json:"clockOut"`

	CreatedAt time.Time `json:"createdAt"`
}
