package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"walkinplus-backend/utils"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Username    string    `gorm:"uniqueIndex;not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	DisplayName string
	Password    string `gorm:"not null"`

	LastLogin *time.Time

	Contact *ContactProfile `gorm:"foreignKey:UserID"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// DisplayNameOrUsername is the name shown across the dashboards. It is
// derived on every read; nothing caches it.
func (u *User) DisplayNameOrUsername() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// ContactProfile carries the phone number for a User. The phone number is
// unique across all accounts, not per account.
type ContactProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PhoneNumber string    `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
}

func (p *ContactProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
