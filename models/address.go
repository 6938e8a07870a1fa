package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"uniqueIndex;not null" json:"user_id"` // one address per user
	Street     string    `gorm:"not null" json:"street"`
	City       string    `gorm:"not null" json:"city"`
	State      string    `gorm:"not null" json:"state"`
	PostalCode string    `gorm:"not null" json:"postal_code"`
	Country    string    `gorm:"not null" json:"country"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
