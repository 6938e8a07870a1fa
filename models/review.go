package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	OrderItemID string    `gorm:"index;not null" json:"order_item_id"`
	ProductID   string    `gorm:"index;not null" json:"product_id"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	Rating      int       `gorm:"not null" json:"rating"`
	Comment     string    `gorm:"not null" json:"comment"`
	ImagesURL   []string  `gorm:"serializer:json" json:"images_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
