package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	CategoryID    string    `gorm:"index;not null" json:"category_id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	Stock         int       `gorm:"not null;default:0" json:"stock"`
	ImagesURL     []string  `gorm:"serializer:json" json:"images_url"`
	AverageRating float64   `gorm:"default:0" json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
