package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultProfileImageURL is assigned to every new user until they upload a picture.
const DefaultProfileImageURL = "https://i.pinimg.com/280x280_RS/e1/08/21/e10821c74b533d465ba888ea66daa30f.jpg"

type User struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	FirstName       string    `gorm:"not null" json:"first_name"`
	LastName        string    `json:"last_name"`
	UserName        string    `gorm:"uniqueIndex;not null" json:"user_name"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.ProfileImageURL == "" {
		u.ProfileImageURL = DefaultProfileImageURL
	}
	return nil
}
