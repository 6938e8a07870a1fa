package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nimblecart/ecommerce-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenTTL is how long an issued token and its session stay valid.
const TokenTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// HashPassword returns the bcrypt hash of a raw password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the raw password matches the stored hash.
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// GenerateToken signs a time-limited token for the user and persists the
// matching session row. Any previous session of the same user is deleted
// first, so at most one session is live per user at any time.
func GenerateToken(db *gorm.DB, userID string) (string, error) {
	expiresAt := time.Now().Add(TokenTTL)

	// jti keeps tokens distinct even when two logins land in the same second
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": expiresAt.Unix(),
		"jti": uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	if err != nil {
		return "", err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Session{
			UserID:    userID,
			Token:     token,
			ExpiresAt: expiresAt,
		}).Error
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// ParseToken verifies the token signature and returns the user id it carries.
func ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
