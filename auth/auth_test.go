package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/nimblecart/ecommerce-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// the in-memory database lives on a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))
	return db
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hashed)

	require.True(t, VerifyPassword("correct horse battery staple", hashed))
	require.False(t, VerifyPassword("wrong password", hashed))
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{FirstName: "Test", UserName: "test_user", Email: "test@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	token, err := GenerateToken(db, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)

	var session models.Session
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&session).Error)
	require.Equal(t, token, session.Token)
	require.False(t, session.IsRevoked)
}

func TestGenerateTokenReplacesPreviousSession(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{FirstName: "Test", UserName: "test_user", Email: "test@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	first, err := GenerateToken(db, user.ID)
	require.NoError(t, err)
	second, err := GenerateToken(db, user.ID)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	var count int64
	require.NoError(t, db.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var session models.Session
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&session).Error)
	require.Equal(t, second, session.Token)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("")
	require.ErrorIs(t, err, ErrInvalidToken)
}
