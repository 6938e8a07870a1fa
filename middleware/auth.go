package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/auth"
	"github.com/nimblecart/ecommerce-api/models"
	"gorm.io/gorm"
)

// RequireSession validates the token cookie against both its signature and
// the persisted session row. Fails closed with 401 on any miss: no cookie,
// unknown user, missing session, revoked session or expired session.
func RequireSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		unauthorized := func() {
			c.JSON(http.StatusUnauthorized, gin.H{"state": "error", "message": "Unauthorized"})
			c.Abort()
		}

		token, err := c.Cookie("token")
		if err != nil || token == "" {
			unauthorized()
			return
		}

		userID, err := auth.ParseToken(token)
		if err != nil {
			unauthorized()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			unauthorized()
			return
		}

		var session models.Session
		if err := db.Where("user_id = ?", userID).First(&session).Error; err != nil {
			unauthorized()
			return
		}
		// A re-login replaces the session row, so an older token must not
		// keep authenticating even while its signature is still valid.
		if session.Token != token || !session.Valid(time.Now()) {
			unauthorized()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
