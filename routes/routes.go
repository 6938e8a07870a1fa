package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/storage"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point wiring up the public, user and admin
// route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, up storage.Uploader) {
	SetupPublicRoutes(r, db)
	SetupUserRoutes(r, db, up)
	SetupAdminRoutes(r, db, up)
}
