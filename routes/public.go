package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/nimblecart/ecommerce-api/controllers/product"
	reviewControllers "github.com/nimblecart/ecommerce-api/controllers/review"
	userControllers "github.com/nimblecart/ecommerce-api/controllers/user"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the endpoints reachable without a session.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/user", userControllers.CreateUser(db))
	r.POST("/user/login", userControllers.Login(db))

	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))

	r.GET("/reviews/:productId", reviewControllers.GetReviews(db))
}
