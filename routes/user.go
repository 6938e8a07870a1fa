package routes

import (
	"github.com/gin-gonic/gin"
	addressControllers "github.com/nimblecart/ecommerce-api/controllers/address"
	cartControllers "github.com/nimblecart/ecommerce-api/controllers/cart"
	orderControllers "github.com/nimblecart/ecommerce-api/controllers/order"
	reviewControllers "github.com/nimblecart/ecommerce-api/controllers/review"
	userControllers "github.com/nimblecart/ecommerce-api/controllers/user"
	"github.com/nimblecart/ecommerce-api/middleware"
	"github.com/nimblecart/ecommerce-api/storage"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all session-guarded endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, up storage.Uploader) {
	guard := middleware.RequireSession(db)

	userGroup := r.Group("/user", guard)
	{
		userGroup.POST("/logout", userControllers.Logout(db))
		userGroup.GET("/profile", userControllers.GetProfile(db))
		userGroup.PUT("/profilepicture", userControllers.UpdateProfilePicture(db, up))
		userGroup.DELETE("/profilepicture", userControllers.RemoveProfilePicture(db))
	}

	r.POST("/address", guard, addressControllers.CreateAddress(db))

	cartGroup := r.Group("/cart", guard)
	{
		cartGroup.POST("", cartControllers.AddProductToCart(db))
		cartGroup.GET("", cartControllers.GetCartItems(db))
		cartGroup.PUT("", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("/:itemId", cartControllers.RemoveCartItem(db))
	}

	orderGroup := r.Group("/order", guard)
	{
		orderGroup.POST("", orderControllers.PlaceOrder(db))
		orderGroup.DELETE("/:orderItemId", orderControllers.CancelOrder(db))
	}

	reviewGroup := r.Group("/review", guard)
	{
		reviewGroup.POST("", reviewControllers.AddReview(db, up))
		reviewGroup.DELETE("/:id", reviewControllers.DeleteReview(db))
	}
}
