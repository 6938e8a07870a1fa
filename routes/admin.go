package routes

import (
	"github.com/gin-gonic/gin"
	adminControllers "github.com/nimblecart/ecommerce-api/controllers/admin"
	orderControllers "github.com/nimblecart/ecommerce-api/controllers/order"
	"github.com/nimblecart/ecommerce-api/middleware"
	"github.com/nimblecart/ecommerce-api/storage"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires the API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, up storage.Uploader) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", adminControllers.CreateCategory(db))
			categoryAdmin.GET("", adminControllers.GetCategories(db))
			categoryAdmin.PUT("/:id", adminControllers.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", adminControllers.DeleteCategory(db))
		}

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", adminControllers.CreateProduct(db, up))
			productAdmin.GET("", adminControllers.GetProducts(db))
			productAdmin.GET("/export-excel", adminControllers.ExportProductsToExcel(db))
			productAdmin.GET("/:id", adminControllers.GetProduct(db))
			productAdmin.PUT("/:id", adminControllers.UpdateProduct(db, up))
			productAdmin.DELETE("/:id", adminControllers.DeleteProduct(db))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", adminControllers.GetOrders(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.GET("/:id", adminControllers.GetOrder(db))
			orderAdmin.PUT("/:id", adminControllers.UpdateOrder(db))
		}

		adminGroup.GET("/users", adminControllers.GetAllUsers(db))
	}
}
