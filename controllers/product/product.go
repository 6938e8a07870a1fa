package productControllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/models"
	"gorm.io/gorm"
)

// ListQuery carries the shared catalog filters. Both the public listing and
// the admin listing validate it the same way.
type ListQuery struct {
	Category string  `form:"category"`
	PriceMin float64 `form:"price_min,default=0"`
	PriceMax float64 `form:"price_max,default=2147483647"`
	Offset   int     `form:"offset,default=0"`
	Limit    int     `form:"limit,default=10"`
}

// Validate checks the numeric bounds shared by every listing endpoint.
func (q ListQuery) Validate() bool {
	if q.PriceMin < 0 || q.PriceMax < 0 || q.PriceMin > q.PriceMax {
		return false
	}
	return q.Offset >= 0 && q.Limit >= 0
}

// ProductView is the read model shared by the public and admin catalogs.
type ProductView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	CategoryName  string   `json:"category_name"`
	Stock         int      `json:"stock"`
	ImagesURL     []string `json:"images_url"`
	AverageRating float64  `json:"average_rating"`
}

// ToView resolves the category name for a product row.
func ToView(db *gorm.DB, product models.Product) ProductView {
	var category models.Category
	db.First(&category, "id = ?", product.CategoryID)
	return ProductView{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		CategoryName:  category.Name,
		Stock:         product.Stock,
		ImagesURL:     product.ImagesURL,
		AverageRating: product.AverageRating,
	}
}

// List queries products by the shared filters: inclusive price range,
// ascending price, offset/limit pagination.
func List(db *gorm.DB, q ListQuery) ([]models.Product, error) {
	query := db.Where("price >= ? AND price <= ?", q.PriceMin, q.PriceMax)
	if q.Category != "" {
		query = query.Where("category_id = ?", q.Category)
	}

	var products []models.Product
	err := query.Order("price asc").Offset(q.Offset).Limit(q.Limit).Find(&products).Error
	return products, err
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q ListQuery
		if err := c.ShouldBindQuery(&q); err != nil || !q.Validate() {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Invalid query parameters."})
			return
		}

		if q.Category != "" {
			var category models.Category
			if err := db.First(&category, "id = ?", q.Category).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Category not found."})
				return
			}
		}

		products, err := List(db, q)
		if err != nil {
			log.Printf("product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"state": "error", "message": "Something went wrong."})
			return
		}

		views := make([]ProductView, 0, len(products))
		for _, p := range products {
			views = append(views, ToView(db, p))
		}
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": fmt.Sprintf("%d products found.", len(views)), "data": views})
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Product not found."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Product found.", "data": ToView(db, product)})
	}
}
