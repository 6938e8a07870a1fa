package cartControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/models"
	"gorm.io/gorm"
)

type AddCartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemInput struct {
	CartItemID string `json:"cart_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

// cartItemView joins the cached cart line with the live product row.
type cartItemView struct {
	ID      string `json:"id"`
	Product struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		ProductPrice float64  `json:"product_price"`
		CategoryName string   `json:"category_name"`
		Stock        int      `json:"stock"`
		ImagesURL    []string `json:"images_url"`
	} `json:"product"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func buildCartItemView(db *gorm.DB, item models.CartItem) (cartItemView, error) {
	view := cartItemView{
		ID:        item.ID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
	}

	var product models.Product
	if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
		return view, err
	}
	var category models.Category
	if err := db.First(&category, "id = ?", product.CategoryID).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		return view, err
	}

	view.Product.ID = product.ID
	view.Product.Name = product.Name
	view.Product.ProductPrice = product.Price
	view.Product.CategoryName = category.Name
	view.Product.Stock = product.Stock
	view.Product.ImagesURL = product.ImagesURL
	return view, nil
}

// POST /cart
func AddProductToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Product not found."})
			return
		}

		// The unique index on user_id makes this get-or-create idempotent.
		var cart models.Cart
		if err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
			internalError(c, err)
			return
		}

		var count int64
		if err := db.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).
			Count(&count).Error; err != nil {
			internalError(c, err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "Product already exists in cart."})
			return
		}

		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Price:     product.Price * float64(input.Quantity),
		}
		if err := db.Create(&item).Error; err != nil {
			internalError(c, err)
			return
		}

		view, err := buildCartItemView(db, item)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"state": "success", "message": "Product added to cart.", "data": view})
	}
}

// GET /cart
func GetCartItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No cart yet is not an error.
				c.JSON(http.StatusOK, gin.H{"state": "success", "message": "No products found in cart."})
				return
			}
			internalError(c, err)
			return
		}

		var items []models.CartItem
		if err := db.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			internalError(c, err)
			return
		}

		views := make([]cartItemView, 0, len(items))
		for _, item := range items {
			view, err := buildCartItemView(db, item)
			if err != nil {
				internalError(c, err)
				return
			}
			views = append(views, view)
		}

		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Products found in cart.", "data": views})
	}
}

// PUT /cart
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": err.Error()})
			return
		}

		var item models.CartItem
		if err := db.First(&item, "id = ?", input.CartItemID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Product not found."})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Product not found."})
			return
		}

		// Price is recomputed from the current product price, not the cached one.
		item.Quantity = input.Quantity
		item.Price = product.Price * float64(input.Quantity)
		if err := db.Save(&item).Error; err != nil {
			internalError(c, err)
			return
		}

		view, err := buildCartItemView(db, item)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Cart item updated.", "data": view})
	}
}

// DELETE /cart/:itemId
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("itemId")

		var item models.CartItem
		if err := db.First(&item, "id = ?", itemID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Product not found."})
			return
		}

		var remaining int64
		if err := db.Model(&models.CartItem{}).Where("cart_id = ?", item.CartID).Count(&remaining).Error; err != nil {
			internalError(c, err)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
			if remaining == 1 {
				// Last item gone, drop the now-empty cart as well.
				return tx.Where("id = ?", item.CartID).Delete(&models.Cart{}).Error
			}
			return nil
		})
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Product removed from cart."})
	}
}

func internalError(c *gin.Context, err error) {
	log.Printf("cart: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"state": "error", "message": "Something went wrong."})
}
