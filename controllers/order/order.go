package orderControllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/models"
	"gorm.io/gorm"
)

type PlaceOrderInput struct {
	ProductID     string `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=COD ONLINE"`
}

type placeOrderResult struct {
	OrderID       string               `json:"order_id"`
	ProductName   string               `json:"product_name"`
	Quantity      int                  `json:"quantity"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Price         float64              `json:"price"`
}

// errInsufficientStock aborts the order transaction when the guarded
// decrement touches no row.
type errInsufficientStock struct{ remaining int }

func (e errInsufficientStock) Error() string {
	return fmt.Sprintf("Only %d items are available.", e.remaining)
}

// POST /order
func PlaceOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Product not found."})
			return
		}

		var address models.Address
		if err := db.Where("user_id = ?", userID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Address not found."})
			return
		}

		if input.Quantity > product.Stock {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": fmt.Sprintf("Only %d items are available.", product.Stock)})
			return
		}

		price := product.Price * float64(input.Quantity)
		var item models.OrderItem

		err := db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.Where(models.Order{UserID: userID}).FirstOrCreate(&order).Error; err != nil {
				return err
			}

			item = models.OrderItem{
				OrderID:           order.ID,
				ProductID:         input.ProductID,
				ShippingAddressID: address.ID,
				Quantity:          input.Quantity,
				PaymentMethod:     models.PaymentMethod(input.PaymentMethod),
				Price:             price,
				Status:            models.OrderStatusPending,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			// Guarded decrement: concurrent orders cannot drive stock below zero.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", input.ProductID, input.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", input.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var current models.Product
				if err := tx.First(&current, "id = ?", input.ProductID).Error; err != nil {
					return err
				}
				return errInsufficientStock{remaining: current.Stock}
			}
			return nil
		})
		if err != nil {
			if stockErr, ok := err.(errInsufficientStock); ok {
				c.JSON(http.StatusConflict, gin.H{"state": "error", "message": stockErr.Error()})
				return
			}
			internalError(c, err)
			return
		}

		broadcastOrderEvent(orderEvent{Type: "order_placed", Item: item})

		c.JSON(http.StatusCreated, gin.H{
			"state":   "success",
			"message": "Order placed successfully.",
			"data": placeOrderResult{
				OrderID:       item.ID,
				ProductName:   product.Name,
				Quantity:      input.Quantity,
				PaymentMethod: item.PaymentMethod,
				Price:         price,
			},
		})
	}
}

// DELETE /order/:orderItemId
func CancelOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		orderItemID := c.Param("orderItemId")

		var item models.OrderItem
		if err := db.First(&item, "id = ?", orderItemID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Order not found."})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", item.OrderID).Error; err != nil {
			internalError(c, err)
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusUnauthorized, gin.H{"state": "error", "message": "Unauthorized."})
			return
		}

		if item.Status != models.OrderStatusPending {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "Cancel the order at your delivery location."})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
			return tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error
		})
		if err != nil {
			internalError(c, err)
			return
		}

		broadcastOrderEvent(orderEvent{Type: "order_cancelled", Item: item})

		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Order cancelled successfully."})
	}
}

func internalError(c *gin.Context, err error) {
	log.Printf("order: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"state": "error", "message": "Something went wrong."})
}
