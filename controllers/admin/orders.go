package adminControllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/nimblecart/ecommerce-api/controllers/order"
	"github.com/nimblecart/ecommerce-api/models"
	"gorm.io/gorm"
)

type OrdersQuery struct {
	SortByDate bool `form:"sortByDate,default=false"`
	Offset     int  `form:"offset,default=0"`
	Limit      int  `form:"limit,default=10"`
}

type UpdateOrderInput struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=PENDING COMPLETED"`
}

// orderView is the denormalized operator row: order item joined with its
// order, user, product and shipping address.
type orderView struct {
	ID              string `json:"id"`
	OrderedByName   string `json:"ordered_by_name"`
	ProductName     string `json:"product_name"`
	Quantity        int    `json:"quantity"`
	Status          models.OrderStatus `json:"status"`
	ShippingAddress struct {
		Street     string    `json:"street"`
		City       string    `json:"city"`
		State      string    `json:"state"`
		PostalCode string    `json:"postal_code"`
		Country    string    `json:"country"`
		Date       time.Time `json:"date"`
	} `json:"shipping_address"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Price         float64              `json:"price"`
}

func buildOrderView(db *gorm.DB, item models.OrderItem) orderView {
	view := orderView{
		ID:            item.ID,
		Quantity:      item.Quantity,
		Status:        item.Status,
		PaymentMethod: item.PaymentMethod,
		Price:         item.Price,
	}

	var order models.Order
	if err := db.First(&order, "id = ?", item.OrderID).Error; err == nil {
		var user models.User
		if err := db.First(&user, "id = ?", order.UserID).Error; err == nil {
			view.OrderedByName = user.FirstName
			if user.LastName != "" {
				view.OrderedByName += " " + user.LastName
			}
		}
	}

	var product models.Product
	if err := db.First(&product, "id = ?", item.ProductID).Error; err == nil {
		view.ProductName = product.Name
	}

	var address models.Address
	if err := db.First(&address, "id = ?", item.ShippingAddressID).Error; err == nil {
		view.ShippingAddress.Street = address.Street
		view.ShippingAddress.City = address.City
		view.ShippingAddress.State = address.State
		view.ShippingAddress.PostalCode = address.PostalCode
		view.ShippingAddress.Country = address.Country
	}
	view.ShippingAddress.Date = item.CreatedAt

	return view
}

// GET /admin/orders
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q OrdersQuery
		if err := c.ShouldBindQuery(&q); err != nil || q.Offset < 0 || q.Limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Invalid query parameters."})
			return
		}

		query := db.Model(&models.OrderItem{})
		if q.SortByDate {
			query = query.Order("created_at asc")
		}

		var items []models.OrderItem
		if err := query.Offset(q.Offset).Limit(q.Limit).Find(&items).Error; err != nil {
			internalError(c, err)
			return
		}

		views := make([]orderView, 0, len(items))
		for _, item := range items {
			views = append(views, buildOrderView(db, item))
		}
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": fmt.Sprintf("%d orders found.", len(views)), "data": views})
	}
}

// GET /admin/orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.OrderItem
		if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Order not found."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Order found.", "data": buildOrderView(db, item)})
	}
}

// PUT /admin/orders/:id — the fulfillment trigger moving an item out of PENDING.
func UpdateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": err.Error()})
			return
		}

		var item models.OrderItem
		if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Order not found."})
			return
		}

		if item.Status == models.OrderStatusCompleted {
			// COMPLETED is terminal.
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "Order is already completed."})
			return
		}

		item.Status = input.Status
		if err := db.Save(&item).Error; err != nil {
			internalError(c, err)
			return
		}

		orderControllers.BroadcastStatusUpdate(item)

		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Order updated.", "data": item})
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "first_name", "last_name", "user_name", "email", "profile_image_url", "created_at").
			Order("created_at desc").
			Find(&users).Error; err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": fmt.Sprintf("%d users found.", len(users)), "data": users})
	}
}
