package addressControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/models"
	"gorm.io/gorm"
)

type CreateAddressInput struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

// POST /address
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CreateAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			log.Printf("address: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"state": "error", "message": "Something went wrong."})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "Address already exists, remove current address to add another."})
			return
		}

		address := models.Address{
			UserID:     userID,
			Street:     input.Street,
			City:       input.City,
			State:      input.State,
			PostalCode: input.PostalCode,
			Country:    input.Country,
		}
		if err := db.Create(&address).Error; err != nil {
			log.Printf("address: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"state": "error", "message": "Something went wrong."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"state": "success", "message": "Address created successfully.", "data": address})
	}
}
