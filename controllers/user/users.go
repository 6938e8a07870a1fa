package userControllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/auth"
	"github.com/nimblecart/ecommerce-api/models"
	"github.com/nimblecart/ecommerce-api/storage"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	UserName  string `json:"user_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

type LoginInput struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// profileData is the aggregate view returned by GET /user/profile.
type profileData struct {
	FirstName                    string             `json:"first_name"`
	LastName                     string             `json:"last_name"`
	UserName                     string             `json:"user_name"`
	ProfileImageURL              string             `json:"profile_image_url"`
	NumberOfProductsInCart       int                `json:"number_of_products_in_cart"`
	ProductsInCart               []models.CartItem  `json:"products_in_cart"`
	NumberOfProductsPendingOrder int                `json:"number_of_products_pending_order"`
	ProductsPendingOrder         []models.OrderItem `json:"products_pending_order"`
}

// POST /user
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.User{}).Where("user_name = ?", input.UserName).Count(&count).Error; err != nil {
			internalError(c, err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "User name already exists."})
			return
		}

		if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			internalError(c, err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "Email already exists."})
			return
		}

		hashedPassword, err := auth.HashPassword(input.Password)
		if err != nil {
			internalError(c, err)
			return
		}

		user := models.User{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			UserName:  input.UserName,
			Email:     input.Email,
			Password:  hashedPassword,
		}
		if err := db.Create(&user).Error; err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"state": "success", "message": "User has been created."})
	}
}

// POST /user/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": err.Error()})
			return
		}
		if input.Email == "" && input.UserName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "Email or user name is required."})
			return
		}

		var user models.User
		var err error
		if input.Email != "" {
			err = db.Where("email = ?", input.Email).First(&user).Error
		} else {
			err = db.Where("user_name = ?", input.UserName).First(&user).Error
		}
		if err != nil || !auth.VerifyPassword(input.Password, user.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"state": "error", "message": "Invalid Credentials."})
			return
		}

		token, err := auth.GenerateToken(db, user.ID)
		if err != nil {
			internalError(c, err)
			return
		}

		c.SetCookie("token", token, int(auth.TokenTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Login successful."})
	}
}

// POST /user/logout
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := db.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			internalError(c, err)
			return
		}

		c.SetCookie("token", "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Logout successful."})
	}
}

// GET /user/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "User not found."})
			return
		}

		cartItems := []models.CartItem{}
		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err == nil {
			if err := db.Where("cart_id = ?", cart.ID).Find(&cartItems).Error; err != nil {
				internalError(c, err)
				return
			}
		}

		pendingItems := []models.OrderItem{}
		var order models.Order
		if err := db.Where("user_id = ?", userID).First(&order).Error; err == nil {
			if err := db.Where("order_id = ? AND status = ?", order.ID, models.OrderStatusPending).
				Find(&pendingItems).Error; err != nil {
				internalError(c, err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"state":   "success",
			"message": "Profile data has been fetched.",
			"data": profileData{
				FirstName:                    user.FirstName,
				LastName:                     user.LastName,
				UserName:                     user.UserName,
				ProfileImageURL:              user.ProfileImageURL,
				NumberOfProductsInCart:       len(cartItems),
				ProductsInCart:               cartItems,
				NumberOfProductsPendingOrder: len(pendingItems),
				ProductsPendingOrder:         pendingItems,
			},
		})
	}
}

// PUT /user/profilepicture
func UpdateProfilePicture(db *gorm.DB, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "An image file is required."})
			return
		}
		if file.Size > 5<<20 {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "File size must not exceed 5 MB."})
			return
		}

		localPath := filepath.Join(os.TempDir(), strings.ReplaceAll(file.Filename, " ", "_"))
		if err := c.SaveUploadedFile(file, localPath); err != nil {
			internalError(c, err)
			return
		}
		defer os.Remove(localPath)

		secureURL, err := up.Upload(c.Request.Context(), localPath, "profiles")
		if err != nil {
			internalError(c, err)
			return
		}

		if err := db.Model(&models.User{}).Where("id = ?", userID).
			Update("profile_image_url", secureURL).Error; err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"state":   "success",
			"message": "Profile picture has been updated.",
			"data":    gin.H{"profile_image_url": secureURL},
		})
	}
}

// DELETE /user/profilepicture
func RemoveProfilePicture(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "User not found."})
			return
		}
		if user.ProfileImageURL == models.DefaultProfileImageURL {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "No profile picture to remove."})
			return
		}

		if err := db.Model(&user).Update("profile_image_url", models.DefaultProfileImageURL).Error; err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"state":   "success",
			"message": "Profile picture has been removed.",
			"data":    gin.H{"profile_image_url": models.DefaultProfileImageURL},
		})
	}
}

func internalError(c *gin.Context, err error) {
	log.Printf("user: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"state": "error", "message": "Something went wrong."})
}
