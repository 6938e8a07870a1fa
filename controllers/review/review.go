package reviewControllers

import (
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/models"
	"github.com/nimblecart/ecommerce-api/storage"
	"gorm.io/gorm"
)

type reviewData struct {
	ID        string   `json:"id"`
	ImagesURL []string `json:"images_url"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	CreatedAt string   `json:"created_at"`
}

func toReviewData(r models.Review) reviewData {
	return reviewData{
		ID:        r.ID,
		ImagesURL: r.ImagesURL,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// POST /review (multipart: order_item_id, rating, comment, files?)
func AddReview(db *gorm.DB, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		orderItemID := c.PostForm("order_item_id")
		ratingStr := c.PostForm("rating")
		comment := c.PostForm("comment")
		if orderItemID == "" || ratingStr == "" || comment == "" {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "order_item_id, rating and comment are required."})
			return
		}
		rating, err := strconv.Atoi(ratingStr)
		if err != nil || rating < 1 || rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "Rating must be between 1 and 5."})
			return
		}

		form, _ := c.MultipartForm()
		var files []*multipart.FileHeader
		if form != nil {
			for _, fh := range form.File["files"] {
				if fh.Size > 5<<20 {
					c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "File size must not exceed 5 MB."})
					return
				}
				files = append(files, fh)
			}
		}
		if len(files) > 3 {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "A maximum of 3 files is allowed."})
			return
		}

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
			c.JSON(http.StatusForbidden, gin.H{"state": "error", "message": "You can not review this product."})
			return
		}
		if item.Status != models.OrderStatusCompleted {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "You can only review completed orders."})
			return
		}

		imageURLs := []string{}
		for _, fh := range files {
			localPath := filepath.Join(os.TempDir(), strings.ReplaceAll(fh.Filename, " ", "_"))
			if err := c.SaveUploadedFile(fh, localPath); err != nil {
				internalError(c, err)
				return
			}
			secureURL, uploadErr := up.Upload(c.Request.Context(), localPath, "reviews")
			os.Remove(localPath)
			if uploadErr != nil {
				internalError(c, uploadErr)
				return
			}
			imageURLs = append(imageURLs, secureURL)
		}

		review := models.Review{
			OrderItemID: orderItemID,
			ProductID:   item.ProductID,
			UserID:      userID,
			Rating:      rating,
			Comment:     comment,
			ImagesURL:   imageURLs,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
			return refreshAverageRating(tx, item.ProductID)
		})
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"state": "success", "message": "Your review has been added.", "data": toReviewData(review)})
	}
}

// GET /reviews/:productId
func GetReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productId")

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Product not found."})
			return
		}

		var reviews []models.Review
		if err := db.Where("product_id = ?", productID).Find(&reviews).Error; err != nil {
			internalError(c, err)
			return
		}

		data := make([]reviewData, 0, len(reviews))
		for _, r := range reviews {
			data = append(data, toReviewData(r))
		}
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Reviews found.", "data": data})
	}
}

// DELETE /review/:id
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		reviewID := c.Param("id")

		var review models.Review
		if err := db.First(&review, "id = ?", reviewID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Review not found."})
			return
		}
		if review.UserID != userID {
			c.JSON(http.StatusUnauthorized, gin.H{"state": "error", "message": "You can not delete this review."})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&review).Error; err != nil {
				return err
			}
			return refreshAverageRating(tx, review.ProductID)
		})
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Review deleted."})
	}
}

// refreshAverageRating recomputes the denormalized rating from the source rows
// inside the caller's transaction.
func refreshAverageRating(tx *gorm.DB, productID string) error {
	var avg float64
	if err := tx.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("average_rating", avg).Error
}

func internalError(c *gin.Context, err error) {
	log.Printf("review: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"state": "error", "message": "Something went wrong."})
}
