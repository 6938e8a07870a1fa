package adminControllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/models"
	"gorm.io/gorm"
)

type CreateCategoryInput struct {
	Name        string `json:"name" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=10"`
}

type UpdateCategoryInput struct {
	Name        string `json:"name" binding:"required,min=3"`
	Description string `json:"description"`
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.Category{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
			internalError(c, err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "Category with this name already exists."})
			return
		}

		category := models.Category{
			Name:        input.Name,
			Description: input.Description,
		}
		if err := db.Create(&category).Error; err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"state": "success", "message": "Category has been added.", "data": category})
	}
}

// GET /admin/categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": "success", "message": fmt.Sprintf("%d categories found.", len(categories)), "data": categories})
	}
}

// PUT /admin/categories/:id
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Category not found."})
			return
		}

		if category.Name == input.Name &&
			(input.Description == "" || category.Description == input.Description) {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "No changes found to update."})
			return
		}

		category.Name = input.Name
		if input.Description != "" {
			category.Description = input.Description
		}
		if err := db.Save(&category).Error; err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Category has been updated.", "data": category})
	}
}

// DELETE /admin/categories/:id
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Category not found."})
			return
		}

		// Deleting a category cascades to its products.
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("category_id = ?", category.ID).Delete(&models.Product{}).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Category has been deleted."})
	}
}

func internalError(c *gin.Context, err error) {
	log.Printf("admin: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"state": "error", "message": "Something went wrong."})
}
