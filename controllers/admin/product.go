package adminControllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	productControllers "github.com/nimblecart/ecommerce-api/controllers/product"
	"github.com/nimblecart/ecommerce-api/models"
	"github.com/nimblecart/ecommerce-api/storage"
	"gorm.io/gorm"
)

// uploadImages saves each multipart file locally, pushes it to the image
// host and returns the public URLs. Up to 3 files of at most 5 MB each.
func uploadImages(c *gin.Context, up storage.Uploader, field, folder string) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return []string{}, true
	}
	files := form.File[field]
	if len(files) > 3 {
		c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "A maximum of 3 files is allowed."})
		return nil, false
	}

	urls := []string{}
	for _, fh := range files {
		if fh.Size > 5<<20 {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "File size must not exceed 5 MB."})
			return nil, false
		}
		localPath := filepath.Join(os.TempDir(), strings.ReplaceAll(fh.Filename, " ", "_"))
		if err := c.SaveUploadedFile(fh, localPath); err != nil {
			internalError(c, err)
			return nil, false
		}
		secureURL, err := up.Upload(c.Request.Context(), localPath, folder)
		os.Remove(localPath)
		if err != nil {
			internalError(c, err)
			return nil, false
		}
		urls = append(urls, secureURL)
	}
	return urls, true
}

// POST /admin/products (multipart: name, description, price, stock, category_id, files)
func CreateProduct(db *gorm.DB, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		description := c.PostForm("description")
		priceStr := c.PostForm("price")
		stockStr := c.PostForm("stock")
		categoryID := c.PostForm("category_id")
		if name == "" || description == "" || priceStr == "" || stockStr == "" || categoryID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "name, description, price, stock and category_id are required."})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "Invalid price."})
			return
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "Invalid stock."})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", categoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Category not found."})
			return
		}

		imageURLs, ok := uploadImages(c, up, "files", "products")
		if !ok {
			return
		}

		newProduct := models.Product{
			CategoryID:  categoryID,
			Name:        name,
			Description: description,
			Price:       price,
			Stock:       stock,
			ImagesURL:   imageURLs,
		}

		// Counter moves in the same transaction as the insert it tracks.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&newProduct).Error; err != nil {
				return err
			}
			return tx.Model(&models.Category{}).
				Where("id = ?", categoryID).
				UpdateColumn("total_products", gorm.Expr("total_products + 1")).Error
		})
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"state": "success", "message": "Product has been added.", "data": productControllers.ToView(db, newProduct)})
	}
}

// PUT /admin/products/:id (multipart, same fields as create; files optional)
func UpdateProduct(db *gorm.DB, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		description := c.PostForm("description")
		priceStr := c.PostForm("price")
		stockStr := c.PostForm("stock")
		categoryID := c.PostForm("category_id")
		if name == "" || description == "" || priceStr == "" || stockStr == "" || categoryID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "name, description, price, stock and category_id are required."})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "Invalid price."})
			return
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"state": "error", "message": "Failed in type validation.", "errors": "Invalid stock."})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Product not found."})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", categoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Category not found."})
			return
		}

		imageURLs, ok := uploadImages(c, up, "files", "products")
		if !ok {
			return
		}

		if product.Name == name && product.Description == description &&
			product.Price == price && product.Stock == stock &&
			product.CategoryID == categoryID && len(imageURLs) == 0 {
			c.JSON(http.StatusConflict, gin.H{"state": "error", "message": "No changes detected."})
			return
		}

		previousCategoryID := product.CategoryID
		product.Name = name
		product.Description = description
		product.Price = price
		product.Stock = stock
		product.CategoryID = categoryID
		if len(imageURLs) > 0 {
			product.ImagesURL = imageURLs
		}

		// A category move shifts both counters in the update's transaction.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
			if previousCategoryID != categoryID {
				if err := tx.Model(&models.Category{}).
					Where("id = ?", previousCategoryID).
					UpdateColumn("total_products", gorm.Expr("total_products - 1")).Error; err != nil {
					return err
				}
				return tx.Model(&models.Category{}).
					Where("id = ?", categoryID).
					UpdateColumn("total_products", gorm.Expr("total_products + 1")).Error
			}
			return nil
		})
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Product has been updated.", "data": productControllers.ToView(db, product)})
	}
}

// DELETE /admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"state": "error", "message": "Product not found."})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Category{}).
				Where("id = ?", product.CategoryID).
				UpdateColumn("total_products", gorm.Expr("total_products - 1")).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"state": "success", "message": "Product has been deleted."})
	}
}

// GET /admin/products — same filters and validation as the public catalog.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return productControllers.GetProducts(db)
}

// GET /admin/products/:id
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return productControllers.GetProductByID(db)
}
