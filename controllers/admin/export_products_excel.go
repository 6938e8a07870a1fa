package adminControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nimblecart/ecommerce-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			internalError(c, err)
			return
		}

		categoryNames := map[string]string{}
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			internalError(c, err)
			return
		}
		for _, cat := range categories {
			categoryNames[cat.ID] = cat.Name
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			internalError(c, err)
			return
		}

		headers := []string{
			"ID", "Name", "Description", "Category", "Price", "Stock",
			"AverageRating", "Images", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(categoryNames[p.CategoryID])
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.AverageRating)
			row.AddCell().SetValue(strings.Join(p.ImagesURL, ","))
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"state": "error", "message": "Something went wrong."})
			return
		}
	}
}
