package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

// ExportProductsToExcel streams the catalog (one row per variant) as a
// spreadsheet for offline stock review.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Variants").Order("id ASC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ProductID", "Name", "Description", "CategoryID", "Active",
			"VariantID", "Weight", "Price", "MRP", "InStock",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			if len(p.Variants) == 0 {
				row := sheet.AddRow()
				row.AddCell().SetValue(p.ID)
				row.AddCell().SetValue(p.Name)
				row.AddCell().SetValue(p.Description)
				row.AddCell().SetValue(p.CategoryID)
				row.AddCell().SetValue(p.IsActive)
				continue
			}
			for _, v := range p.Variants {
				row := sheet.AddRow()
				row.AddCell().SetValue(p.ID)
				row.AddCell().SetValue(p.Name)
				row.AddCell().SetValue(p.Description)
				row.AddCell().SetValue(p.CategoryID)
				row.AddCell().SetValue(p.IsActive)
				row.AddCell().SetValue(v.ID)
				row.AddCell().SetValue(v.Weight)
				row.AddCell().SetValue(v.Price)
				row.AddCell().SetValue(v.MRP)
				row.AddCell().SetValue(v.InStock)
			}
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
