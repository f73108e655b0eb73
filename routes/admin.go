package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/iamkaranroushan/grocery-application-backend/controllers/address"
	orderControllers "github.com/iamkaranroushan/grocery-application-backend/controllers/order"
	productcontroller "github.com/iamkaranroushan/grocery-application-backend/controllers/product"
	userControllers "github.com/iamkaranroushan/grocery-application-backend/controllers/user"
	"github.com/iamkaranroushan/grocery-application-backend/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a session
// with the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// User management
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/addresses", addressControllers.GetAllAddresses(db))

		// Category management
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategoryHandler(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategoryHandler(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategoryHandler(db))
		}
		subCategoryAdmin := adminGroup.Group("/subcategories")
		{
			subCategoryAdmin.POST("", productcontroller.CreateSubCategoryHandler(db))
			subCategoryAdmin.PUT("/:id", productcontroller.UpdateSubCategoryHandler(db))
			subCategoryAdmin.DELETE("/:id", productcontroller.DeleteSubCategoryHandler(db))
		}

		// Product management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProductHandler(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProductHandler(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProductHandler(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// Order management
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}
	}
}
