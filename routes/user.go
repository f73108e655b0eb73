package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/iamkaranroushan/grocery-application-backend/controllers/address"
	cartControllers "github.com/iamkaranroushan/grocery-application-backend/controllers/cart"
	notificationControllers "github.com/iamkaranroushan/grocery-application-backend/controllers/notification"
	orderControllers "github.com/iamkaranroushan/grocery-application-backend/controllers/order"
	productcontroller "github.com/iamkaranroushan/grocery-application-backend/controllers/product"
	"github.com/iamkaranroushan/grocery-application-backend/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a valid
// session.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// Browse catalog
		userGroup.GET("/categories", productcontroller.GetCategories(db))
		userGroup.GET("/products", productcontroller.GetProducts(db))

		// Shopping cart
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/:cartId", cartControllers.GetCartHandler(db))
			cartGroup.POST("", cartControllers.AddToCartHandler(db))
			cartGroup.PUT("/quantity", cartControllers.UpdateQuantityHandler(db))
			cartGroup.DELETE("/item/:cartItemId", cartControllers.DeleteCartItemHandler(db))
			cartGroup.DELETE("/:cartId/items", cartControllers.ClearCartItemsHandler(db))
		}

		// Addresses
		addressGroup := userGroup.Group("/addresses")
		{
			addressGroup.POST("", addressControllers.CreateAddressHandler(db))
			addressGroup.GET("/:userId", addressControllers.GetUserAddresses(db))
			addressGroup.PUT("/:id", addressControllers.UpdateAddressHandler(db))
		}

		// Order history
		userGroup.GET("/orders/:userID", orderControllers.GetUserOrdersHandler(db))
		userGroup.GET("/order/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Notifications
		notificationGroup := userGroup.Group("/notifications")
		{
			notificationGroup.GET("/:recipientId", notificationControllers.GetNotificationsHandler(db))
			notificationGroup.PUT("/:recipientId/read-all", notificationControllers.MarkAllNotificationsAsReadHandler(db))
			notificationGroup.PUT("/:recipientId/read/:id", notificationControllers.MarkNotificationAsReadHandler(db))
		}
	}
}
