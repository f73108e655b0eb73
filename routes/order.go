package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/iamkaranroushan/grocery-application-backend/controllers/order"
	"github.com/iamkaranroushan/grocery-application-backend/middleware"
	"github.com/iamkaranroushan/grocery-application-backend/realtime"
)

// SetupOrderRoutes registers order placement and the realtime channel.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.POST("/place", orderControllers.CreateOrderHandler(db, hub))
	}

	// Websocket endpoint for real-time order events. The session token picks
	// the room; clients never declare their own identity here.
	r.GET("/ws", middleware.ValidateToken, realtime.ServeWS(hub))
}
